package domain

// EntityType classifies a legal entity recognised in text.
type EntityType string

// Recognised entity types.
const (
	// EntityTypeArticle is a statute article reference (art. 700,
	// article L.1234-5).
	EntityTypeArticle EntityType = "article"

	// EntityTypeLaw is a law or decree reference (loi du 6 août 2015,
	// loi n° 78-17).
	EntityTypeLaw EntityType = "law"

	// EntityTypeCaseReference is a court decision citation
	// (Cass. civ. 1re, 12 mai 2021).
	EntityTypeCaseReference EntityType = "case_reference"
)

// IsValid returns true if the entity type is recognised.
func (t EntityType) IsValid() bool {
	switch t {
	case EntityTypeArticle, EntityTypeLaw, EntityTypeCaseReference:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t EntityType) String() string {
	return string(t)
}

// Description returns a human-readable description of the type.
func (t EntityType) Description() string {
	switch t {
	case EntityTypeArticle:
		return "Statute article reference"
	case EntityTypeLaw:
		return "Law or decree reference"
	case EntityTypeCaseReference:
		return "Court decision citation"
	default:
		return unknownDescription
	}
}

// LegalEntity is a reference recognised in free text by pattern
// matching. Entities are derived values; the engine never persists
// them.
type LegalEntity struct {
	// Type is the entity family that matched.
	Type EntityType

	// Text is the matched span, verbatim.
	Text string

	// Normalized is the canonical form used for lookups,
	// e.g. "art. 700" for any spelling of article 700.
	Normalized string

	// Confidence is the fixed per-family confidence of the match.
	// Article patterns are the most precise, case citations the loosest.
	Confidence float64
}
