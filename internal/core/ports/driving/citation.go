package driving

import "github.com/avocatech/juricite/internal/core/domain"

// CitationService is the No Source No Claim gate applied to generated
// text. It never fails: malformed input degrades to flagging, not to
// an error, since the validator sits on the response path of every
// generation.
type CitationService interface {
	// Validate classifies the sentences of text as claims or
	// non-claims and checks each claim's lexical overlap against the
	// supplied sources.
	Validate(text string, sources []domain.Source) domain.CitationReport
}
