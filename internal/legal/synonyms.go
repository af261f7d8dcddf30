package legal

import (
	"sort"
	"strings"
)

// maxSynonymsPerRoot bounds how many synonyms one matched root adds to
// the query.
const maxSynonymsPerRoot = 2

// synonyms maps legal root terms to expansion candidates. Roots are
// matched case-insensitively as substrings of the query, so "contrats"
// and "contractuel" both trigger the "contrat" root.
var synonyms = map[string][]string{
	"contrat":        {"convention", "accord"},
	"travail":        {"emploi", "professionnel"},
	"préavis":        {"délai-congé", "notification"},
	"licenciement":   {"rupture", "congédiement"},
	"responsabilité": {"faute", "réparation"},
	"dommage":        {"préjudice", "indemnisation"},
	"bail":           {"location", "loyer"},
	"propriété":      {"possession", "titre"},
	"succession":     {"héritage", "dévolution"},
	"divorce":        {"séparation", "dissolution"},
	"preuve":         {"élément probant", "justificatif"},
	"prescription":   {"délai", "forclusion"},
	"garantie":       {"caution", "sûreté"},
	"vente":          {"cession", "acquisition"},
}

// SynonymTable returns a copy of the root-to-synonyms table.
func SynonymTable() map[string][]string {
	out := make(map[string][]string, len(synonyms))
	for root, syns := range synonyms {
		copied := make([]string, len(syns))
		copy(copied, syns)
		out[root] = copied
	}
	return out
}

// ExpandQuery appends up to two synonyms per legal root term found in
// the query. The original query is always preserved verbatim as the
// prefix of the result, so literal term matching downstream still
// works on the caller's words.
func ExpandQuery(query string) string {
	lower := strings.ToLower(query)

	// Sorted roots keep the expansion deterministic, which keeps cache
	// keys stable for identical queries.
	roots := make([]string, 0, len(synonyms))
	for root := range synonyms {
		roots = append(roots, root)
	}
	sort.Strings(roots)

	var added []string
	for _, root := range roots {
		if !strings.Contains(lower, root) {
			continue
		}
		syns := synonyms[root]
		for i, syn := range syns {
			if i >= maxSynonymsPerRoot {
				break
			}
			if strings.Contains(lower, strings.ToLower(syn)) {
				continue
			}
			added = append(added, syn)
		}
	}

	if len(added) == 0 {
		return query
	}
	return query + " " + strings.Join(added, " ")
}
