package legal

import (
	"regexp"
	"strings"
	"sync"
)

// glossaryFR maps French legal terms to English equivalents. The
// reverse direction is derived, so the table stays bidirectional
// without being maintained twice.
var glossaryFR = map[string]string{
	"contrat":        "contract",
	"travail":        "employment",
	"préavis":        "notice",
	"licenciement":   "dismissal",
	"dommages":       "damages",
	"préjudice":      "harm",
	"tribunal":       "court",
	"juge":           "judge",
	"avocat":         "lawyer",
	"preuve":         "evidence",
	"bail":           "lease",
	"responsabilité": "liability",
	"faute":          "fault",
	"loi":            "statute",
	"jugement":       "judgment",
}

var (
	glossaryOnce sync.Once
	glossary     map[string]string
)

// wordRun matches a maximal run of letters, the unit of substitution.
// \b misfires on accented letters, so words are located by letter runs
// rather than ASCII word boundaries.
var wordRun = regexp.MustCompile(`\p{L}+`)

func initGlossary() {
	glossary = make(map[string]string, 2*len(glossaryFR))
	for fr, en := range glossaryFR {
		glossary[fr] = en
		glossary[en] = fr
	}
}

// GlossaryFR returns a copy of the French-to-English glossary table.
func GlossaryFR() map[string]string {
	out := make(map[string]string, len(glossaryFR))
	for fr, en := range glossaryFR {
		out[fr] = en
	}
	return out
}

// TranslateQuery substitutes glossary terms at word boundaries in both
// directions, each word translated at most once, and returns one extra
// query variant. The second return is false when no term matched, in
// which case the variant equals the input and should not be searched
// separately.
func TranslateQuery(query string) (string, bool) {
	glossaryOnce.Do(initGlossary)

	changed := false
	translated := wordRun.ReplaceAllStringFunc(query, func(word string) string {
		replacement, ok := glossary[strings.ToLower(word)]
		if !ok {
			return word
		}
		changed = true
		return replacement
	})

	if !changed {
		return query, false
	}
	return translated, true
}
