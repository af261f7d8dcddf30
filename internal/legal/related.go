package legal

// relatedArticles maps a statute article number to articles commonly
// cited alongside it. Static lookup table; keys match the normalised
// article numbers produced by the entity extractor.
var relatedArticles = map[string][]string{
	// Responsabilité civile (ancien / nouveau code civil)
	"1382": {"1383", "1240"},
	"1383": {"1382", "1241"},
	"1240": {"1241", "1382"},
	"1241": {"1240", "1383"},

	// Droit des contrats
	"1103": {"1104", "1193"},
	"1104": {"1103", "1112"},
	"1134": {"1103", "1104"},

	// Frais de procédure
	"700": {"696", "699"},
	"696": {"700"},

	// Contrat de travail (code du travail)
	"L.1234-1": {"L.1234-5", "L.1234-9"},
	"L.1234-5": {"L.1234-1"},
	"L.1232-1": {"L.1232-2", "L.1235-1"},
}

// RelatedArticlesTable returns a copy of the full co-citation table.
func RelatedArticlesTable() map[string][]string {
	out := make(map[string][]string, len(relatedArticles))
	for article, related := range relatedArticles {
		copied := make([]string, len(related))
		copy(copied, related)
		out[article] = copied
	}
	return out
}

// RelatedArticles returns statute articles commonly cited together
// with the given article number. Nil when none are known.
func RelatedArticles(articleNumber string) []string {
	related := relatedArticles[articleNumber]
	if len(related) == 0 {
		return nil
	}
	out := make([]string, len(related))
	copy(out, related)
	return out
}
