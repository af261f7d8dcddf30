package legal

import (
	"regexp"
	"strings"
)

// Claim patterns signal factual or legal assertions in generated text.
// A sentence matching any family is treated as a claim and must be
// backed by a source; everything else passes the citation gate freely.
var claimPatterns = []*regexp.Regexp{
	// Citation-style hedges: the generator is attributing a statement.
	regexp.MustCompile(`(?i)\b(selon|d'après|conformément à|en vertu de|aux termes de|en application de)\b`),

	// Explicit statute or law references.
	regexp.MustCompile(`(?i)\b(article|art\.)\s*[LRD]?\.?\s*\d+`),
	regexp.MustCompile(`(?i)\b(loi|décret|ordonnance|code)\b`),

	// Monetary amounts: 1 500 €, 300 euros, EUR 250.
	regexp.MustCompile(`\d[\d  .,]*\s?(€|euros?\b)`),
	regexp.MustCompile(`\bEUR\s?\d`),

	// Named legal roles.
	regexp.MustCompile(`(?i)\b(tribunal|cour|juge|avocat|partie|demandeur|défendeur|procureur)\b`),
}

// sentenceEnd matches a terminator followed by whitespace. Naive
// segmentation; known to false-split on abbreviations like "Art.".
var sentenceEnd = regexp.MustCompile(`[.!?]\s+`)

// SplitSentences splits text on sentence terminators followed by
// whitespace. The terminator stays attached to its sentence. Empty
// fragments are dropped.
func SplitSentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var sentences []string
	rest := text
	for {
		loc := sentenceEnd.FindStringIndex(rest)
		if loc == nil {
			break
		}
		if s := strings.TrimSpace(rest[:loc[0]+1]); s != "" {
			sentences = append(sentences, s)
		}
		rest = rest[loc[1]:]
	}
	if s := strings.TrimSpace(rest); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// IsClaim reports whether a sentence asserts something that needs a
// source behind it.
func IsClaim(sentence string) bool {
	for _, pattern := range claimPatterns {
		if pattern.MatchString(sentence) {
			return true
		}
	}
	return false
}

// SignificantWords returns the lowercase words of a sentence with at
// least minLen runes, punctuation stripped. These are the words the
// citation validator checks against source text.
func SignificantWords(sentence string, minLen int) []string {
	fields := strings.Fields(strings.ToLower(sentence))
	words := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))

	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool {
			return !isWordRune(r)
		})
		if len([]rune(w)) < minLen || seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}

	return words
}

func isWordRune(r rune) bool {
	return r == '-' || r == '\'' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		r > 127
}
