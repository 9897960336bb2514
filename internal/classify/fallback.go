package classify

import (
	"strings"

	"github.com/kanithisathvik/aspectrank/internal/models"
)

// Mention synonyms for the canonical aspects. Everything else matches
// on the aspect's own name only.
var aspectSynonyms = map[string][]string{
	"battery life": {"battery"},
	"display":      {"screen", "monitor"},
	"performance":  {"speed", "fast", "slow"},
}

var fallbackPositiveWords = []string{
	"good", "great", "excellent", "amazing", "awesome",
	"fantastic", "perfect", "love", "nice", "best",
}

var fallbackNegativeWords = []string{
	"bad", "poor", "terrible", "awful", "horrible",
	"hate", "worst", "disappoint", "broken", "slow",
}

// Contrast markers that flip sentiment mid-sentence; clauses on either
// side are scored independently so "battery is terrible but display is
// great" does not bleed labels across aspects.
var clauseSplitters = []string{" but ", " however ", " although ", " though ", " yet "}

// FallbackClassify is the local heuristic used when the external
// classifier is unreachable or unparsable. Unlike the parser it always
// returns an entry for every requested aspect; aspects the review never
// mentions come back neutral.
func FallbackClassify(reviewText string, aspects []string) map[string]models.SentimentLabel {
	result := make(map[string]models.SentimentLabel, len(aspects))
	clauses := splitClauses(reviewText)

	for _, aspect := range aspects {
		key := strings.ToLower(strings.TrimSpace(aspect))

		var positive, negative int
		for _, clause := range clauses {
			if !mentionsAspect(clause, key) {
				continue
			}
			positive += countWordHits(clause, fallbackPositiveWords)
			negative += countWordHits(clause, fallbackNegativeWords)
		}

		switch {
		case positive > negative:
			result[key] = models.SentimentPositive
		case negative > positive:
			result[key] = models.SentimentNegative
		default:
			result[key] = models.SentimentNeutral
		}
	}

	return result
}

func splitClauses(text string) []string {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == ';' || r == '\n'
	})

	var clauses []string
	for _, sentence := range sentences {
		parts := []string{strings.ToLower(sentence)}
		for _, splitter := range clauseSplitters {
			var next []string
			for _, part := range parts {
				next = append(next, strings.Split(part, splitter)...)
			}
			parts = next
		}
		for _, part := range parts {
			if part = strings.TrimSpace(part); part != "" {
				clauses = append(clauses, part)
			}
		}
	}
	return clauses
}

func mentionsAspect(clause, aspect string) bool {
	if strings.Contains(clause, aspect) {
		return true
	}
	for _, synonym := range aspectSynonyms[aspect] {
		if strings.Contains(clause, synonym) {
			return true
		}
	}
	return false
}

// countWordHits counts clause words that start with any of the given
// stems, so "loved" and "disappointing" still register.
func countWordHits(clause string, stems []string) int {
	var hits int
	for _, word := range strings.Fields(clause) {
		word = strings.Trim(word, ",:()\"'")
		for _, stem := range stems {
			if strings.HasPrefix(word, stem) {
				hits++
				break
			}
		}
	}
	return hits
}
