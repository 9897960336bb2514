package classify

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kanithisathvik/aspectrank/internal/models"
)

// Synonym groups used to normalize whatever the classifier calls its
// labels. Checked in order: positive, negative, neutral.
var (
	positiveHints = []string{"positive", "good", "great", "excellent"}
	negativeHints = []string{"negative", "bad", "poor", "terrible"}
	neutralHints  = []string{"neutral", "mixed", "okay", "average"}
)

// ParseClassifierResponse normalizes one raw classifier payload into an
// aspect -> sentiment map. The service answers with whatever shape it
// feels like (bare string, array, object), so everything is coerced to
// a single string first and then picked apart. The function never
// fails; an empty map is the caller's cue to run the local fallback.
func ParseClassifierResponse(raw any) map[string]models.SentimentLabel {
	result := make(map[string]models.SentimentLabel)

	text := coerceToString(raw)
	if text == "" {
		return result
	}

	text = strings.NewReplacer("[", "", "]", "", "{", "", "}", "", `"`, "", "'", "").Replace(text)

	for _, pair := range strings.Split(text, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		var aspectPart, sentimentPart string
		if idx := strings.LastIndex(pair, ":"); idx >= 0 {
			aspectPart = pair[:idx]
			sentimentPart = pair[idx+1:]
		} else {
			// No separator; look for a sentiment word inside the pair
			// and treat the rest as the aspect name.
			aspectPart, sentimentPart = splitOnSentimentWord(pair)
			if sentimentPart == "" {
				continue
			}
		}

		aspect := strings.ToLower(strings.TrimSpace(aspectPart))
		if aspect == "" {
			continue
		}
		result[aspect] = normalizeSentiment(sentimentPart)
	}

	return result
}

// coerceToString reduces the classifier's payload to one string.
// Arrays are unwrapped to their first element recursively, objects
// prefer a text-ish field, everything else is stringified.
func coerceToString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		if len(v) == 0 {
			return ""
		}
		return coerceToString(v[0])
	case []string:
		if len(v) == 0 {
			return ""
		}
		return v[0]
	case map[string]any:
		for _, field := range []string{"text", "value", "label"} {
			if inner, ok := v[field]; ok {
				return coerceToString(inner)
			}
		}
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// splitOnSentimentWord scans a colon-less pair for a sentiment synonym.
// Returns empty sentiment when none of the words qualify.
func splitOnSentimentWord(pair string) (aspect, sentiment string) {
	var aspectWords []string
	for _, word := range strings.Fields(pair) {
		lower := strings.ToLower(strings.Trim(word, ".!?;"))
		switch {
		case sentiment == "" && containsAny(lower, positiveHints):
			sentiment = "positive"
		case sentiment == "" && containsAny(lower, negativeHints):
			sentiment = "negative"
		case sentiment == "" && containsAny(lower, neutralHints):
			sentiment = "neutral"
		default:
			aspectWords = append(aspectWords, word)
		}
	}
	return strings.Join(aspectWords, " "), sentiment
}

func normalizeSentiment(s string) models.SentimentLabel {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch {
	case containsAny(lower, positiveHints):
		return models.SentimentPositive
	case containsAny(lower, negativeHints):
		return models.SentimentNegative
	case containsAny(lower, neutralHints):
		return models.SentimentNeutral
	default:
		return models.SentimentNeutral
	}
}

func containsAny(s string, hints []string) bool {
	for _, hint := range hints {
		if strings.Contains(s, hint) {
			return true
		}
	}
	return false
}
