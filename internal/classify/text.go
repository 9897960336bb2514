package classify

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURLPattern      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern      = regexp.MustCompile(`<[^>]+>`)
)

// StripLinks drops URLs from a review, keeping the link text of
// markdown links.
func StripLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1")
	return bareURLPattern.ReplaceAllString(input, "")
}

// CleanReviewText renders any markdown a scraped review might carry
// into plain text and collapses whitespace. Classifier backends and the
// fallback both receive the cleaned form.
func CleanReviewText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := htmlTagPattern.ReplaceAllString(string(output), " ")
	plain = strings.Join(strings.Fields(plain), " ")

	return StripLinks(plain)
}
