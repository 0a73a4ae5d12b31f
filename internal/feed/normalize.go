package feed

import (
	"regexp"
	"strings"
)

// tagPattern matches a single angle-bracket delimited span, non-greedily.
// There is no nesting awareness: stray '<' or '>' in malformed markup can
// swallow more text than intended. That is a known boundary condition of
// this normalizer, not something we try to repair.
var tagPattern = regexp.MustCompile(`<.*?>`)

// Normalize strips markup tags from raw, trims surrounding whitespace, and
// truncates the result to at most maxLen code points. Truncation is blunt:
// no ellipsis, no word-boundary handling.
func Normalize(raw string, maxLen int) string {
	text := tagPattern.ReplaceAllString(raw, "")
	text = strings.TrimSpace(text)

	runes := []rune(text)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return text
}
