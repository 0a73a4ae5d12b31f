// Package render holds the display-side transforms applied to model output:
// the markdown link rewrite for HTML surfaces and glamour-based markdown
// rendering for the terminal.
package render

import "regexp"

// linkPattern matches a single-level markdown link: the label may not
// contain a closing bracket and the target may not contain a closing
// parenthesis, so nested constructs are deliberately not matched.
var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// RewriteLinks replaces every markdown link in text with an inline anchor
// that opens in a new browsing context without leaking a referrer or an
// opener handle. Non-matching text passes through unchanged.
func RewriteLinks(text string) string {
	return linkPattern.ReplaceAllString(text, `<a href="$2" target="_blank" rel="noopener noreferrer">$1</a>`)
}
