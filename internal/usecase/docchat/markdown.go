package docchat

import (
	"regexp"
	"strings"
)

var (
	mdHeader     = regexp.MustCompile(`(?m)^#+\s+`)
	mdBold       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	mdItalic     = regexp.MustCompile(`\*(.*?)\*`)
	mdCodeBlock  = regexp.MustCompile("(?s)```.*?```")
	mdInlineCode = regexp.MustCompile("`(.*?)`")
	blankRuns    = regexp.MustCompile(`\n\s*\n`)
)

// cleanMarkdown strips the markdown constructs completion models emit even
// when asked for plain text. Order matters: bold before italic, blocks
// before inline code.
func cleanMarkdown(text string) string {
	text = mdHeader.ReplaceAllString(text, "")
	text = mdBold.ReplaceAllString(text, "$1")
	text = mdItalic.ReplaceAllString(text, "$1")
	text = mdCodeBlock.ReplaceAllString(text, "")
	text = mdInlineCode.ReplaceAllString(text, "$1")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
