// Package textclean normalizes extracted article text: entity decoding,
// whitespace collapsing, and boilerplate phrase removal.
package textclean

import (
	"html"
	"regexp"
	"strings"
)

var (
	multiNewline = regexp.MustCompile(`\n{3,}`)
	multiSpace   = regexp.MustCompile(`[ \t]+`)
	spacedLines  = regexp.MustCompile(`[ \t]+\n`)

	// Boilerplate lines commonly left behind by news CMS templates.
	// Patterns are anchored to whole lines so a sentence that merely
	// mentions one of these words survives.
	boilerplate = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^\s*advertisement\s*$`),
		regexp.MustCompile(`(?im)^\s*sponsored( content)?\s*$`),
		regexp.MustCompile(`(?im)^\s*subscribe( to our newsletter| now)?.*$`),
		regexp.MustCompile(`(?im)^\s*sign up for .*newsletter.*$`),
		regexp.MustCompile(`(?im)^\s*share (this|on) ?(facebook|twitter|linkedin|whatsapp)?.*$`),
		regexp.MustCompile(`(?im)^\s*follow us on.*$`),
		regexp.MustCompile(`(?im)^\s*also read:.*$`),
		regexp.MustCompile(`(?im)^\s*related:.*$`),
		regexp.MustCompile(`(?im)^\s*read more:?.*$`),
		regexp.MustCompile(`(?im)^\s*continue reading.*$`),
		regexp.MustCompile(`(?im)^\s*click here to.*$`),
		regexp.MustCompile(`(?i)&nbsp;?`),
	}
)

// entityDecodeLimit bounds the fixpoint decode below.
const entityDecodeLimit = 4

// Clean normalizes raw extracted text. It is idempotent: cleaning already
// clean text returns it unchanged, so redundant pipeline calls are safe.
func Clean(raw string) string {
	// Feeds occasionally double-encode entities, and UnescapeString decodes
	// one layer per call. Decode until the text stops changing.
	text := raw
	for i := 0; i < entityDecodeLimit; i++ {
		decoded := html.UnescapeString(text)
		if decoded == text {
			break
		}
		text = decoded
	}
	text = strings.ReplaceAll(text, "\u00a0", " ")

	// Whitespace first so the line-anchored patterns see tidy lines.
	text = multiSpace.ReplaceAllString(text, " ")
	text = spacedLines.ReplaceAllString(text, "\n")
	text = multiNewline.ReplaceAllString(text, "\n\n")

	for _, re := range boilerplate {
		text = re.ReplaceAllString(text, "")
	}

	// Removals can leave fresh blank-line runs behind.
	text = spacedLines.ReplaceAllString(text, "\n")
	text = multiNewline.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
