// Package extract isolates the main article text from a fetched news page.
package extract

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/defwatch/defwatch/internal/fetch"
	"github.com/defwatch/defwatch/internal/logger"
	"github.com/defwatch/defwatch/internal/textclean"
)

// Placeholder strings returned instead of article text when extraction
// fails. Callers always receive a non-empty string; errors never escape.
const (
	PlaceholderFetchFailed  = "Could not fetch article content"
	placeholderExtractError = "Content extraction failed"
)

// minContentLength is the substantial-content threshold: a candidate
// container shorter than this is page furniture, not the article.
const minContentLength = 150

// truncationMarker closes a body cut at the configured length limit.
const truncationMarker = "\n\n[Content truncated]"

// contentSelectors is the probe order for article containers: the semantic
// article tag first, then common CMS content classes, then broad fallbacks.
var contentSelectors = []string{
	"article",
	".article-content",
	".post-content",
	".entry-content",
	".td-post-content",
	".story",
	".article-body",
	".message-body",
	"main",
	".main",
	".content",
}

// furnitureSelector matches the non-content elements stripped before text
// extraction: scripts, chrome, ads, share widgets, comment blocks.
const furnitureSelector = "script, style, noscript, iframe, svg, form, nav, header, footer, aside, " +
	".ad, .ads, .advertisement, .share, .social, .social-share, .comments, .comment-section, " +
	".related, .related-posts, .newsletter, .sidebar"

// Extractor fetches article pages and pulls out their body text.
type Extractor struct {
	client *fetch.Client
	maxLen int
}

// New creates an Extractor. maxLen bounds the returned text length; 0
// disables truncation.
func New(client *fetch.Client, maxLen int) *Extractor {
	return &Extractor{client: client, maxLen: maxLen}
}

// Extract returns the cleaned article text for a URL. It never returns an
// error: every failure class maps to a descriptive placeholder so the
// pipeline can keep the article with a note instead of dropping it.
func (e *Extractor) Extract(ctx context.Context, url string) string {
	resp, err := e.client.Get(ctx, url)
	if err != nil {
		logger.Warn("article fetch failed", "url", url, "error", err)
		return PlaceholderFetchFailed
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		logger.Warn("article parse failed", "url", url, "error", err)
		return placeholderExtractError + ": invalid HTML"
	}

	doc.Find(furnitureSelector).Remove()

	content := ""
	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if text := blockText(sel); len(text) >= minContentLength {
			content = text
			break
		}
	}

	if content == "" {
		// No selector produced substantial content; take everything.
		content = blockText(doc.Find("body"))
	}

	content = textclean.Clean(content)
	if content == "" {
		return placeholderExtractError + ": empty document"
	}

	return e.truncate(content)
}

// blockText extracts text preserving paragraph boundaries. Falls back to
// the element's flattened text when it has no block children.
func blockText(sel *goquery.Selection) string {
	var parts []string
	sel.Find("p, h1, h2, h3, h4, li, blockquote").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	if len(parts) == 0 {
		return strings.TrimSpace(sel.Text())
	}
	return strings.Join(parts, "\n\n")
}

func (e *Extractor) truncate(text string) string {
	if e.maxLen <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= e.maxLen {
		return text
	}
	return strings.TrimSpace(string(runes[:e.maxLen])) + truncationMarker
}
