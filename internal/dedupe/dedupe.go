// Package dedupe collapses near-identical articles by a normalized title
// fingerprint.
package dedupe

import (
	"strings"
	"unicode"

	"github.com/defwatch/defwatch/internal/config"
	"github.com/defwatch/defwatch/internal/news"
)

// titlePrefixTokens is how many normalized title tokens form the default
// fingerprint. Deliberately coarse: two genuinely distinct articles sharing
// a generic five-word prefix will collapse, an accepted false-positive
// cost. The full-title and url key policies exist for callers who need a
// stricter key.
const titlePrefixTokens = 5

// Deduper removes duplicate articles, keeping the first occurrence.
type Deduper struct {
	key config.DedupeKey
}

// New creates a Deduper with the configured key policy.
func New(cfg config.DedupeConfig) *Deduper {
	return &Deduper{key: cfg.Key}
}

// Dedupe returns the input with duplicates removed, order preserved.
func (d *Deduper) Dedupe(articles []news.Article) []news.Article {
	seen := make(map[string]struct{}, len(articles))
	out := make([]news.Article, 0, len(articles))

	for _, article := range articles {
		key := d.fingerprint(article)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, article)
	}

	return out
}

func (d *Deduper) fingerprint(article news.Article) string {
	switch d.key {
	case config.KeyURL:
		return article.URL
	case config.KeyFullTitle:
		return strings.Join(normalizeTokens(article.Title), " ")
	default:
		tokens := normalizeTokens(article.Title)
		if len(tokens) > titlePrefixTokens {
			tokens = tokens[:titlePrefixTokens]
		}
		return strings.Join(tokens, " ")
	}
}

// normalizeTokens lowercases the title, strips punctuation, and splits on
// whitespace.
func normalizeTokens(title string) []string {
	var sb strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		sb.WriteRune(r)
	}
	return strings.Fields(sb.String())
}
