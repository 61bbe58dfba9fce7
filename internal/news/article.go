// Package news defines the article model shared by the harvest, dedup,
// and report stages.
package news

import "github.com/defwatch/defwatch/internal/config"

// Article is one accepted news item. Instances are transient: created when
// a feed entry passes the relevance filter, enriched with extracted body
// text, and discarded once the report is rendered.
type Article struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
	// Content is the extracted body text. Always non-empty: extraction
	// failures store a descriptive placeholder instead.
	Content       string          `json:"content" yaml:"content"`
	PublishedDate string          `json:"published_date" yaml:"published_date"`
	Source        string          `json:"source" yaml:"source"`
	Category      config.Category `json:"category" yaml:"category"`
}
