// Package output writes the report artifact in the supported formats.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/defwatch/defwatch/internal/news"
)

// Format represents artifact format types.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Document is everything a writer needs: the rendered Markdown report plus
// the structured article list for the data formats.
type Document struct {
	GeneratedAt time.Time      `json:"generated_at" yaml:"generated_at"`
	DaysBack    int            `json:"days_back" yaml:"days_back"`
	Total       int            `json:"total_articles" yaml:"total_articles"`
	Articles    []news.Article `json:"articles" yaml:"articles"`
	Report      string         `json:"-" yaml:"-"`
}

// Writer serializes a Document to one output format.
type Writer interface {
	Write(doc Document) error
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatMarkdown:
		return &markdownWriter{w: w}, nil
	case FormatJSON:
		return &jsonWriter{w: w}, nil
	case FormatYAML:
		return &yamlWriter{w: w}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Extension returns the filename extension for a format.
func Extension(format Format) string {
	switch format {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "md"
	}
}

// Filename builds the artifact name with the run date and window embedded,
// e.g. "defwatch_20250825_last7days.md".
func Filename(format Format, now time.Time, daysBack int) string {
	return fmt.Sprintf("defwatch_%s_last%ddays.%s",
		now.Format("20060102"), daysBack, Extension(format))
}

type markdownWriter struct {
	w io.Writer
}

func (m *markdownWriter) Write(doc Document) error {
	_, err := io.WriteString(m.w, doc.Report)
	return err
}
