// Package report renders the harvested articles as a Markdown document
// with per-category sections and a company-mention summary.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/defwatch/defwatch/internal/config"
	"github.com/defwatch/defwatch/internal/news"
)

// Renderer produces Markdown reports. Pure: same articles, same output.
type Renderer struct {
	companies config.Companies
}

// New creates a Renderer with the configured company watchlists.
func New(cfg config.Config) *Renderer {
	return &Renderer{companies: cfg.Companies}
}

// Render builds the full Markdown report. An empty article list still
// produces a document that states zero results, so callers always have an
// artifact to inspect.
func (r *Renderer) Render(articles []news.Article, daysBack int, now time.Time) string {
	var sb strings.Builder

	period := fmt.Sprintf("last %d day", daysBack)
	if daysBack != 1 {
		period += "s"
	}

	sb.WriteString("# Defense & Space News Summary\n")
	fmt.Fprintf(&sb, "## %s - Generated on %s\n\n", titleCase(period), now.Format("January 2, 2006"))

	if len(articles) == 0 {
		fmt.Fprintf(&sb, "No articles found for the %s.\n", period)
		return sb.String()
	}

	var defense, space []news.Article
	for _, a := range articles {
		if a.Category == config.CategorySpace {
			space = append(space, a)
		} else {
			defense = append(defense, a)
		}
	}

	fmt.Fprintf(&sb, "**Total Articles:** %d (%d Defense, %d Space)\n\n---\n\n",
		len(articles), len(defense), len(space))

	if len(defense) > 0 {
		fmt.Fprintf(&sb, "## 🛡️ DEFENSE SECTOR NEWS (%d articles)\n\n", len(defense))
		writeArticles(&sb, defense)
	}

	if len(space) > 0 {
		fmt.Fprintf(&sb, "## 🚀 SPACE SECTOR NEWS (%d articles)\n\n", len(space))
		writeArticles(&sb, space)
	}

	sb.WriteString(r.companySummary(articles))

	return sb.String()
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func writeArticles(sb *strings.Builder, articles []news.Article) {
	for i, a := range articles {
		fmt.Fprintf(sb, "### %d. %s\n\n", i+1, a.Title)
		fmt.Fprintf(sb, "**Date:** %s\n", a.PublishedDate)
		fmt.Fprintf(sb, "**Link:** %s\n", a.URL)
		fmt.Fprintf(sb, "**Source:** %s\n\n", a.Source)
		fmt.Fprintf(sb, "**Full Article Text:**\n%s\n\n---\n\n", a.Content)
	}
}

// companySummary scans every article's title and body for the watchlisted
// company names. Categories with no matches get an explicit "none
// mentioned" line rather than being omitted.
func (r *Renderer) companySummary(articles []news.Article) string {
	var sb strings.Builder
	sb.WriteString("\n## 📊 COMPANIES MENTIONED THIS PERIOD\n\n")

	fmt.Fprintf(&sb, "**Defense Companies:** %s\n\n",
		mentionedList(articles, r.companies.Defense))
	fmt.Fprintf(&sb, "**Space Companies:** %s\n\n",
		mentionedList(articles, r.companies.Space))

	return sb.String()
}

func mentionedList(articles []news.Article, companies []string) string {
	mentioned := make(map[string]struct{})
	for _, a := range articles {
		text := strings.ToLower(a.Title + " " + a.Content)
		for _, company := range companies {
			if strings.Contains(text, strings.ToLower(company)) {
				mentioned[company] = struct{}{}
			}
		}
	}

	if len(mentioned) == 0 {
		return "none mentioned"
	}

	names := make([]string, 0, len(mentioned))
	for name := range mentioned {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
