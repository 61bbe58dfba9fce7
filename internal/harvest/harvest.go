// Package harvest iterates the configured feeds, filters entries by date
// window and relevance, and assembles articles with extracted body text.
package harvest

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/araddon/dateparse"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/rss"
	"golang.org/x/sync/errgroup"

	"github.com/defwatch/defwatch/internal/classify"
	"github.com/defwatch/defwatch/internal/config"
	"github.com/defwatch/defwatch/internal/extract"
	"github.com/defwatch/defwatch/internal/fetch"
	"github.com/defwatch/defwatch/internal/logger"
	"github.com/defwatch/defwatch/internal/news"
	"github.com/defwatch/defwatch/internal/textclean"
)

// dateLayout is how publish dates appear in the report.
const dateLayout = "02 January 2006"

const googleNewsBase = "https://news.google.com/rss/search"

// Feed validation thresholds: a category with fewer than minValidFeeds
// working primaries gets backup feeds promoted, up to maxFeedsPerCategory.
const (
	minValidFeeds       = 3
	maxFeedsPerCategory = 5
)

// Stats summarizes a harvest run. FeedsReachable==0 with FeedsAttempted>0
// is the one condition treated as a total failure by the caller.
type Stats struct {
	FeedsAttempted int
	FeedsReachable int
	EntriesSeen    int
	Accepted       int
}

// Harvester runs the harvest pipeline over the configured sources.
type Harvester struct {
	cfg        config.Config
	client     *fetch.Client
	classifier *classify.Classifier
	extractor  *extract.Extractor
	sanitizer  *bluemonday.Policy
	parser     *gofeed.Parser
	searchBase string
	now        func() time.Time
}

// New wires a Harvester from its collaborators.
func New(cfg config.Config, client *fetch.Client, classifier *classify.Classifier, extractor *extract.Extractor) *Harvester {
	return &Harvester{
		cfg:        cfg,
		client:     client,
		classifier: classifier,
		extractor:  extractor,
		sanitizer:  bluemonday.StrictPolicy(),
		parser:     newParser(),
		searchBase: googleNewsBase,
		now:        time.Now,
	}
}

// newParser builds a feed parser that carries each RSS item's <source>
// title through to the universal item, which the default translator drops.
func newParser() *gofeed.Parser {
	p := gofeed.NewParser()
	p.RSSTranslator = &sourceTranslator{inner: &gofeed.DefaultRSSTranslator{}}
	return p
}

// itemSourceKey is where sourceTranslator stashes the outlet name.
const itemSourceKey = "source"

type sourceTranslator struct {
	inner *gofeed.DefaultRSSTranslator
}

func (t *sourceTranslator) Translate(feed interface{}) (*gofeed.Feed, error) {
	f, err := t.inner.Translate(feed)
	if err != nil {
		return nil, err
	}
	rssFeed, ok := feed.(*rss.Feed)
	if !ok {
		return f, nil
	}
	// The translator preserves item order, so indexes line up.
	for i, item := range rssFeed.Items {
		if i >= len(f.Items) || item.Source == nil || item.Source.Title == "" {
			continue
		}
		if f.Items[i].Custom == nil {
			f.Items[i].Custom = make(map[string]string)
		}
		f.Items[i].Custom[itemSourceKey] = item.Source.Title
	}
	return f, nil
}

// job is one feed (or search) to harvest.
type job struct {
	// category is the editorial category of the source list. Empty for
	// search-derived jobs, where the classifier's inference is used
	// instead.
	category   config.Category
	url        string
	source     string
	maxEntries int
	// search jobs label each article with the originating outlet taken
	// from the entry itself.
	search bool
}

// Harvest processes every configured feed and returns the accepted
// articles in source order. Per-feed failures are logged and reduce the
// yield; they never abort the remaining feeds.
func (h *Harvester) Harvest(ctx context.Context, daysBack int) ([]news.Article, Stats) {
	feeds := h.cfg.Feeds
	if h.cfg.Harvest.ValidateFeeds {
		feeds = h.validateFeeds(ctx)
	}

	jobs := h.buildJobs(feeds)
	cutoff := h.now().AddDate(0, 0, -daysBack)

	logger.Info("harvest starting",
		"feeds", len(jobs), "days_back", daysBack, "concurrency", h.cfg.Harvest.Concurrency)

	results := make([][]news.Article, len(jobs))
	var mu sync.Mutex
	stats := Stats{FeedsAttempted: len(jobs)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.cfg.Harvest.Concurrency)

	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			articles, reached, seen := h.harvestFeed(gctx, j, cutoff)
			mu.Lock()
			results[i] = articles
			if reached {
				stats.FeedsReachable++
			}
			stats.EntriesSeen += seen
			stats.Accepted += len(articles)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers report failures through stats, not errors

	var all []news.Article
	for _, articles := range results {
		all = append(all, articles...)
	}

	logger.Info("harvest finished",
		"feeds_reachable", stats.FeedsReachable,
		"entries_seen", stats.EntriesSeen,
		"accepted", stats.Accepted)

	return all, stats
}

// validateFeeds probes every primary feed and keeps only those that answer
// with at least one parseable entry. Categories left below minValidFeeds
// have backup feeds promoted (reachability check only) until the category
// reaches maxFeedsPerCategory.
func (h *Harvester) validateFeeds(ctx context.Context) config.Feeds {
	validated := config.Feeds{}

	for _, cf := range h.cfg.Feeds.ByCategory() {
		var keep []string
		for _, feedURL := range cf.URLs {
			if h.feedHasEntries(ctx, feedURL) {
				keep = append(keep, feedURL)
				continue
			}
			logger.Warn("feed failed validation", "category", cf.Category, "url", feedURL)
		}

		if len(keep) < minValidFeeds {
			logger.Warn("too few working feeds, trying backups",
				"category", cf.Category, "working", len(keep))
			for _, backup := range h.cfg.Feeds.Backups(cf.Category) {
				if _, err := h.client.Get(ctx, backup); err != nil {
					continue
				}
				logger.Info("backup feed added", "category", cf.Category, "url", backup)
				keep = append(keep, backup)
				if len(keep) >= maxFeedsPerCategory {
					break
				}
			}
		}

		switch cf.Category {
		case config.CategorySpace:
			validated.Space = keep
		default:
			validated.Defense = keep
		}
	}

	return validated
}

func (h *Harvester) feedHasEntries(ctx context.Context, feedURL string) bool {
	resp, err := h.client.Get(ctx, feedURL)
	if err != nil {
		return false
	}
	feed, err := h.parser.ParseString(string(resp.Body))
	return err == nil && len(feed.Items) > 0
}

func (h *Harvester) buildJobs(feeds config.Feeds) []job {
	var jobs []job
	for _, cf := range feeds.ByCategory() {
		for _, feedURL := range cf.URLs {
			jobs = append(jobs, job{
				category:   cf.Category,
				url:        feedURL,
				source:     feedURL,
				maxEntries: h.cfg.Harvest.MaxEntriesPerFeed,
			})
		}
	}
	if h.cfg.Search.Enabled {
		for _, term := range h.cfg.Search.Terms {
			jobs = append(jobs, job{
				url:        h.searchURL(term),
				source:     searchLabel(""),
				maxEntries: h.cfg.Search.MaxResultsPerTerm,
				search:     true,
			})
		}
	}
	return jobs
}

// harvestFeed processes a single feed. reached reports whether the feed
// URL answered at all, which feeds the total-failure decision.
func (h *Harvester) harvestFeed(ctx context.Context, j job, cutoff time.Time) (articles []news.Article, reached bool, seen int) {
	resp, err := h.client.Get(ctx, j.url)
	if err != nil {
		logger.Warn("feed unreachable", "url", j.url, "error", err)
		return nil, false, 0
	}

	feed, err := h.parser.ParseString(string(resp.Body))
	if err != nil {
		logger.Warn("feed parse failed", "url", j.url, "error", err)
		return nil, true, 0
	}

	items := feed.Items
	if len(items) > j.maxEntries {
		items = items[:j.maxEntries]
	}

	for _, item := range items {
		seen++

		if strings.TrimSpace(item.Title) == "" || strings.TrimSpace(item.Link) == "" {
			logger.Debug("skipping entry without title or link", "feed", j.url)
			continue
		}

		published := h.publishDate(item)
		if published.Before(cutoff) {
			continue
		}

		summary := textclean.Clean(h.sanitizer.Sanitize(item.Description))
		result := h.classifier.Classify(item.Title, summary)
		if !result.Accept {
			continue
		}

		logger.Info("extracting article", "title", truncateTitle(item.Title), "url", item.Link)
		content := h.extractor.Extract(ctx, item.Link)

		// The source list's editorial category is more reliable than
		// keyword inference; it wins when present.
		category := j.category
		if category == "" {
			category = result.Category
		}

		source := j.source
		if j.search {
			source = searchLabel(item.Custom[itemSourceKey])
		}

		articles = append(articles, news.Article{
			Title:         strings.TrimSpace(item.Title),
			URL:           strings.TrimSpace(item.Link),
			Content:       content,
			PublishedDate: published.Format(dateLayout),
			Source:        source,
			Category:      category,
		})
	}

	return articles, true, seen
}

// publishDate resolves an entry's publish time, falling back through the
// parsed fields, a lenient string parse, and finally the current time.
func (h *Harvester) publishDate(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	if item.Published != "" {
		if t, err := dateparse.ParseAny(item.Published); err == nil {
			return t
		}
	}
	return h.now()
}

func (h *Harvester) searchURL(term string) string {
	return h.searchBase + "?q=" + url.QueryEscape(term) + "&hl=en-IN&gl=IN&ceid=IN:en"
}

// searchLabel names a search-derived article by its originating outlet.
func searchLabel(outlet string) string {
	if outlet == "" {
		outlet = "Unknown"
	}
	return fmt.Sprintf("Google News (%s)", outlet)
}

func truncateTitle(title string) string {
	const limit = 50
	runes := []rune(title)
	if len(runes) <= limit {
		return title
	}
	return string(runes[:limit]) + "..."
}
