// Package config defines the immutable run configuration for defwatch:
// feed sources, keyword vocabularies, company watchlists, and fetch limits.
//
// Components receive a Config value at construction and never mutate it, so
// the classifier and extractor can be unit tested without network access.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Category identifies which editorial bucket an article belongs to.
type Category string

const (
	CategoryDefense Category = "Defense News"
	CategorySpace   Category = "Space News"
)

// Config is the full run configuration. Zero values are filled from
// Default; a YAML file can override any section.
type Config struct {
	Feeds      Feeds            `yaml:"feeds"`
	Keywords   Keywords         `yaml:"keywords"`
	Companies  Companies        `yaml:"companies"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Harvest    HarvestConfig    `yaml:"harvest"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Dedupe     DedupeConfig     `yaml:"dedupe"`
	Search     SearchConfig     `yaml:"search"`
}

// Feeds maps each category to its ordered feed URL list. The backup lists
// are only consulted by the startup validation pass, which promotes them
// when too few primary feeds answer.
type Feeds struct {
	Defense []string `yaml:"defense" validate:"dive,url"`
	Space   []string `yaml:"space" validate:"dive,url"`

	BackupDefense []string `yaml:"backup_defense" validate:"dive,url"`
	BackupSpace   []string `yaml:"backup_space" validate:"dive,url"`
}

// Backups returns the backup feed list for a category.
func (f Feeds) Backups(c Category) []string {
	if c == CategorySpace {
		return f.BackupSpace
	}
	return f.BackupDefense
}

// ByCategory returns the configured feed lists keyed by category.
// Iteration over the returned slice is deterministic: Defense first.
func (f Feeds) ByCategory() []CategoryFeeds {
	return []CategoryFeeds{
		{Category: CategoryDefense, URLs: f.Defense},
		{Category: CategorySpace, URLs: f.Space},
	}
}

// CategoryFeeds pairs a category with its feed URLs.
type CategoryFeeds struct {
	Category Category
	URLs     []string
}

// Keywords holds the classifier vocabularies. All matching is
// case-insensitive substring search; a keyword can therefore match inside a
// longer word, which mirrors the behavior the vocabularies were tuned for.
type Keywords struct {
	// Exclusion terms veto an entry outright (entertainment, sports,
	// unrelated civic topics).
	Exclusion []string `yaml:"exclusion"`

	// High-priority terms are sufficient evidence on their own: named
	// programs, organizations, and platforms specific to each sector.
	HighPriorityDefense []string `yaml:"high_priority_defense"`
	HighPrioritySpace   []string `yaml:"high_priority_space"`

	// General context vocabularies, scored by match count.
	Defense []string `yaml:"defense"`
	Space   []string `yaml:"space"`

	// Core-context subsets: at least one core term must corroborate a
	// general-score acceptance.
	CoreDefense []string `yaml:"core_defense"`
	CoreSpace   []string `yaml:"core_space"`
}

// Companies lists the company names scanned for the report's
// mention summary.
type Companies struct {
	Defense []string `yaml:"defense"`
	Space   []string `yaml:"space"`
}

// FetchConfig bounds HTTP behavior.
type FetchConfig struct {
	Timeout     time.Duration `yaml:"timeout" validate:"min=1s,max=60s"`
	MaxAttempts int           `yaml:"max_attempts" validate:"min=1,max=5"`
	BaseDelay   time.Duration `yaml:"base_delay" validate:"min=100ms"`
	MaxDelay    time.Duration `yaml:"max_delay"`
	// RequestsPerSecond paces all outbound requests (politeness, not
	// correctness).
	RequestsPerSecond float64  `yaml:"requests_per_second" validate:"gt=0"`
	UserAgents        []string `yaml:"user_agents" validate:"min=1"`
}

// HarvestConfig bounds feed processing.
type HarvestConfig struct {
	MaxEntriesPerFeed int           `yaml:"max_entries_per_feed" validate:"min=1,max=50"`
	Concurrency       int           `yaml:"concurrency" validate:"min=1,max=16"`
	RunTimeout        time.Duration `yaml:"run_timeout" validate:"min=1m"`
	// MaxContentLength truncates extracted article bodies. 0 disables
	// truncation.
	MaxContentLength int `yaml:"max_content_length" validate:"min=0"`
	// ValidateFeeds probes every feed before harvesting and promotes
	// backup feeds for categories with too few working sources. Off by
	// default: the extra round of requests slows startup.
	ValidateFeeds bool `yaml:"validate_feeds"`
}

// ClassifierConfig selects the exclusion policy.
type ClassifierConfig struct {
	// LenientExclusion requires two exclusion-term matches to veto instead
	// of one. The strict single-match policy is the default; the lenient
	// variant trades recall for precision on entries that mention an
	// off-topic term in passing.
	LenientExclusion bool `yaml:"lenient_exclusion"`
}

// DedupeKey selects the duplicate fingerprint policy.
type DedupeKey string

const (
	// KeyTitlePrefix fingerprints on the first five normalized title
	// tokens. Coarse: distinct articles sharing a generic prefix collapse.
	KeyTitlePrefix DedupeKey = "title-prefix"
	// KeyFullTitle fingerprints on the whole normalized title.
	KeyFullTitle DedupeKey = "full-title"
	// KeyURL fingerprints on the article URL.
	KeyURL DedupeKey = "url"
)

// DedupeConfig selects the dedup key policy.
type DedupeConfig struct {
	Key DedupeKey `yaml:"key" validate:"oneof=title-prefix full-title url"`
}

// SearchConfig drives the optional Google News search harvest.
type SearchConfig struct {
	Enabled bool     `yaml:"enabled"`
	Terms   []string `yaml:"terms"`
	// MaxResultsPerTerm caps entries taken from each search feed.
	MaxResultsPerTerm int `yaml:"max_results_per_term" validate:"min=1,max=10"`
}

var validate = validator.New()

// Validate checks field constraints on any tagged struct.
func Validate(v any) error {
	return validate.Struct(v)
}

// Load returns the default configuration, optionally overlaid with a YAML
// file. An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
