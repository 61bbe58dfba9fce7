package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := Validate(cfg); err != nil {
		t.Fatalf("Default() fails validation: %v", err)
	}

	if len(cfg.Feeds.Defense) == 0 || len(cfg.Feeds.Space) == 0 {
		t.Error("Default() must configure feeds for both categories")
	}
	if len(cfg.Keywords.Exclusion) == 0 {
		t.Error("Default() must configure exclusion keywords")
	}
	if len(cfg.Keywords.CoreDefense) == 0 || len(cfg.Keywords.CoreSpace) == 0 {
		t.Error("Default() must configure core-context keyword subsets")
	}
	if cfg.Classifier.LenientExclusion {
		t.Error("Default() exclusion policy must be strict")
	}
	if cfg.Dedupe.Key != KeyTitlePrefix {
		t.Errorf("Default() dedupe key = %q, want %q", cfg.Dedupe.Key, KeyTitlePrefix)
	}
	if len(cfg.Feeds.BackupDefense) == 0 || len(cfg.Feeds.BackupSpace) == 0 {
		t.Error("Default() must configure backup feeds for both categories")
	}
	if cfg.Harvest.ValidateFeeds {
		t.Error("Default() feed validation must be off")
	}
}

func TestFeeds_Backups(t *testing.T) {
	f := Feeds{
		BackupDefense: []string{"https://example.com/defense.xml"},
		BackupSpace:   []string{"https://example.com/space.xml"},
	}

	if got := f.Backups(CategoryDefense); len(got) != 1 || got[0] != f.BackupDefense[0] {
		t.Errorf("Backups(Defense) = %v", got)
	}
	if got := f.Backups(CategorySpace); len(got) != 1 || got[0] != f.BackupSpace[0] {
		t.Errorf("Backups(Space) = %v", got)
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Harvest.MaxEntriesPerFeed != Default().Harvest.MaxEntriesPerFeed {
		t.Error("Load(\"\") should return defaults")
	}
}

func TestLoad_YAMLOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
feeds:
  defense:
    - https://example.com/defense.xml
harvest:
  max_entries_per_feed: 5
  concurrency: 1
dedupe:
  key: url
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Feeds.Defense) != 1 || cfg.Feeds.Defense[0] != "https://example.com/defense.xml" {
		t.Errorf("Feeds.Defense = %v, want override", cfg.Feeds.Defense)
	}
	if cfg.Harvest.MaxEntriesPerFeed != 5 {
		t.Errorf("MaxEntriesPerFeed = %d, want 5", cfg.Harvest.MaxEntriesPerFeed)
	}
	if cfg.Harvest.Concurrency != 1 {
		t.Errorf("Concurrency = %d, want 1", cfg.Harvest.Concurrency)
	}
	if cfg.Dedupe.Key != KeyURL {
		t.Errorf("Dedupe.Key = %q, want %q", cfg.Dedupe.Key, KeyURL)
	}
	// Untouched sections keep their defaults.
	if len(cfg.Keywords.Exclusion) == 0 {
		t.Error("Keywords should keep defaults when not overridden")
	}
	if cfg.Fetch.Timeout != 12*time.Second {
		t.Errorf("Fetch.Timeout = %v, want default", cfg.Fetch.Timeout)
	}
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad_feed_url", "feeds:\n  defense:\n    - not-a-url\n"},
		{"too_many_attempts", "fetch:\n  max_attempts: 99\n"},
		{"zero_concurrency", "harvest:\n  concurrency: 0\n"},
		{"unknown_dedupe_key", "dedupe:\n  key: fuzzy\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("Load() accepted invalid config:\n%s", tt.yaml)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Load() should fail for a missing config file")
	}
}

func TestFeeds_ByCategoryOrder(t *testing.T) {
	cf := Default().Feeds.ByCategory()
	if len(cf) != 2 {
		t.Fatalf("ByCategory() returned %d groups, want 2", len(cf))
	}
	if cf[0].Category != CategoryDefense || cf[1].Category != CategorySpace {
		t.Errorf("ByCategory() order = [%s, %s], want Defense then Space", cf[0].Category, cf[1].Category)
	}
}
