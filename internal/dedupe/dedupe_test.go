package dedupe

import (
	"testing"

	"github.com/defwatch/defwatch/internal/config"
	"github.com/defwatch/defwatch/internal/news"
)

func titled(titles ...string) []news.Article {
	articles := make([]news.Article, len(titles))
	for i, title := range titles {
		articles[i] = news.Article{Title: title, URL: "https://example.com/" + title}
	}
	return articles
}

func TestDedupe_TitlePrefix(t *testing.T) {
	d := New(config.DedupeConfig{Key: config.KeyTitlePrefix})

	tests := []struct {
		name   string
		titles []string
		want   []string
	}{
		{
			"identical_prefix_collapses",
			[]string{
				"ISRO Launches PSLV Rocket Successfully",
				"ISRO Launches PSLV Rocket Successfully Today",
			},
			[]string{"ISRO Launches PSLV Rocket Successfully"},
		},
		{
			"punctuation_and_case_ignored",
			[]string{
				"DRDO tests new missile system!",
				"DRDO Tests New Missile System",
			},
			[]string{"DRDO tests new missile system!"},
		},
		{
			"distinct_titles_kept",
			[]string{
				"HAL Delivers First Tejas Trainer",
				"ISRO Launches PSLV Rocket Successfully",
			},
			[]string{
				"HAL Delivers First Tejas Trainer",
				"ISRO Launches PSLV Rocket Successfully",
			},
		},
		{
			"short_titles_compared_whole",
			[]string{"Tejas Update", "Tejas Update"},
			[]string{"Tejas Update"},
		},
		{
			"empty_input",
			nil,
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Dedupe(titled(tt.titles...))
			if len(got) != len(tt.want) {
				t.Fatalf("Dedupe() kept %d articles, want %d", len(got), len(tt.want))
			}
			for i, want := range tt.want {
				if got[i].Title != want {
					t.Errorf("Dedupe()[%d].Title = %q, want %q", i, got[i].Title, want)
				}
			}
		})
	}
}

func TestDedupe_OrderPreservingFirstWins(t *testing.T) {
	d := New(config.DedupeConfig{Key: config.KeyTitlePrefix})

	articles := []news.Article{
		{Title: "India Signs Defense Deal With France Today", Source: "first"},
		{Title: "HAL Delivers First Tejas Trainer", Source: "second"},
		{Title: "India Signs Defense Deal With France, Again", Source: "third"},
	}

	got := d.Dedupe(articles)
	if len(got) != 2 {
		t.Fatalf("Dedupe() kept %d articles, want 2", len(got))
	}
	if got[0].Source != "first" || got[1].Source != "second" {
		t.Errorf("Dedupe() order = [%s, %s], want [first, second]", got[0].Source, got[1].Source)
	}
}

func TestDedupe_FullTitleKey(t *testing.T) {
	d := New(config.DedupeConfig{Key: config.KeyFullTitle})

	// Same five-token prefix but different full titles: the stricter key
	// keeps both.
	articles := titled(
		"India Signs Defense Deal With France",
		"India Signs Defense Deal With Israel",
	)

	if got := d.Dedupe(articles); len(got) != 2 {
		t.Errorf("Dedupe() with full-title key kept %d articles, want 2", len(got))
	}
}

func TestDedupe_URLKey(t *testing.T) {
	d := New(config.DedupeConfig{Key: config.KeyURL})

	articles := []news.Article{
		{Title: "Same Story", URL: "https://a.example.com/1"},
		{Title: "Same Story", URL: "https://b.example.com/1"},
		{Title: "Different Story", URL: "https://a.example.com/1"},
	}

	got := d.Dedupe(articles)
	if len(got) != 2 {
		t.Fatalf("Dedupe() with url key kept %d articles, want 2", len(got))
	}
	if got[0].URL != "https://a.example.com/1" || got[1].URL != "https://b.example.com/1" {
		t.Errorf("unexpected survivors: %v", got)
	}
}
