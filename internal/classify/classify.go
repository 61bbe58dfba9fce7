// Package classify scores feed entries for defense/space relevance using
// the configured keyword vocabularies.
package classify

import (
	"strings"

	"github.com/defwatch/defwatch/internal/config"
)

// Result is the classifier's decision for one entry.
type Result struct {
	Accept   bool
	Category config.Category
}

// Classifier applies the exclusion gate, high-priority gate, and general
// keyword scoring described below. It is pure: no network, no mutation.
type Classifier struct {
	keywords config.Keywords
	// exclusionThreshold is the number of exclusion-term matches that
	// vetoes an entry. Strict policy (1) is the default: a single
	// off-topic term is a hard exclude. The lenient policy (2) is kept
	// for configurations that prefer precision over recall.
	exclusionThreshold int
}

// New builds a Classifier from the configured vocabularies and policy.
func New(cfg config.Config) *Classifier {
	threshold := 1
	if cfg.Classifier.LenientExclusion {
		threshold = 2
	}
	return &Classifier{
		keywords:           cfg.Keywords,
		exclusionThreshold: threshold,
	}
}

// Classify decides whether an entry is relevant and which category it
// belongs to. Matching is case-insensitive substring search against the
// concatenated title and body; an empty title always rejects.
func (c *Classifier) Classify(title, body string) Result {
	if strings.TrimSpace(title) == "" {
		return Result{}
	}

	text := strings.ToLower(title + " " + body)

	// Exclusion gate.
	if countMatches(text, c.keywords.Exclusion) >= c.exclusionThreshold {
		return Result{}
	}

	// High-priority gate: a single named program or organization is
	// sufficient evidence on its own.
	defensePriority := countMatches(text, c.keywords.HighPriorityDefense)
	spacePriority := countMatches(text, c.keywords.HighPrioritySpace)
	if defensePriority > 0 || spacePriority > 0 {
		if spacePriority > defensePriority {
			return Result{Accept: true, Category: config.CategorySpace}
		}
		return Result{Accept: true, Category: config.CategoryDefense}
	}

	// General scoring: require at least two matches overall plus one
	// core-context term, so incidental mentions don't qualify.
	defenseScore := countMatches(text, c.keywords.Defense)
	spaceScore := countMatches(text, c.keywords.Space)
	coreDefense := countMatches(text, c.keywords.CoreDefense)
	coreSpace := countMatches(text, c.keywords.CoreSpace)

	if defenseScore+spaceScore < 2 || coreDefense+coreSpace == 0 {
		return Result{}
	}

	switch {
	case defenseScore > spaceScore:
		return Result{Accept: true, Category: config.CategoryDefense}
	case spaceScore > defenseScore:
		return Result{Accept: true, Category: config.CategorySpace}
	case coreSpace > 0 && coreDefense == 0:
		// Tied scores resolve to the side owning the core-context match.
		return Result{Accept: true, Category: config.CategorySpace}
	default:
		return Result{Accept: true, Category: config.CategoryDefense}
	}
}

// countMatches counts how many vocabulary terms occur in text. Substring
// matching, not word-boundary: a term can match inside a longer word.
func countMatches(text string, terms []string) int {
	n := 0
	for _, term := range terms {
		if term == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(term)) {
			n++
		}
	}
	return n
}
