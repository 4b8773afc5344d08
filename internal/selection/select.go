// Package selection orders scored candidates and applies the recommendation
// count policy: relevance floor, minimum-count guarantee and maximum cap.
package selection

import (
	"sort"

	"github.com/jonathan/assessment-recommender/internal/scoring"
)

// Defaults for the count policy. The engine targets 5-10 recommendations
// when enough candidates qualify, never more than MaxResults, and at least
// MinResults whenever the catalog and query are both non-empty.
const (
	DefaultMinResults     = 1
	DefaultMaxResults     = 10
	DefaultRelevanceFloor = 0.15
)

// Config tunes the selection policy. Zero values fall back to the defaults.
type Config struct {
	MinResults     int
	MaxResults     int
	RelevanceFloor float64
}

// DefaultConfig returns the default selection policy.
func DefaultConfig() Config {
	return Config{
		MinResults:     DefaultMinResults,
		MaxResults:     DefaultMaxResults,
		RelevanceFloor: DefaultRelevanceFloor,
	}
}

func (c Config) normalized() Config {
	if c.MinResults <= 0 {
		c.MinResults = DefaultMinResults
	}
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	if c.MaxResults < c.MinResults {
		c.MaxResults = c.MinResults
	}
	if c.RelevanceFloor <= 0 {
		c.RelevanceFloor = DefaultRelevanceFloor
	}
	return c
}

// Select orders candidates by score descending, ties broken by catalog load
// order, then applies the relevance floor and count bounds. Candidates below
// the floor are dropped unless that would leave fewer than MinResults, in
// which case the top scorers are kept regardless of the floor. An empty
// candidate list yields an empty selection; that is a valid outcome, not an
// error.
func Select(candidates []scoring.Scored, cfg Config) []scoring.Scored {
	if len(candidates) == 0 {
		return nil
	}
	cfg = cfg.normalized()

	ordered := make([]scoring.Scored, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Score != ordered[j].Score {
			return ordered[i].Score > ordered[j].Score
		}
		return ordered[i].Index < ordered[j].Index
	})

	aboveFloor := 0
	for _, c := range ordered {
		if c.Score >= cfg.RelevanceFloor {
			aboveFloor++
		}
	}

	keep := aboveFloor
	if keep < cfg.MinResults {
		// Floor would starve the result; keep the top scorers instead.
		keep = cfg.MinResults
	}
	if keep > len(ordered) {
		keep = len(ordered)
	}
	if keep > cfg.MaxResults {
		keep = cfg.MaxResults
	}

	return ordered[:keep]
}
