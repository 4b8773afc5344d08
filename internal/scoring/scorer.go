package scoring

import (
	"context"
	"fmt"
	"log"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/assessment-recommender/internal/catalog"
	"github.com/jonathan/assessment-recommender/internal/query"
)

// Scoring weights. Scores always land in [0, 1]: the similarity base is
// clamped there, the test-type boost is additive and capped, and the
// duration penalty is multiplicative.
const (
	testTypeBoost    = 0.05
	testTypeBoostCap = 0.10
	durationPenalty  = 0.7
)

// embedConcurrency bounds parallel embedding during catalog precompute.
const embedConcurrency = 8

// Scored pairs a catalog record with its relevance score. Index is the
// record's catalog load order, used downstream for deterministic
// tie-breaking. MatchedSignals names the constraint signals that affected
// the score.
type Scored struct {
	Record         catalog.Record
	Index          int
	Score          float64
	MatchedSignals []string
}

// Scorer computes relevance scores for every catalog record against a query.
type Scorer struct {
	embedder Embedder
	verbose  bool
}

// NewScorer creates a scorer around an embedder.
func NewScorer(embedder Embedder, verbose bool) *Scorer {
	return &Scorer{embedder: embedder, verbose: verbose}
}

// ScoreAll scores the query against every record. vectors must be parallel
// to records (the snapshot's precomputed embeddings); a nil vector marks a
// record whose embedding failed at load time, and such records are skipped
// rather than failing the request. An empty query yields no candidates.
func (s *Scorer) ScoreAll(ctx context.Context, q query.Query, records []catalog.Record, vectors [][]float32) ([]Scored, error) {
	if q.Empty() || len(records) == 0 {
		return nil, nil
	}
	if len(vectors) != len(records) {
		return nil, fmt.Errorf("scoring: %d vectors for %d records", len(vectors), len(records))
	}

	queryVec, err := s.embedder.Embed(ctx, q.Normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	scored := make([]Scored, 0, len(records))
	for i := range records {
		rec := &records[i]
		vec := vectors[i]
		if vec == nil || len(vec) != len(queryVec) {
			if s.verbose {
				log.Printf("[VERBOSE] Skipping %q: no usable embedding", rec.Name)
			}
			continue
		}

		base := clamp01(float64(cosine32(queryVec, vec)))
		score, signals := applyConstraints(base, rec, q.Constraints)

		scored = append(scored, Scored{
			Record:         *rec,
			Index:          i,
			Score:          score,
			MatchedSignals: signals,
		})
	}
	return scored, nil
}

// applyConstraints adjusts the similarity base with advisory constraint
// signals: a capped additive boost per requested test type present on the
// record, and a multiplicative penalty when the record's known duration
// exceeds the requested cap. Records with a variable duration are not
// penalized.
func applyConstraints(base float64, rec *catalog.Record, c query.Constraints) (float64, []string) {
	score := base
	var signals []string

	if len(c.TestTypes) > 0 {
		recordTypes := make(map[catalog.TestType]bool, len(rec.TestTypes))
		for _, t := range rec.TestTypes {
			recordTypes[t] = true
		}
		boost := 0.0
		for _, want := range c.TestTypes {
			if recordTypes[want] {
				boost += testTypeBoost
				signals = append(signals, "test_type:"+string(want))
			}
		}
		if boost > testTypeBoostCap {
			boost = testTypeBoostCap
		}
		score += boost
	}

	if c.MaxDurationMinutes > 0 && rec.Duration.Known() && rec.Duration.Minutes > c.MaxDurationMinutes {
		score *= durationPenalty
		signals = append(signals, "duration:over_cap")
	}

	return clamp01(score), signals
}

// EmbedRecords precomputes one embedding per record's matching text, in
// load order, with bounded parallelism. A record whose embedding fails is
// reported and left with a nil vector so the scorer can skip it; only
// context cancellation fails the whole precompute.
func EmbedRecords(ctx context.Context, embedder Embedder, records []catalog.Record) ([][]float32, error) {
	vectors := make([][]float32, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(embedConcurrency)

	for i := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			vec, err := embedder.Embed(ctx, records[i].MatchingText())
			if err != nil {
				log.Printf("Failed to embed %q, record will be skipped during scoring: %v", records[i].Name, err)
				return nil
			}
			vectors[i] = vec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("embedding precompute canceled: %w", err)
	}
	return vectors, nil
}

func cosine32(a, b []float32) float32 {
	var dot, na, nb float32
	for i := range a {
		af, bf := a[i], b[i]
		dot += af * bf
		na += af * af
		nb += bf * bf
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(na))) * float32(math.Sqrt(float64(nb))))
}

func clamp01(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
