// Package recommend wires the catalog snapshot, relevance scorer and
// selector into the engine the HTTP layer and CLI call.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/jonathan/assessment-recommender/internal/catalog"
	"github.com/jonathan/assessment-recommender/internal/query"
	"github.com/jonathan/assessment-recommender/internal/scoring"
	"github.com/jonathan/assessment-recommender/internal/selection"
)

// ErrCatalogUnavailable is returned when no catalog snapshot has been
// loaded. It is the only engine-level failure the public boundary reports;
// an empty recommendation list is a successful outcome.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// index pairs a catalog snapshot with its precomputed embeddings. A request
// reads exactly one index, so a concurrent reload can never mix records
// from two snapshots into one response.
type index struct {
	snap    *catalog.Snapshot
	vectors [][]float32
}

// Stats describes the currently served snapshot.
type Stats struct {
	Assessments int       `json:"assessments"`
	Version     string    `json:"version"`
	LoadedAt    time.Time `json:"loaded_at"`
}

// Engine is the bounded-catalog recommender. It is safe for concurrent use:
// the only shared state is the current index, swapped atomically on reload.
type Engine struct {
	source   catalog.Source
	embedder scoring.Embedder
	scorer   *scoring.Scorer
	policy   selection.Config
	verbose  bool

	current atomic.Pointer[index]
}

// New creates an engine around a catalog source and embedder. Call Reload
// before serving requests.
func New(source catalog.Source, embedder scoring.Embedder, policy selection.Config, verbose bool) *Engine {
	return &Engine{
		source:   source,
		embedder: embedder,
		scorer:   scoring.NewScorer(embedder, verbose),
		policy:   policy,
		verbose:  verbose,
	}
}

// Reload builds a fresh snapshot from the source, precomputes embeddings for
// every record, and atomically swaps it in. In-flight requests keep the old
// snapshot; on failure the previous snapshot stays in place untouched.
func (e *Engine) Reload(ctx context.Context) error {
	snap, err := e.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	vectors, err := scoring.EmbedRecords(ctx, e.embedder, snap.All())
	if err != nil {
		return fmt.Errorf("failed to precompute embeddings: %w", err)
	}

	e.current.Store(&index{snap: snap, vectors: vectors})
	log.Printf("Catalog loaded: %d assessments (version %s)", snap.Len(), snap.Version())
	return nil
}

// Ready reports whether a snapshot is loaded.
func (e *Engine) Ready() bool {
	return e.current.Load() != nil
}

// Stats returns information about the served snapshot.
func (e *Engine) Stats() (Stats, error) {
	idx := e.current.Load()
	if idx == nil {
		return Stats{}, ErrCatalogUnavailable
	}
	return Stats{
		Assessments: idx.snap.Len(),
		Version:     idx.snap.Version(),
		LoadedAt:    idx.snap.LoadedAt(),
	}, nil
}

// Recommend normalizes the job description, scores it against the current
// snapshot and returns the selected assessments in ranked order. An empty or
// unmatched query returns an empty slice, never an error; the engine only
// fails when no catalog is loaded or the context is canceled.
func (e *Engine) Recommend(ctx context.Context, jobDescription string) ([]Result, error) {
	idx := e.current.Load()
	if idx == nil {
		return nil, ErrCatalogUnavailable
	}

	q := query.Normalize(jobDescription)
	if q.Empty() || idx.snap.Len() == 0 {
		return []Result{}, nil
	}
	if e.verbose {
		log.Printf("[VERBOSE] Query: %d chars normalized, max duration %d min, %d test-type hints",
			len(q.Normalized), q.Constraints.MaxDurationMinutes, len(q.Constraints.TestTypes))
	}

	scored, err := e.scorer.ScoreAll(ctx, q, idx.snap.All(), idx.vectors)
	if err != nil {
		return nil, err
	}

	selected := selection.Select(scored, e.policy)
	if e.verbose {
		log.Printf("[VERBOSE] Scored %d candidates, selected %d", len(scored), len(selected))
	}
	return Assemble(selected), nil
}
