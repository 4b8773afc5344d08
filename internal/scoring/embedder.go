// Package scoring computes relevance scores between a normalized query and
// catalog records: an embedding similarity base combined with advisory
// constraint boosts and penalties.
package scoring

import "context"

// Embedder produces fixed-dimension vector representations of text.
// Implementations must be deterministic for a given input text: identical
// text yields identical vectors regardless of request order or time.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
}
