package scoring

import (
	"context"
	"math"
	"strings"
	"unicode"
)

// DefaultDimensions is the vector size of the hashing embedder.
const DefaultDimensions = 256

const bigramWeight = 0.5

// HashingEmbedder is the default embedder: a hashed term-frequency vector
// over word unigrams and bigrams, L2-normalized. It is a pure function of
// its input text, needs no model files or network, and its vectors are
// non-negative so cosine similarity already falls in [0, 1].
type HashingEmbedder struct {
	dims int
}

// NewHashingEmbedder creates a hashing embedder. dims <= 0 uses
// DefaultDimensions.
func NewHashingEmbedder(dims int) *HashingEmbedder {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &HashingEmbedder{dims: dims}
}

// Dimensions returns the vector size.
func (h *HashingEmbedder) Dimensions() int {
	return h.dims
}

// Embed maps text to a normalized term-frequency vector. Empty or
// tokenless text yields the zero vector, which scores 0 against everything.
func (h *HashingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, h.dims)

	tokens := tokenize(text)
	if len(tokens) == 0 {
		return vec, nil
	}

	for i, tok := range tokens {
		vec[fnv32(tok)%uint32(h.dims)] += 1.0
		if i+1 < len(tokens) {
			vec[fnv32(tok+" "+tokens[i+1])%uint32(h.dims)] += bigramWeight
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		inv := float32(1.0 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec, nil
}

// EmbedBatch embeds each text independently.
func (h *HashingEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := h.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

// tokenize lowercases and splits on any non-alphanumeric rune.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func fnv32(s string) uint32 {
	const (
		offset32 = 2166136261
		prime32  = 16777619
	)
	var h uint32 = offset32
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime32
	}
	return h
}
