package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/assessment-recommender/internal/catalog"
	"github.com/jonathan/assessment-recommender/internal/config"
	"github.com/jonathan/assessment-recommender/internal/recommend"
	"github.com/jonathan/assessment-recommender/internal/scoring"
	"github.com/jonathan/assessment-recommender/internal/selection"
)

// buildEmbedder constructs the embedding provider selected in the
// configuration. The returned cleanup func releases provider resources and
// is safe to call once.
func buildEmbedder(ctx context.Context, cfg *config.Config) (scoring.Embedder, func(), error) {
	switch cfg.EmbedProvider {
	case "", config.ProviderHashing:
		return scoring.NewHashingEmbedder(scoring.DefaultDimensions), func() {}, nil

	case config.ProviderGemini:
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable is required for the gemini embed provider")
		}
		embedder, err := scoring.NewGeminiEmbedder(ctx, apiKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Gemini embedder: %w", err)
		}
		return embedder, func() { _ = embedder.Close() }, nil

	case config.ProviderOllama:
		return scoring.NewOllamaEmbedder(cfg.OllamaURL, cfg.OllamaModel), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown embed_provider %q", cfg.EmbedProvider)
	}
}

// buildSource constructs the catalog source from configuration: a Postgres
// source when database_url is set, otherwise a JSON file source.
func buildSource(ctx context.Context, cfg *config.Config) (catalog.Source, func(), error) {
	if cfg.DatabaseURL != "" {
		source, err := catalog.NewPostgresSource(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to catalog database: %w", err)
		}
		return source, source.Close, nil
	}

	if cfg.Catalog == "" {
		return nil, nil, fmt.Errorf("no catalog configured (set --catalog, CATALOG_PATH or DATABASE_URL)")
	}
	return &catalog.FileSource{Path: cfg.Catalog}, func() {}, nil
}

// buildEngine wires source, embedder and selection policy into a ready
// engine with the catalog loaded and embeddings precomputed.
func buildEngine(ctx context.Context, cfg *config.Config) (*recommend.Engine, func(), error) {
	embedder, closeEmbedder, err := buildEmbedder(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	source, closeSource, err := buildSource(ctx, cfg)
	if err != nil {
		closeEmbedder()
		return nil, nil, err
	}

	policy := selection.Config{
		MinResults:     cfg.MinResults,
		MaxResults:     cfg.MaxResults,
		RelevanceFloor: cfg.RelevanceFloor,
	}

	engine := recommend.New(source, embedder, policy, cfg.Verbose)
	if err := engine.Reload(ctx); err != nil {
		closeSource()
		closeEmbedder()
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	cleanup := func() {
		closeSource()
		closeEmbedder()
	}
	return engine, cleanup, nil
}

// loadConfig resolves configuration from an optional JSON file plus the
// environment, then validates it.
func loadConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.MergeEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
