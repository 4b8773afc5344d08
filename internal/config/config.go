// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Embedding provider names accepted in EmbedProvider.
const (
	ProviderHashing = "hashing"
	ProviderGemini  = "gemini"
	ProviderOllama  = "ollama"
)

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags or environment.
type Config struct {
	// Catalog source: exactly one of these is used. DatabaseURL wins when
	// both are set via environment merge.
	Catalog     string `json:"catalog,omitempty"`      // Path to catalog JSON file
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Embedding
	EmbedProvider string `json:"embed_provider,omitempty"` // hashing (default), gemini or ollama
	GeminiModel   string `json:"gemini_model,omitempty"`   // Gemini embedding model name
	OllamaURL     string `json:"ollama_url,omitempty"`     // Ollama base URL
	OllamaModel   string `json:"ollama_model,omitempty"`   // Ollama embedding model name

	// Selection policy
	MinResults     int     `json:"min_results,omitempty"`     // Minimum recommendations (default 1)
	MaxResults     int     `json:"max_results,omitempty"`     // Maximum recommendations (default 10)
	RelevanceFloor float64 `json:"relevance_floor,omitempty"` // Minimum score to include (default 0.15)

	// Server
	Port           int      `json:"port,omitempty"`            // HTTP listen port
	AllowedOrigins []string `json:"allowed_origins,omitempty"` // CORS origins; empty means "*"

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Use headless browser for SPA job postings
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// Load loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.EmbedProvider {
	case "", ProviderHashing, ProviderGemini, ProviderOllama:
	default:
		return fmt.Errorf("config error: unknown embed_provider %q", c.EmbedProvider)
	}

	if c.MinResults < 0 {
		return fmt.Errorf("config error: 'min_results' must be non-negative")
	}
	if c.MaxResults < 0 {
		return fmt.Errorf("config error: 'max_results' must be non-negative")
	}
	if c.MinResults > 0 && c.MaxResults > 0 && c.MinResults > c.MaxResults {
		return fmt.Errorf("config error: 'min_results' exceeds 'max_results'")
	}
	if c.RelevanceFloor < 0 || c.RelevanceFloor > 1 {
		return fmt.Errorf("config error: 'relevance_floor' must be in [0, 1]")
	}

	if c.Catalog != "" {
		if _, err := os.Stat(c.Catalog); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.Catalog)
		}
	}

	return nil
}

// MergeEnv fills empty fields from environment variables. Explicit config
// file and flag values win over the environment.
func (c *Config) MergeEnv() {
	if c.Catalog == "" {
		c.Catalog = os.Getenv("CATALOG_PATH")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.OllamaURL == "" {
		c.OllamaURL = os.Getenv("OLLAMA_URL")
	}
}
