package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `{
		"embed_provider": "hashing",
		"min_results": 3,
		"max_results": 8,
		"relevance_floor": 0.2,
		"port": 9090,
		"allowed_origins": ["https://app.example.com"],
		"verbose": true
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ProviderHashing, cfg.EmbedProvider)
	assert.Equal(t, 3, cfg.MinResults)
	assert.Equal(t, 8, cfg.MaxResults)
	assert.Equal(t, 0.2, cfg.RelevanceFloor)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Verbose)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("Empty path", func(t *testing.T) {
		_, err := Load("")
		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		_, err := Load(writeConfigFile(t, "{broken"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	catalogPath := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(catalogPath, []byte(`{"assessments": []}`), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"Empty config is valid", Config{}, false},
		{"Known provider", Config{EmbedProvider: ProviderGemini}, false},
		{"Unknown provider", Config{EmbedProvider: "tarot"}, true},
		{"Negative min results", Config{MinResults: -1}, true},
		{"Negative max results", Config{MaxResults: -1}, true},
		{"Min exceeds max", Config{MinResults: 10, MaxResults: 5}, true},
		{"Floor above one", Config{RelevanceFloor: 1.5}, true},
		{"Negative floor", Config{RelevanceFloor: -0.1}, true},
		{"Existing catalog file", Config{Catalog: catalogPath}, false},
		{"Missing catalog file", Config{Catalog: filepath.Join(t.TempDir(), "nope.json")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeEnv(t *testing.T) {
	t.Setenv("CATALOG_PATH", "/env/catalog.json")
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("OLLAMA_URL", "http://env:11434")

	t.Run("Fills empty fields", func(t *testing.T) {
		cfg := Config{}
		cfg.MergeEnv()
		assert.Equal(t, "/env/catalog.json", cfg.Catalog)
		assert.Equal(t, "postgres://env", cfg.DatabaseURL)
		assert.Equal(t, "http://env:11434", cfg.OllamaURL)
	})

	t.Run("Explicit values win", func(t *testing.T) {
		cfg := Config{Catalog: "/file/catalog.json", DatabaseURL: "postgres://file"}
		cfg.MergeEnv()
		assert.Equal(t, "/file/catalog.json", cfg.Catalog)
		assert.Equal(t, "postgres://file", cfg.DatabaseURL)
	})
}
