package catalog

import (
	"context"
	"encoding/json"
	"os"

	"github.com/jonathan/assessment-recommender/schemas"
)

// Source produces catalog snapshots. Load builds a complete, validated
// snapshot or fails; it never returns a partial catalog.
type Source interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// catalogDocument is the on-disk catalog file shape.
type catalogDocument struct {
	Assessments []Record `json:"assessments"`
}

// FileSource loads the catalog from a JSON file validated against the
// catalog JSON Schema.
type FileSource struct {
	Path string
}

// Load reads, schema-validates and decodes the catalog file.
func (f *FileSource) Load(_ context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, &LoadError{Source: f.Path, Message: "failed to read catalog file", Cause: err}
	}

	if err := schemas.ValidateCatalog(data); err != nil {
		return nil, &LoadError{Source: f.Path, Message: "catalog file failed schema validation", Cause: err}
	}

	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Source: f.Path, Message: "failed to parse catalog JSON", Cause: err}
	}

	snap, err := NewSnapshot(doc.Assessments)
	if err != nil {
		return nil, err
	}
	return snap, nil
}
