package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Snapshot is one immutable version of the catalog table. A snapshot is built
// once, validated as a whole, and replaced wholesale on reload so concurrent
// readers never observe a partially-updated record.
type Snapshot struct {
	records  []Record
	version  string
	loadedAt time.Time
}

// NewSnapshot validates records and builds a snapshot preserving load order.
// It fails if any record is invalid or if a name or URL appears twice.
func NewSnapshot(records []Record) (*Snapshot, error) {
	v := newRecordValidator()
	seenNames := make(map[string]int, len(records))
	seenURLs := make(map[string]int, len(records))

	for i := range records {
		rec := &records[i]
		if err := v.Struct(rec); err != nil {
			return nil, &LoadError{
				Source:  "records",
				Message: fmt.Sprintf("record %d (%q) failed validation", i, rec.Name),
				Cause:   err,
			}
		}
		if prev, dup := seenNames[rec.Name]; dup {
			return nil, &LoadError{
				Source:  "records",
				Message: fmt.Sprintf("duplicate assessment name %q (records %d and %d)", rec.Name, prev, i),
			}
		}
		if prev, dup := seenURLs[rec.URL]; dup {
			return nil, &LoadError{
				Source:  "records",
				Message: fmt.Sprintf("duplicate assessment url %q (records %d and %d)", rec.URL, prev, i),
			}
		}
		seenNames[rec.Name] = i
		seenURLs[rec.URL] = i
	}

	copied := make([]Record, len(records))
	copy(copied, records)

	return &Snapshot{
		records:  copied,
		version:  uuid.New().String(),
		loadedAt: time.Now(),
	}, nil
}

// All returns the records in load order. Callers must not mutate the slice.
func (s *Snapshot) All() []Record {
	return s.records
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// Version identifies this snapshot, changing on every load.
func (s *Snapshot) Version() string {
	return s.version
}

// LoadedAt returns when this snapshot was built.
func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}
