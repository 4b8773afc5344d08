package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord(name, url string) Record {
	return Record{
		Name:        name,
		URL:         url,
		Description: "A sample assessment",
		Duration:    Duration{Minutes: 30},
		TestTypes:   []TestType{TestTypeCognitive},
	}
}

func TestNewSnapshot(t *testing.T) {
	records := []Record{
		validRecord("Numerical Reasoning", "https://example.com/numerical"),
		validRecord("Verbal Reasoning", "https://example.com/verbal"),
	}

	snap, err := NewSnapshot(records)
	require.NoError(t, err)

	assert.Equal(t, 2, snap.Len())
	assert.NotEmpty(t, snap.Version())
	assert.False(t, snap.LoadedAt().IsZero())
	assert.Equal(t, "Numerical Reasoning", snap.All()[0].Name, "should preserve load order")
}

func TestNewSnapshot_VersionChangesPerLoad(t *testing.T) {
	records := []Record{validRecord("A", "https://example.com/a")}

	first, err := NewSnapshot(records)
	require.NoError(t, err)
	second, err := NewSnapshot(records)
	require.NoError(t, err)

	assert.NotEqual(t, first.Version(), second.Version())
}

func TestNewSnapshot_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		errText string
	}{
		{
			name:    "Missing name",
			records: []Record{validRecord("", "https://example.com/a")},
			errText: "failed validation",
		},
		{
			name:    "Missing URL",
			records: []Record{validRecord("A", "")},
			errText: "failed validation",
		},
		{
			name:    "Invalid URL",
			records: []Record{validRecord("A", "not a url")},
			errText: "failed validation",
		},
		{
			name: "Unknown test type",
			records: []Record{{
				Name:      "A",
				URL:       "https://example.com/a",
				Duration:  Duration{Minutes: 10},
				TestTypes: []TestType{"astrology"},
			}},
			errText: "failed validation",
		},
		{
			name: "Duplicate test type on one record",
			records: []Record{{
				Name:      "A",
				URL:       "https://example.com/a",
				Duration:  Duration{Minutes: 10},
				TestTypes: []TestType{TestTypeSkills, TestTypeSkills},
			}},
			errText: "failed validation",
		},
		{
			name: "Duplicate name",
			records: []Record{
				validRecord("A", "https://example.com/a"),
				validRecord("A", "https://example.com/b"),
			},
			errText: "duplicate assessment name",
		},
		{
			name: "Duplicate URL",
			records: []Record{
				validRecord("A", "https://example.com/a"),
				validRecord("B", "https://example.com/a"),
			},
			errText: "duplicate assessment url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSnapshot(tt.records)
			require.Error(t, err)

			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Contains(t, loadErr.Error(), tt.errText)
		})
	}
}

func TestNewSnapshot_CopiesRecords(t *testing.T) {
	records := []Record{validRecord("A", "https://example.com/a")}

	snap, err := NewSnapshot(records)
	require.NoError(t, err)

	records[0].Name = "mutated"
	assert.Equal(t, "A", snap.All()[0].Name, "snapshot should be immune to caller mutation")
}

func TestValidTestType(t *testing.T) {
	assert.True(t, ValidTestType(TestTypePersonality))
	assert.True(t, ValidTestType(TestTypeSituationalJudgment))
	assert.False(t, ValidTestType("astrology"))
	assert.False(t, ValidTestType(""))
}

func TestTestTypes_Sorted(t *testing.T) {
	types := TestTypes()
	require.Len(t, types, 11)
	for i := 1; i < len(types); i++ {
		assert.Less(t, string(types[i-1]), string(types[i]), "vocabulary should be sorted")
	}
}

func TestRecordMatchingText(t *testing.T) {
	rec := Record{
		Name:        "Java Developer Test",
		Description: "Measures Java proficiency",
		TestTypes:   []TestType{TestTypeKnowledge, TestTypeSkills},
	}

	text := rec.MatchingText()
	assert.Equal(t, "java developer test measures java proficiency knowledge skills", text)
}
