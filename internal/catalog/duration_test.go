package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Duration
		wantErr  bool
	}{
		{"Positive minutes", "45", Duration{Minutes: 45}, false},
		{"One minute", "1", Duration{Minutes: 1}, false},
		{"Maximum minutes", "480", Duration{Minutes: 480}, false},
		{"Variable marker", `"variable"`, Duration{Variable: true}, false},
		{"Unknown marker", `"unknown"`, Duration{Variable: true}, false},
		{"Uppercase marker", `"Variable"`, Duration{Variable: true}, false},
		{"Null means variable", "null", Duration{Variable: true}, false},
		{"Zero minutes rejected", "0", Duration{}, true},
		{"Negative minutes rejected", "-10", Duration{}, true},
		{"Over maximum rejected", "481", Duration{}, true},
		{"Unrecognized marker rejected", `"soon"`, Duration{}, true},
		{"Object rejected", `{"minutes": 30}`, Duration{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestDurationMarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    Duration
		expected string
	}{
		{"Fixed minutes", Duration{Minutes: 30}, "30"},
		{"Variable", Duration{Variable: true}, `"variable"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))
		})
	}
}

func TestDurationKnown(t *testing.T) {
	assert.True(t, Duration{Minutes: 20}.Known())
	assert.False(t, Duration{Variable: true}.Known())
}

func TestDurationString(t *testing.T) {
	assert.Equal(t, "45 minutes", Duration{Minutes: 45}.String())
	assert.Equal(t, "Variable", Duration{Variable: true}.String())
}
