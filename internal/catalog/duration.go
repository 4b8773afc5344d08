package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MaxDurationMinutes bounds the duration a catalog source may declare.
const MaxDurationMinutes = 480

// Duration is an assessment's completion time: either a bounded number of
// minutes or an explicit variable/unknown marker. An unknown duration is
// never treated as zero.
type Duration struct {
	Minutes  int
	Variable bool
}

// Known reports whether the duration is a concrete minute count.
func (d Duration) Known() bool {
	return !d.Variable
}

// String returns a display form, e.g. "45 minutes" or "Variable".
func (d Duration) String() string {
	if d.Variable {
		return "Variable"
	}
	return fmt.Sprintf("%d minutes", d.Minutes)
}

// MarshalJSON emits the minute count as a number, or the string "variable"
// when the duration is not fixed. This matches what the result table renders.
func (d Duration) MarshalJSON() ([]byte, error) {
	if d.Variable {
		return json.Marshal("variable")
	}
	return json.Marshal(d.Minutes)
}

// UnmarshalJSON accepts a positive number of minutes, the strings "variable"
// or "unknown", or null (treated as variable).
func (d *Duration) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*d = Duration{Variable: true}
		return nil
	}

	var minutes int
	if err := json.Unmarshal(data, &minutes); err == nil {
		if minutes <= 0 {
			return fmt.Errorf("duration must be positive, got %d", minutes)
		}
		if minutes > MaxDurationMinutes {
			return fmt.Errorf("duration %d exceeds maximum of %d minutes", minutes, MaxDurationMinutes)
		}
		*d = Duration{Minutes: minutes}
		return nil
	}

	var marker string
	if err := json.Unmarshal(data, &marker); err != nil {
		return fmt.Errorf("duration must be a number of minutes or \"variable\"")
	}
	switch strings.ToLower(strings.TrimSpace(marker)) {
	case "variable", "unknown":
		*d = Duration{Variable: true}
		return nil
	}
	return fmt.Errorf("unrecognized duration marker %q", marker)
}
