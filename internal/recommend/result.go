package recommend

import (
	"github.com/jonathan/assessment-recommender/internal/catalog"
	"github.com/jonathan/assessment-recommender/internal/scoring"
)

// Result is the public per-assessment shape returned to callers. The HTTP
// layer wraps it in a transport envelope; the engine never does.
type Result struct {
	Name                 string           `json:"name"`
	URL                  string           `json:"url"`
	Description          string           `json:"description"`
	Duration             catalog.Duration `json:"duration"`
	TestTypes            []string         `json:"test_types"`
	RemoteTestingSupport bool             `json:"remote_testing_support"`
	AdaptiveIRTSupport   bool             `json:"adaptive_irt_support"`
}

// Assemble maps selected records to the public result shape, preserving the
// ranked order. Pure mapping, no business logic.
func Assemble(selected []scoring.Scored) []Result {
	results := make([]Result, 0, len(selected))
	for _, s := range selected {
		testTypes := make([]string, len(s.Record.TestTypes))
		for i, t := range s.Record.TestTypes {
			testTypes[i] = string(t)
		}
		results = append(results, Result{
			Name:                 s.Record.Name,
			URL:                  s.Record.URL,
			Description:          s.Record.Description,
			Duration:             s.Record.Duration,
			TestTypes:            testTypes,
			RemoteTestingSupport: s.Record.RemoteTestingSupport,
			AdaptiveIRTSupport:   s.Record.AdaptiveIRTSupport,
		})
	}
	return results
}
