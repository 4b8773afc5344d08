package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/jonathan/assessment-recommender/internal/catalog"
	"github.com/jonathan/assessment-recommender/internal/scoring"
	"github.com/jonathan/assessment-recommender/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySource serves a fixed record set, optionally failing on demand.
type memorySource struct {
	mu      sync.Mutex
	records []catalog.Record
	fail    bool
}

func (m *memorySource) Load(_ context.Context) (*catalog.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, &catalog.LoadError{Source: "memory", Message: "load disabled"}
	}
	return catalog.NewSnapshot(m.records)
}

func (m *memorySource) set(records []catalog.Record, fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = records
	m.fail = fail
}

func sampleCatalog() []catalog.Record {
	return []catalog.Record{
		{
			Name:        "Java Programming Test",
			URL:         "https://example.com/java",
			Description: "Knowledge of java programming for software developer roles",
			Duration:    catalog.Duration{Minutes: 60},
			TestTypes:   []catalog.TestType{catalog.TestTypeKnowledge},
		},
		{
			Name:        "Python Coding Simulation",
			URL:         "https://example.com/python",
			Description: "Hands-on python coding simulation for engineers",
			Duration:    catalog.Duration{Minutes: 45},
			TestTypes:   []catalog.TestType{catalog.TestTypeSimulation, catalog.TestTypeSkills},
		},
		{
			Name:        "Occupational Personality Questionnaire",
			URL:         "https://example.com/opq",
			Description: "Workplace personality and behavioral style questionnaire",
			Duration:    catalog.Duration{Minutes: 25},
			TestTypes:   []catalog.TestType{catalog.TestTypePersonality},
		},
		{
			Name:        "Verbal Reasoning Assessment",
			URL:         "https://example.com/verbal",
			Description: "Cognitive verbal reasoning ability assessment",
			Duration:    catalog.Duration{Minutes: 20},
			TestTypes:   []catalog.TestType{catalog.TestTypeCognitive, catalog.TestTypeAbility},
		},
		{
			Name:        "Customer Service Scenarios",
			URL:         "https://example.com/service",
			Description: "Situational judgment scenarios for customer service roles",
			Duration:    catalog.Duration{Variable: true},
			TestTypes:   []catalog.TestType{catalog.TestTypeSituationalJudgment},
		},
	}
}

func newTestEngine(t *testing.T, records []catalog.Record) (*Engine, *memorySource) {
	t.Helper()
	source := &memorySource{records: records}
	engine := New(source, scoring.NewHashingEmbedder(scoring.DefaultDimensions), selection.DefaultConfig(), false)
	require.NoError(t, engine.Reload(context.Background()))
	return engine, source
}

func TestRecommend_CountBounds(t *testing.T) {
	engine, _ := newTestEngine(t, sampleCatalog())

	results, err := engine.Recommend(context.Background(), "software developer proficient in java and python")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(results), 1, "non-empty query against non-empty catalog returns at least one")
	assert.LessOrEqual(t, len(results), selection.DefaultMaxResults)
}

func TestRecommend_EmptyDescription(t *testing.T) {
	engine, _ := newTestEngine(t, sampleCatalog())

	for _, input := range []string{"", "   ", "<p></p>"} {
		results, err := engine.Recommend(context.Background(), input)
		require.NoError(t, err, "empty input is not an error")
		assert.Empty(t, results)
		assert.NotNil(t, results, "empty result must serialize as [], not null")
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	engine, _ := newTestEngine(t, sampleCatalog())
	input := "hiring a java developer, personality fit matters, under 30 minutes"

	first, err := engine.Recommend(context.Background(), input)
	require.NoError(t, err)
	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := engine.Recommend(context.Background(), input)
		require.NoError(t, err)
		againJSON, err := json.Marshal(again)
		require.NoError(t, err)
		assert.Equal(t, string(firstJSON), string(againJSON), "identical input must produce byte-identical output")
	}
}

func TestRecommend_UniqueResults(t *testing.T) {
	engine, _ := newTestEngine(t, sampleCatalog())

	results, err := engine.Recommend(context.Background(), "developer role with coding and reasoning assessments")
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, r := range results {
		assert.False(t, seen[r.Name], "no assessment may appear twice")
		seen[r.Name] = true
	}
}

func TestRecommend_RelevantCatalogEntryRanksHigher(t *testing.T) {
	engine, _ := newTestEngine(t, sampleCatalog())

	results, err := engine.Recommend(context.Background(), "java programming knowledge for software developer")
	require.NoError(t, err)

	require.NotEmpty(t, results)
	assert.Equal(t, "Java Programming Test", results[0].Name)
}

func TestRecommend_DurationPenaltyReorders(t *testing.T) {
	// Two records with near-identical text; only the duration differs. A
	// requested cap must rank the shorter one first.
	records := []catalog.Record{
		{
			Name:        "Coding Assessment Long Form",
			URL:         "https://example.com/long",
			Description: "general coding assessment for developers",
			Duration:    catalog.Duration{Minutes: 90},
			TestTypes:   []catalog.TestType{catalog.TestTypeSkills},
		},
		{
			Name:        "Coding Assessment Short Form",
			URL:         "https://example.com/short",
			Description: "general coding assessment for developers",
			Duration:    catalog.Duration{Minutes: 20},
			TestTypes:   []catalog.TestType{catalog.TestTypeSkills},
		},
	}
	engine, _ := newTestEngine(t, records)

	results, err := engine.Recommend(context.Background(), "coding assessment for developers, must be under 30 minutes")
	require.NoError(t, err)

	require.NotEmpty(t, results)
	assert.Equal(t, "Coding Assessment Short Form", results[0].Name)
}

func TestRecommend_NoCatalogLoaded(t *testing.T) {
	source := &memorySource{fail: true}
	engine := New(source, scoring.NewHashingEmbedder(scoring.DefaultDimensions), selection.DefaultConfig(), false)

	_, err := engine.Recommend(context.Background(), "developer")
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.False(t, engine.Ready())

	_, err = engine.Stats()
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestReload_FailureKeepsOldSnapshot(t *testing.T) {
	engine, source := newTestEngine(t, sampleCatalog())

	before, err := engine.Stats()
	require.NoError(t, err)

	source.set(nil, true)
	err = engine.Reload(context.Background())
	require.Error(t, err)

	after, err := engine.Stats()
	require.NoError(t, err)
	assert.Equal(t, before.Version, after.Version, "failed reload must leave the old snapshot serving")

	results, err := engine.Recommend(context.Background(), "java developer")
	require.NoError(t, err)
	assert.NotEmpty(t, results)
}

func TestReload_SwapsVersion(t *testing.T) {
	engine, source := newTestEngine(t, sampleCatalog())

	before, err := engine.Stats()
	require.NoError(t, err)

	source.set(sampleCatalog()[:2], false)
	require.NoError(t, engine.Reload(context.Background()))

	after, err := engine.Stats()
	require.NoError(t, err)
	assert.NotEqual(t, before.Version, after.Version)
	assert.Equal(t, 2, after.Assessments)
}

func TestRecommend_ConcurrentWithReload(t *testing.T) {
	engine, source := newTestEngine(t, sampleCatalog())
	ctx := context.Background()

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Readers: every response must be internally consistent with exactly
	// one snapshot, never an error other than catalog-unavailable.
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				results, err := engine.Recommend(ctx, "java developer with personality fit")
				if err != nil && !errors.Is(err, ErrCatalogUnavailable) {
					t.Errorf("unexpected error during reload: %v", err)
					return
				}
				for _, r := range results {
					if r.Name == "" {
						t.Error("response contains an empty record")
						return
					}
				}
			}
		}()
	}

	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			source.set(sampleCatalog()[:3], false)
		} else {
			source.set(sampleCatalog(), false)
		}
		require.NoError(t, engine.Reload(ctx))
	}
	close(stop)
	wg.Wait()
}

func TestAssemble(t *testing.T) {
	records := sampleCatalog()
	selected := []scoring.Scored{
		{Record: records[2], Index: 2, Score: 0.9},
		{Record: records[0], Index: 0, Score: 0.4},
	}

	results := Assemble(selected)

	require.Len(t, results, 2)
	assert.Equal(t, "Occupational Personality Questionnaire", results[0].Name, "ranked order must be preserved")
	assert.Equal(t, "Java Programming Test", results[1].Name)
	assert.Equal(t, []string{"personality"}, results[0].TestTypes)
	assert.Equal(t, "https://example.com/opq", results[0].URL)
}

func TestAssemble_Empty(t *testing.T) {
	assert.Empty(t, Assemble(nil))
	assert.NotNil(t, Assemble(nil), "assembled results must serialize as [], not null")
}

func TestResultJSONShape(t *testing.T) {
	results := Assemble([]scoring.Scored{{Record: sampleCatalog()[0], Index: 0, Score: 0.8}})

	data, err := json.Marshal(results)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)

	for _, key := range []string{"name", "url", "description", "duration", "test_types", "remote_testing_support", "adaptive_irt_support"} {
		assert.Contains(t, decoded[0], key, fmt.Sprintf("response must expose %s", key))
	}
	assert.NotContains(t, decoded[0], "score", "internal score must not leak into the response")
}
