// Package catalog provides the immutable assessment catalog: record types,
// loaders for file and database sources, and snapshot construction.
package catalog

import (
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TestType is a category tag from the controlled test-type vocabulary.
type TestType string

// Controlled test-type vocabulary. Catalog sources may only use these tags.
const (
	TestTypeAbility             TestType = "ability"
	TestTypeAptitude            TestType = "aptitude"
	TestTypeBiodata             TestType = "biodata"
	TestTypeCognitive           TestType = "cognitive"
	TestTypeCompetencies        TestType = "competencies"
	TestTypeDevelopment         TestType = "development"
	TestTypeKnowledge           TestType = "knowledge"
	TestTypePersonality         TestType = "personality"
	TestTypeSimulation          TestType = "simulation"
	TestTypeSituationalJudgment TestType = "situational-judgment"
	TestTypeSkills              TestType = "skills"
)

var validTestTypes = map[TestType]bool{
	TestTypeAbility:             true,
	TestTypeAptitude:            true,
	TestTypeBiodata:             true,
	TestTypeCognitive:           true,
	TestTypeCompetencies:        true,
	TestTypeDevelopment:         true,
	TestTypeKnowledge:           true,
	TestTypePersonality:         true,
	TestTypeSimulation:          true,
	TestTypeSituationalJudgment: true,
	TestTypeSkills:              true,
}

// ValidTestType reports whether tag is part of the controlled vocabulary.
func ValidTestType(tag TestType) bool {
	return validTestTypes[tag]
}

// TestTypes returns the controlled vocabulary in sorted order.
func TestTypes() []TestType {
	out := make([]TestType, 0, len(validTestTypes))
	for t := range validTestTypes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Record is a single assessment in the catalog. Records are immutable after
// load; a snapshot is replaced wholesale, never edited in place.
type Record struct {
	Name                 string     `json:"name" validate:"required"`
	URL                  string     `json:"url" validate:"required,url"`
	Description          string     `json:"description"`
	Duration             Duration   `json:"duration"`
	TestTypes            []TestType `json:"test_types" validate:"unique,dive,test_type"`
	RemoteTestingSupport bool       `json:"remote_testing_support"`
	AdaptiveIRTSupport   bool       `json:"adaptive_irt_support"`
}

// MatchingText returns the text the relevance scorer matches against:
// name, description and test-type tags concatenated, lowercased.
func (r *Record) MatchingText() string {
	var sb strings.Builder
	sb.WriteString(r.Name)
	if r.Description != "" {
		sb.WriteString(" ")
		sb.WriteString(r.Description)
	}
	for _, t := range r.TestTypes {
		sb.WriteString(" ")
		sb.WriteString(string(t))
	}
	return strings.ToLower(sb.String())
}

// newRecordValidator builds a validator with the test_type tag registered.
func newRecordValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for empty tag names, which cannot happen here.
	_ = v.RegisterValidation("test_type", func(fl validator.FieldLevel) bool {
		return ValidTestType(TestType(fl.Field().String()))
	})
	return v
}
