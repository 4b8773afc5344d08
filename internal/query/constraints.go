package query

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/assessment-recommender/internal/catalog"
)

// Constraints are structured hints parsed from the query text. They are
// advisory: the scorer applies them as boosts and penalties, never as hard
// filters, since extraction from free text is imperfect.
type Constraints struct {
	// MaxDurationMinutes is the requested duration cap; 0 means none found.
	MaxDurationMinutes int
	// TestTypes lists requested category tags, in deterministic order.
	TestTypes []catalog.TestType
}

// Empty reports whether no constraints were extracted.
func (c Constraints) Empty() bool {
	return c.MaxDurationMinutes == 0 && len(c.TestTypes) == 0
}

// maxDurationPatterns match phrasings like "under 30 minutes", "within 45
// mins", "max of 60 minutes", "30 minutes or less". The first capture group
// is the minute count.
var maxDurationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:under|within|less than|at most|no more than|no longer than|max(?:imum)?(?: of)?|up to)\s+(\d{1,3})\s*(?:minutes|mins?)\b`),
	regexp.MustCompile(`(\d{1,3})\s*(?:minutes|mins?)\s+(?:or\s+(?:less|fewer|under)|max(?:imum)?)\b`),
}

// testTypeKeywords maps phrases that commonly appear in job descriptions to
// their catalog test-type tag. Matching is substring-based on the already
// lowercased query text.
var testTypeKeywords = map[string]catalog.TestType{
	"ability test":          catalog.TestTypeAbility,
	"aptitude":              catalog.TestTypeAptitude,
	"biodata":               catalog.TestTypeBiodata,
	"cognitive":             catalog.TestTypeCognitive,
	"competenc":             catalog.TestTypeCompetencies,
	"behavioral assessment": catalog.TestTypePersonality,
	"knowledge test":        catalog.TestTypeKnowledge,
	"personality":           catalog.TestTypePersonality,
	"simulation":            catalog.TestTypeSimulation,
	"situational judgment":  catalog.TestTypeSituationalJudgment,
	"situational judgement": catalog.TestTypeSituationalJudgment,
	"skills test":           catalog.TestTypeSkills,
	"skills assessment":     catalog.TestTypeSkills,
	"reasoning":             catalog.TestTypeCognitive,
}

// ExtractConstraints parses duration caps and test-type keywords from
// normalized (lowercased) query text. Output is deterministic for a given
// input: keyword phrases are scanned in sorted order and the smallest
// mentioned duration cap wins.
func ExtractConstraints(normalized string) Constraints {
	var c Constraints
	if normalized == "" {
		return c
	}

	for _, re := range maxDurationPatterns {
		for _, match := range re.FindAllStringSubmatch(normalized, -1) {
			minutes, err := strconv.Atoi(match[1])
			if err != nil || minutes <= 0 {
				continue
			}
			if c.MaxDurationMinutes == 0 || minutes < c.MaxDurationMinutes {
				c.MaxDurationMinutes = minutes
			}
		}
	}

	phrases := make([]string, 0, len(testTypeKeywords))
	for phrase := range testTypeKeywords {
		phrases = append(phrases, phrase)
	}
	sort.Strings(phrases)

	seen := make(map[catalog.TestType]bool)
	for _, phrase := range phrases {
		if !containsPhrase(normalized, phrase) {
			continue
		}
		tag := testTypeKeywords[phrase]
		if !seen[tag] {
			seen[tag] = true
			c.TestTypes = append(c.TestTypes, tag)
		}
	}

	return c
}

// containsPhrase reports whether phrase occurs in text at a word boundary.
// The leading boundary prevents "personality" matching inside
// "impersonality"; trailing boundaries are not enforced because several
// phrases are deliberate prefixes (e.g. "competenc").
func containsPhrase(text, phrase string) bool {
	offset := 0
	for {
		i := strings.Index(text[offset:], phrase)
		if i < 0 {
			return false
		}
		i += offset
		if i == 0 || !isWordByte(text[i-1]) {
			return true
		}
		offset = i + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '-'
}
