// Package query converts raw job-description text into the canonical form the
// relevance scorer matches against, and extracts advisory constraints from it.
package query

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxQueryRunes bounds the normalized query length. Job postings can be long,
// so longer inputs are truncated rather than rejected.
const MaxQueryRunes = 5000

var (
	markupRe     = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Query is the per-request canonical representation of the input text.
// The raw text is preserved for display and audit; matching uses Normalized.
type Query struct {
	Raw         string
	Normalized  string
	Constraints Constraints
}

// Empty reports whether the query carries no usable text. The scorer treats
// an empty query as a zero-information input, not an error.
func (q Query) Empty() bool {
	return q.Normalized == ""
}

// Normalize builds a Query from raw input. Steps, in order: strip markup and
// control characters, NFKC-normalize, collapse whitespace, lowercase the
// matching form, truncate to MaxQueryRunes, then extract constraints from the
// truncated text.
func Normalize(raw string) Query {
	cleaned := markupRe.ReplaceAllString(raw, " ")
	cleaned = norm.NFKC.String(cleaned)
	cleaned = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, cleaned)
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	normalized := strings.ToLower(cleaned)
	if runes := []rune(normalized); len(runes) > MaxQueryRunes {
		normalized = strings.TrimSpace(string(runes[:MaxQueryRunes]))
	}

	return Query{
		Raw:         raw,
		Normalized:  normalized,
		Constraints: ExtractConstraints(normalized),
	}
}
