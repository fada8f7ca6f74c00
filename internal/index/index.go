// Package index defines the full-text index capability contract so any
// mature text-indexing engine can back the search and probe operations.
package index

import (
	"context"
	"unicode/utf8"
)

// Query is the structured form of one search, built by the query builder.
type Query struct {
	// QueryText is the effective query string: the caller's free text plus
	// the appended code-scope clause, if any. Reported in the envelope.
	QueryText string
	// Plan is a printable structural form of the query for diagnostics.
	Plan string
	// Terms are the free-text terms; each must match at least one of the
	// multi-search fields (section_name, text, section_number).
	Terms []string
	// Codes restricts matches to these code abbreviations (upper-cased).
	// Empty means all codes.
	Codes []string
}

// Hit is one matched section: its stored fields plus highlighted excerpts
// from the body text.
type Hit struct {
	Fields     map[string]string
	Highlights string
}

// Result holds matched sections in rank order.
type Result struct {
	Total int
	Hits  []Hit
}

// Index is the capability interface over the statute index.
type Index interface {
	// Search runs a structured query and returns all matching sections.
	Search(ctx context.Context, q *Query) (*Result, error)
	// Probe reports whether at least one section is indexed under the given
	// code abbreviation. Zero results is a valid outcome, not an error.
	Probe(ctx context.Context, code string) (bool, error)
	// DocCount reports the number of indexed sections (health checks).
	DocCount() (uint64, error)
}

// FuzzinessFor returns the edit distance tolerated for a query term. Short
// terms match exactly; longer terms tolerate one typo. Length is counted in
// runes so non-ASCII terms get the same treatment as ASCII ones.
func FuzzinessFor(term string) int {
	if utf8.RuneCountInString(term) > 3 {
		return 1
	}
	return 0
}
