package search

import (
	"strconv"
	"strings"

	"github.com/attorney-tools/codesearch/internal/domain"
	"github.com/attorney-tools/codesearch/internal/index"
)

// ScopeAll is the wildcard code scope meaning "search every code". An empty
// scope string means the same thing.
const ScopeAll = "*"

// queryFields are the free-text search targets, in plan order.
var queryFields = []string{domain.FieldSectionName, domain.FieldText, domain.FieldSectionNumber}

// BuildQuery translates free text plus an optional code scope into the
// structured query the index understands.
//
// When the scope is the wildcard, no scope clause exists at all — the
// unscoped path carries no scope-clause state. Otherwise each space-
// delimited abbreviation is upper-cased into a per-code equality clause,
// the clauses are OR-combined, and the combined clause is appended to the
// effective query string.
func BuildQuery(queryText, codeScope string) (*index.Query, error) {
	terms := strings.Fields(queryText)
	if len(terms) == 0 {
		return nil, domain.NewQueryParse(queryText)
	}

	q := &index.Query{
		QueryText: queryText,
		Terms:     terms,
	}

	if codeScope != ScopeAll && codeScope != "" {
		codes := strings.Fields(strings.ToUpper(codeScope))
		clauses := make([]string, len(codes))
		for i, code := range codes {
			clauses[i] = domain.FieldCode + ":" + code
		}
		q.Codes = codes
		q.QueryText = queryText + " (" + strings.Join(clauses, " OR ") + ")"
	}

	q.Plan = buildPlan(q)
	return q, nil
}

// buildPlan renders the structural form of the query for diagnostics:
// every term must match one of the multi-search fields, conjoined with the
// code-scope disjunction when present.
func buildPlan(q *index.Query) string {
	var b strings.Builder
	for i, term := range q.Terms {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString("+(")
		suffix := ""
		if fuzz := index.FuzzinessFor(term); fuzz > 0 {
			suffix = "~" + strconv.Itoa(fuzz)
		}
		for j, field := range queryFields {
			if j > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(field + ":" + term + suffix)
		}
		b.WriteString(")")
	}

	if len(q.Codes) > 0 {
		b.WriteString(" +(")
		for i, code := range q.Codes {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(domain.FieldCode + ":" + code)
		}
		b.WriteString(")")
	}

	return b.String()
}
