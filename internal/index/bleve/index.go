// Package bleve backs the index capability with a bleve full-text index
// opened from a pre-built on-disk artifact.
package bleve

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/attorney-tools/codesearch/internal/domain"
	"github.com/attorney-tools/codesearch/internal/index"
)

// Compile-time check: Engine implements index.Index.
var _ index.Index = (*Engine)(nil)

const (
	// fragmentChars caps each highlighted excerpt; the fragmenter centers
	// fragments on matched terms, so no separate surround budget is needed.
	fragmentChars = 1000

	fragmenterName  = "statuteFragmenter"
	highlighterName = "statuteHighlight"

	fragmentSeparator = "..."
)

var highlightOnce sync.Once

// registerHighlighter defines a capped-fragment HTML highlighter in the
// bleve registry. Safe to call more than once.
func registerHighlighter() {
	highlightOnce.Do(func() {
		_, err := bleve.Config.Cache.DefineFragmenter(fragmenterName, map[string]interface{}{
			"type": "simple",
			"size": float64(fragmentChars),
		})
		if err != nil {
			panic(fmt.Sprintf("define fragmenter: %v", err))
		}
		_, err = bleve.Config.Cache.DefineHighlighter(highlighterName, map[string]interface{}{
			"type":       "simple",
			"fragmenter": fragmenterName,
			"formatter":  "html",
		})
		if err != nil {
			panic(fmt.Sprintf("define highlighter: %v", err))
		}
	})
}

// Engine implements index.Index over a bleve index.
type Engine struct {
	idx bleve.Index
}

// Open opens an existing index directory (the pre-built artifact).
func Open(path string) (*Engine, error) {
	registerHighlighter()
	idx, err := bleve.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", path, err)
	}
	return &Engine{idx: idx}, nil
}

// NewMemOnly creates an empty in-memory index with the statute mapping.
func NewMemOnly() (*Engine, error) {
	registerHighlighter()
	idx, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("create mem index: %w", err)
	}
	return &Engine{idx: idx}, nil
}

// Close releases the underlying index.
func (e *Engine) Close() error {
	return e.idx.Close()
}

// DocCount reports the number of indexed sections.
func (e *Engine) DocCount() (uint64, error) {
	n, err := e.idx.DocCount()
	if err != nil {
		return 0, fmt.Errorf("doc count: %w", err)
	}
	return n, nil
}

// IndexSection adds or replaces one section. Empty fields are omitted so
// retrieval falls back to display sentinels.
func (e *Engine) IndexSection(id string, s domain.Section) error {
	doc := make(map[string]interface{}, 13)
	put := func(name, val string) {
		if val != "" {
			doc[name] = val
		}
	}
	put(domain.FieldCode, s.Code)
	put(domain.FieldCodeName, s.CodeName)
	put(domain.FieldTitle, s.Title)
	put(domain.FieldSubtitle, s.Subtitle)
	put(domain.FieldChapter, s.Chapter)
	put(domain.FieldSubchapter, s.Subchapter)
	put(domain.FieldSectionPrefix, s.SectionPrefix)
	put(domain.FieldSectionNumber, s.SectionNumber)
	put(domain.FieldSectionName, s.SectionName)
	put(domain.FieldText, s.Text)
	put(domain.FieldSourceText, s.SourceText)
	put(domain.FieldFutureEffectiveDate, s.FutureEffectiveDate)
	put(domain.FieldFilename, s.Filename)

	if err := e.idx.Index(id, doc); err != nil {
		return fmt.Errorf("index section %s: %w", id, err)
	}
	return nil
}

// multiFields are the free-text search targets; each query term must match
// at least one of them.
var multiFields = []string{domain.FieldSectionName, domain.FieldText, domain.FieldSectionNumber}

// Search runs a structured query and returns all matching sections with
// highlighted body-text excerpts.
func (e *Engine) Search(ctx context.Context, q *index.Query) (*index.Result, error) {
	bq := buildQuery(q)

	// First pass counts matches so the fetch is uncapped without guessing.
	countReq := bleve.NewSearchRequest(bq)
	countReq.Size = 0
	countRes, err := e.idx.SearchInContext(ctx, countReq)
	if err != nil {
		return nil, fmt.Errorf("search count: %w", err)
	}
	total := int(countRes.Total)
	if total == 0 {
		return &index.Result{}, nil
	}

	req := bleve.NewSearchRequest(bq)
	req.Size = total
	req.Fields = []string{"*"}
	req.Highlight = bleve.NewHighlightWithStyle(highlighterName)
	req.Highlight.AddField(domain.FieldText)

	res, err := e.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make([]index.Hit, 0, len(res.Hits))
	for _, hit := range res.Hits {
		fields := make(map[string]string, len(hit.Fields))
		for name, val := range hit.Fields {
			if s, ok := val.(string); ok {
				fields[name] = s
			}
		}
		hits = append(hits, index.Hit{
			Fields:     fields,
			Highlights: strings.Join(hit.Fragments[domain.FieldText], fragmentSeparator),
		})
	}

	return &index.Result{Total: total, Hits: hits}, nil
}

// Probe reports whether at least one section is indexed under code.
func (e *Engine) Probe(ctx context.Context, code string) (bool, error) {
	tq := bleve.NewTermQuery(strings.ToUpper(code))
	tq.SetField(domain.FieldCode)

	req := bleve.NewSearchRequest(tq)
	req.Size = 0
	res, err := e.idx.SearchInContext(ctx, req)
	if err != nil {
		return false, fmt.Errorf("probe %s: %w", code, err)
	}
	return res.Total > 0, nil
}

// buildQuery translates the structured query into bleve form: a conjunction
// of per-term multi-field fuzzy disjunctions, optionally conjoined with a
// code-scope disjunction. The unscoped path constructs no scope clause.
func buildQuery(q *index.Query) query.Query {
	parts := make([]query.Query, 0, len(q.Terms)+1)

	for _, term := range q.Terms {
		fieldQueries := make([]query.Query, 0, len(multiFields))
		for _, field := range multiFields {
			mq := bleve.NewMatchQuery(term)
			mq.SetField(field)
			mq.SetFuzziness(index.FuzzinessFor(term))
			fieldQueries = append(fieldQueries, mq)
		}
		parts = append(parts, bleve.NewDisjunctionQuery(fieldQueries...))
	}

	if len(q.Codes) > 0 {
		codeQueries := make([]query.Query, 0, len(q.Codes))
		for _, code := range q.Codes {
			tq := bleve.NewTermQuery(code)
			tq.SetField(domain.FieldCode)
			codeQueries = append(codeQueries, tq)
		}
		parts = append(parts, bleve.NewDisjunctionQuery(codeQueries...))
	}

	return bleve.NewConjunctionQuery(parts...)
}
