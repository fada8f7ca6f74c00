// Package search builds structured statute queries and executes them
// against the index.
package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/attorney-tools/codesearch/internal/domain"
	"github.com/attorney-tools/codesearch/internal/metrics"
)

// Service is the search executor.
type Service struct {
	idx    Searcher
	logger *zap.Logger
}

// New creates a search service.
func New(idx Searcher, logger *zap.Logger) *Service {
	return &Service{idx: idx, logger: logger}
}

// Search runs one statute search and assembles the response envelope.
// Malformed query text is caller-correctable (domain.ErrQueryParse with the
// rejected string); an unreachable index surfaces as
// domain.ErrIndexUnavailable with detail only in server logs, and is not
// retried within the request.
func (s *Service) Search(ctx context.Context, queryText, codeScope string) (*domain.SearchResult, error) {
	q, err := BuildQuery(queryText, codeScope)
	if err != nil {
		return nil, err
	}

	metrics.SearchesTotal.Inc()

	res, err := s.idx.Search(ctx, q)
	if err != nil {
		s.logger.Error("index search failed",
			zap.String("query", q.QueryText), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
	}

	docs := make([]domain.Section, 0, len(res.Hits))
	for _, hit := range res.Hits {
		docs = append(docs, domain.SectionFromStored(hit.Fields, hit.Highlights))
	}

	return &domain.SearchResult{
		QueryText: q.QueryText,
		Query:     q.Plan,
		Count:     res.Total,
		Documents: docs,
	}, nil
}
