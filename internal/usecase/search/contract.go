package search

import (
	"context"

	"github.com/attorney-tools/codesearch/internal/index"
)

// Searcher runs structured queries against the statute index.
type Searcher interface {
	Search(ctx context.Context, q *index.Query) (*index.Result, error)
}
