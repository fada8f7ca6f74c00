package health

import "context"

// StorePinger checks key-value store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// IndexChecker checks that the search index is open and readable.
type IndexChecker interface {
	DocCount() (uint64, error)
}
