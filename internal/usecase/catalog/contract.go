package catalog

import (
	"context"
	"time"

	"github.com/attorney-tools/codesearch/internal/domain"
)

// DescriptorSource enumerates configured code descriptors.
type DescriptorSource interface {
	Descriptors() ([]domain.CodeDescriptor, error)
}

// Prober checks whether a code has at least one indexed section.
type Prober interface {
	Probe(ctx context.Context, code string) (bool, error)
}

// Cache stores the assembled listing between rebuilds.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
