// Package credential reads caller token records from the shared key-value
// store. Tokens are pre-provisioned elsewhere; this client is read-only.
package credential

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/attorney-tools/codesearch/internal/db"
	"github.com/attorney-tools/codesearch/internal/domain"
)

// store is the consumer interface for credential lookups (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// Repo looks up whether a caller token is enabled.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a credential repository. Keys are namespaced under
// "<keyPrefix>token:".
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// Enabled reports whether the caller's token is enabled.
//   - missing key: the token was never provisioned, reported as disabled
//   - malformed value: domain.ErrTokenDataCorrupt
//   - store failure: domain.ErrStoreUnavailable wrapping the cause
func (r *Repo) Enabled(ctx context.Context, callerID string) (bool, error) {
	key := r.keyPrefix + "token:" + callerID

	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	switch strings.ToUpper(strings.TrimSpace(string(raw))) {
	case "TRUE", "T", "Y", "YES", "1":
		return true, nil
	case "FALSE", "F", "N", "NO", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%w: token %q", domain.ErrTokenDataCorrupt, callerID)
	}
}
