package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential signals a request with no caller identifier.
	ErrMissingCredential = errors.New("missing credential")
	// ErrTokenNotEnabled signals a disabled or unprovisioned caller token.
	ErrTokenNotEnabled = errors.New("token not enabled")
	// ErrTokenDataCorrupt signals a token record whose enabled flag is not a boolean.
	ErrTokenDataCorrupt = errors.New("token data corrupt")
	// ErrStoreUnavailable signals that the shared key-value store could not be reached.
	ErrStoreUnavailable = errors.New("credential store unavailable")
	// ErrRateLimited signals a caller over its per-second request budget.
	ErrRateLimited = errors.New("rate limited")
	// ErrQueryParse signals malformed query text. Caller-correctable.
	ErrQueryParse = errors.New("query parse failed")
	// ErrIndexUnavailable signals that the search index could not be reached.
	ErrIndexUnavailable = errors.New("index unavailable")
)

// QueryParseError wraps ErrQueryParse with the rejected query text so the
// caller can see what was rejected.
type QueryParseError struct {
	QueryText string
}

func (e *QueryParseError) Error() string {
	return fmt.Sprintf("%s: %q", ErrQueryParse.Error(), e.QueryText)
}

func (e *QueryParseError) Unwrap() error { return ErrQueryParse }

// NewQueryParse creates a query parse error carrying the rejected text.
func NewQueryParse(queryText string) error {
	return &QueryParseError{QueryText: queryText}
}
