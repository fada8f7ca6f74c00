package admission

import "context"

// CredentialChecker reports whether a caller's token is enabled.
type CredentialChecker interface {
	Enabled(ctx context.Context, callerID string) (bool, error)
}

// RateLimiter records one request and reports whether it is within budget.
type RateLimiter interface {
	Allow(ctx context.Context, callerID string) (bool, error)
}
