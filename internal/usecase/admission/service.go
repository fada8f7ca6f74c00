// Package admission implements the pre-handler gate combining credential
// verification and per-second rate limiting.
package admission

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/attorney-tools/codesearch/internal/domain"
	"github.com/attorney-tools/codesearch/internal/metrics"
)

// Service evaluates one pass/reject decision per inbound request.
type Service struct {
	creds   CredentialChecker
	limiter RateLimiter
	logger  *zap.Logger
}

// New creates the admission gate.
func New(creds CredentialChecker, limiter RateLimiter, logger *zap.Logger) *Service {
	return &Service{creds: creds, limiter: limiter, logger: logger}
}

// Admit returns nil when the caller may proceed, or a domain error naming
// the rejection reason.
//
// The credential check runs strictly before the rate check: the counter is
// only incremented for callers whose credentials already passed, so
// unauthenticated probes never consume anyone's budget.
func (s *Service) Admit(ctx context.Context, callerID string) error {
	if callerID == "" {
		return s.reject(domain.ErrMissingCredential, callerID)
	}

	enabled, err := s.creds.Enabled(ctx, callerID)
	if err != nil {
		// Full failure detail stays in server logs; the caller only ever
		// sees the generic error code.
		s.logger.Error("credential check failed",
			zap.String("caller", callerID), zap.Error(err))
		return s.reject(err, callerID)
	}
	if !enabled {
		return s.reject(domain.ErrTokenNotEnabled, callerID)
	}

	ok, err := s.limiter.Allow(ctx, callerID)
	if err != nil {
		// Fail closed: an unreachable counter store never admits
		// unlimited traffic.
		s.logger.Error("rate limit check failed",
			zap.String("caller", callerID), zap.Error(err))
		return s.reject(err, callerID)
	}
	if !ok {
		return s.reject(domain.ErrRateLimited, callerID)
	}

	return nil
}

func (s *Service) reject(err error, callerID string) error {
	metrics.AdmissionRejectionsTotal.WithLabelValues(rejectReason(err)).Inc()
	s.logger.Debug("admission rejected",
		zap.String("caller", callerID), zap.String("reason", rejectReason(err)))
	return err
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, domain.ErrTokenNotEnabled):
		return "token_not_enabled"
	case errors.Is(err, domain.ErrTokenDataCorrupt):
		return "token_data_corrupt"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "other"
	}
}
