package admission

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/attorney-tools/codesearch/internal/domain"
)

type mockCreds struct {
	enabled bool
	err     error
	called  bool
}

func (m *mockCreds) Enabled(_ context.Context, _ string) (bool, error) {
	m.called = true
	return m.enabled, m.err
}

type mockLimiter struct {
	allow  bool
	err    error
	called bool
}

func (m *mockLimiter) Allow(_ context.Context, _ string) (bool, error) {
	m.called = true
	return m.allow, m.err
}

func TestAdmit_Allow(t *testing.T) {
	creds := &mockCreds{enabled: true}
	limiter := &mockLimiter{allow: true}
	gate := New(creds, limiter, zap.NewNop())

	if err := gate.Admit(context.Background(), "alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !creds.called || !limiter.called {
		t.Error("expected both checks to run")
	}
}

func TestAdmit_MissingCredential_NoCounterTouched(t *testing.T) {
	creds := &mockCreds{enabled: true}
	limiter := &mockLimiter{allow: true}
	gate := New(creds, limiter, zap.NewNop())

	err := gate.Admit(context.Background(), "")
	if !errors.Is(err, domain.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if creds.called {
		t.Error("credential store must not be queried without a caller id")
	}
	if limiter.called {
		t.Error("rate counter must not be incremented without a caller id")
	}
}

func TestAdmit_TokenNotEnabled_NoCounterTouched(t *testing.T) {
	creds := &mockCreds{enabled: false}
	limiter := &mockLimiter{allow: true}
	gate := New(creds, limiter, zap.NewNop())

	err := gate.Admit(context.Background(), "mallory")
	if !errors.Is(err, domain.ErrTokenNotEnabled) {
		t.Fatalf("expected ErrTokenNotEnabled, got %v", err)
	}
	if limiter.called {
		t.Error("rate counter must not be incremented for a rejected credential")
	}
}

func TestAdmit_TokenDataCorrupt(t *testing.T) {
	creds := &mockCreds{err: domain.ErrTokenDataCorrupt}
	limiter := &mockLimiter{allow: true}
	gate := New(creds, limiter, zap.NewNop())

	err := gate.Admit(context.Background(), "alice")
	if !errors.Is(err, domain.ErrTokenDataCorrupt) {
		t.Fatalf("expected ErrTokenDataCorrupt, got %v", err)
	}
	if limiter.called {
		t.Error("rate counter must not be incremented for a corrupt token")
	}
}

func TestAdmit_CredentialStoreUnavailable(t *testing.T) {
	creds := &mockCreds{err: domain.ErrStoreUnavailable}
	gate := New(creds, &mockLimiter{allow: true}, zap.NewNop())

	err := gate.Admit(context.Background(), "alice")
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestAdmit_RateLimited(t *testing.T) {
	creds := &mockCreds{enabled: true}
	limiter := &mockLimiter{allow: false}
	gate := New(creds, limiter, zap.NewNop())

	err := gate.Admit(context.Background(), "alice")
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestAdmit_LimiterStoreFailureFailsClosed(t *testing.T) {
	creds := &mockCreds{enabled: true}
	limiter := &mockLimiter{err: domain.ErrStoreUnavailable}
	gate := New(creds, limiter, zap.NewNop())

	err := gate.Admit(context.Background(), "alice")
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
