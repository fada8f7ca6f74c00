package chi

import (
	"errors"
	"net/http"

	"github.com/attorney-tools/codesearch/internal/domain"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// errorHandlers maps domain sentinels to wire codes, in match order. The
// admission middleware and the route handlers share this table so a given
// failure always produces the same body regardless of where it surfaced.
var errorHandlers = []errorHandler{
	queryParseHandler,
	sentinelHandler(domain.ErrTokenNotEnabled, http.StatusUnauthorized, codeTokenNotEnabled),
	sentinelHandler(domain.ErrTokenDataCorrupt, http.StatusUnauthorized, codeTokenDataType),
	sentinelHandler(domain.ErrMissingCredential, http.StatusUnauthorized, codeGeneral),
	sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimit),
	sentinelHandler(domain.ErrIndexUnavailable, http.StatusInternalServerError, codeIndexUnavailable),
	sentinelHandler(domain.ErrStoreUnavailable, http.StatusInternalServerError, codeGeneral),
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrMissingCredential,
		domain.ErrTokenNotEnabled,
		domain.ErrTokenDataCorrupt,
		domain.ErrStoreUnavailable,
		domain.ErrRateLimited,
		domain.ErrIndexUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// queryParseHandler surfaces the rejected query text so callers can see
// exactly what failed to parse.
func queryParseHandler(w http.ResponseWriter, err error, _ string) bool {
	if !errors.Is(err, domain.ErrQueryParse) {
		return false
	}
	writeError(w, http.StatusBadRequest, codeQueryParse, err.Error())
	return true
}

// writeDomainError renders err through the handler table, falling back to a
// generic 500.
func writeDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, h := range errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	writeError(w, http.StatusInternalServerError, codeGeneral, "internal error")
}
