package chi

import (
	"context"
	"net/http"
	"strings"
)

// Admitter decides whether a caller may proceed.
type Admitter interface {
	Admit(ctx context.Context, callerID string) error
}

// exemptPaths are routes that bypass admission (home, health, metrics).
var exemptPaths = map[string]struct{}{
	"/":        {},
	"/health":  {},
	"/metrics": {},
}

// AdmissionMiddleware returns a middleware that gates every non-exempt
// route through the admission service. The caller identifier is the HTTP
// Basic username; the password is ignored.
func AdmissionMiddleware(gate Admitter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Legacy clients send slash-terminated URLs; the exemption
			// lookup sees the raw request path, so trim here too.
			path := r.URL.Path
			if len(path) > 1 {
				path = strings.TrimSuffix(path, "/")
			}
			if _, ok := exemptPaths[path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			callerID, _, _ := r.BasicAuth()
			if err := gate.Admit(r.Context(), callerID); err != nil {
				writeDomainError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
