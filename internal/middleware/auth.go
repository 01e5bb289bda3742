package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/rhk9003/metaads/internal/httputil"
)

// OperatorToken requires "Authorization: Bearer <token>" on every request
// when a token is configured. An empty token disables the check (trusted
// single-operator deployments behind their own access control).
func OperatorToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Health stays unauthenticated for load balancer probes
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			got, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				httputil.RespondError(w, http.StatusUnauthorized, "missing or invalid operator token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
