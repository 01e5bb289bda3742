package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rhk9003/metaads/internal/httputil"
)

// RequestID attaches a unique id to every request and echoes it in the
// X-Request-ID response header. An id supplied by the caller is reused.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set("X-Request-ID", id)
			next.ServeHTTP(w, httputil.WithRequestID(r, id))
		})
	}
}
