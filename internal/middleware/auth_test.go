package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestOperatorToken(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		path       string
		header     string
		wantStatus int
	}{
		{
			name:       "valid token",
			token:      "secret",
			path:       "/api/lookup",
			header:     "Bearer secret",
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong token",
			token:      "secret",
			path:       "/api/lookup",
			header:     "Bearer other",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing header",
			token:      "secret",
			path:       "/api/lookup",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			token:      "secret",
			path:       "/api/lookup",
			header:     "Basic secret",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "health exempt",
			token:      "secret",
			path:       "/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "empty token disables the check",
			token:      "",
			path:       "/api/lookup",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := OperatorToken(tt.token)(okHandler())

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
