package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mindcare/wellness-api/internal/middlewares"
)

func TestCorsMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		origins    []string
		origin     string
		preflight  bool
		wantOrigin string
		wantStatus int
	}{
		{"Wildcard", []string{"*"}, "https://app.example.com", false, "https://app.example.com", http.StatusOK},
		{"Listed", []string{"https://app.example.com"}, "https://app.example.com", false, "https://app.example.com", http.StatusOK},
		{"NotListed", []string{"https://app.example.com"}, "https://evil.example.com", false, "", http.StatusOK},
		{"Preflight", []string{"*"}, "https://app.example.com", true, "https://app.example.com", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := http.MethodGet
			if tt.preflight {
				method = http.MethodOptions
			}
			req := httptest.NewRequest(method, "/", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rec := httptest.NewRecorder()
			middlewares.CorsMiddleware(tt.origins)(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("expected allow-origin %q, got %q", tt.wantOrigin, got)
			}
		})
	}
}
