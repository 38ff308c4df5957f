package mood_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mindcare/wellness-api/internal/auth"
	"github.com/mindcare/wellness-api/internal/mood"
)

func TestMoodRoutes(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	auth.Init()

	now := time.Date(2025, 3, 1, 5, 0, 0, 0, time.UTC)
	svc := newService(t, &stubClassifier{prediction: "neutral"}, &now)

	limited := 0
	limiter := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limited++
			next.ServeHTTP(w, r)
		})
	}
	routes := mood.Routes(mood.NewHandler(svc), limiter)

	token, err := auth.GenerateJWT(uuid.NewString(), auth.RoleUser, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	tests := []struct {
		name   string
		path   string
		token  string
		body   string
		status int
	}{
		{"TrialIsPublic", "/face-detection/trial", "", `{"image":"aW1n"}`, http.StatusOK},
		{"TrialNeedsImage", "/face-detection/trial", "", `{}`, http.StatusUnprocessableEntity},
		{"DetectNeedsAuth", "/face-detection", "", `{"image":"aW1n"}`, http.StatusUnauthorized},
		{"Detect", "/face-detection", token, `{"image":"aW1n"}`, http.StatusOK},
		{"DetectTwice", "/face-detection", token, `{"image":"aW1n"}`, http.StatusBadRequest},
		{"BadJSON", "/face-detection", token, `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			routes.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Errorf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}

	if limited != 2 {
		t.Errorf("expected trial middleware on trial requests only, ran %d times", limited)
	}
}
