package mood_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mindcare/wellness-api/internal/mood"
)

func TestClassifier(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr error
	}{
		{"Prediction", http.StatusOK, `{"prediction":"happy"}`, "happy", nil},
		{"NullPrediction", http.StatusOK, `{"prediction":null}`, "", mood.ErrInvalidInference},
		{"NotJSON", http.StatusOK, `<html>`, "", mood.ErrInvalidInference},
		{"ServerError", http.StatusInternalServerError, `boom`, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Bearer secret-key" {
					t.Errorf("unexpected Authorization header %q", got)
				}
				var payload map[string]string
				if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload["image"] != "aW1hZ2U=" {
					t.Errorf("unexpected payload %v, %v", payload, err)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			res, err := mood.NewClassifier(srv.URL, "secret-key").Classify(context.Background(), "aW1hZ2U=")
			if tt.want != "" {
				if err != nil {
					t.Fatalf("Classify failed: %v", err)
				}
				if res.Prediction != tt.want {
					t.Errorf("expected %q, got %q", tt.want, res.Prediction)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error, got %+v", res)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
