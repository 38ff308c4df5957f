package aiquiz_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mindcare/wellness-api/internal/aiquiz"
)

type captureGenerator struct {
	req aiquiz.Request
}

func (g *captureGenerator) Generate(_ context.Context, req aiquiz.Request) (*aiquiz.Result, error) {
	g.req = req
	return aiquiz.EmptyResult(), nil
}

func TestPreviewHandler(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		total  int
	}{
		{"Valid", `{"theme":"judi_online","difficulty":"easy","total_questions":3}`, http.StatusOK, 3},
		{"UnknownTheme", `{"theme":"cooking","difficulty":"easy","total_questions":3}`, http.StatusUnprocessableEntity, 0},
		{"TooMany", `{"theme":"judi_online","difficulty":"easy","total_questions":11}`, http.StatusUnprocessableEntity, 0},
		{"BadJSON", `{`, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &captureGenerator{}
			routes := aiquiz.Routes(aiquiz.NewHandler(aiquiz.NewService(gen)))

			req := httptest.NewRequest(http.MethodPost, "/preview", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			routes.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			if tt.status != http.StatusOK {
				return
			}
			if gen.req.TotalQuestions != tt.total || gen.req.Theme != aiquiz.ThemeJudiOnline {
				t.Errorf("unexpected agent request %+v", gen.req)
			}

			var res map[string]interface{}
			if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if res["title"] != nil {
				t.Errorf("expected null title, got %v", res["title"])
			}
			if qs, ok := res["questions"].([]interface{}); !ok || len(qs) != 0 {
				t.Errorf("expected empty question list, got %v", res["questions"])
			}
		})
	}
}
