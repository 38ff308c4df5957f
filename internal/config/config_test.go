package config_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mindcare/wellness-api/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("MissingDSN", func(t *testing.T) {
		t.Setenv("DATABASE_DSN", "")
		_, err := config.Load()
		if !errors.Is(err, config.ErrMissingDatabaseDSN) {
			t.Fatalf("expected ErrMissingDatabaseDSN, got %v", err)
		}
	})

	t.Run("QuizSizeFollowsProduction", func(t *testing.T) {
		t.Setenv("DATABASE_DSN", "postgres://localhost/test")
		t.Setenv("QUIZ_TOTAL_QUESTIONS", "")

		t.Setenv("PRODUCTION", "false")
		s, err := config.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if s.QuizTotalQuestions != 2 {
			t.Errorf("expected 2 questions outside production, got %d", s.QuizTotalQuestions)
		}

		t.Setenv("PRODUCTION", "true")
		s, _ = config.Load()
		if s.QuizTotalQuestions != 5 {
			t.Errorf("expected 5 questions in production, got %d", s.QuizTotalQuestions)
		}

		t.Setenv("QUIZ_TOTAL_QUESTIONS", "7")
		s, _ = config.Load()
		if s.QuizTotalQuestions != 7 {
			t.Errorf("expected override of 7 questions, got %d", s.QuizTotalQuestions)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DATABASE_DSN", "postgres://localhost/test")
		t.Setenv("JWT_TTL_MINUTES", "")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
		s, err := config.Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if s.JWTTTL != 24*time.Hour {
			t.Errorf("expected 24h token lifetime, got %v", s.JWTTTL)
		}
		if len(s.CORSAllowedOrigins) != 2 || s.CORSAllowedOrigins[1] != "https://b.example" {
			t.Errorf("unexpected CORS origins %v", s.CORSAllowedOrigins)
		}
		if s.Location == nil {
			t.Error("expected a timezone location")
		}
	})
}

func TestValidate(t *testing.T) {
	type payload struct {
		Theme string `json:"theme" validate:"required,oneof=mental_health judi_online"`
		Age   int    `json:"age" validate:"gte=0"`
	}

	if err := config.Validate(payload{Theme: "mental_health", Age: 20}); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}

	err := config.Validate(payload{Theme: "cooking", Age: -1})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "theme") || !strings.Contains(err.Error(), "age") {
		t.Errorf("expected both fields in message, got %q", err.Error())
	}
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	config.Error(rec, http.StatusBadRequest, "boom")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"detail":"boom"}` {
		t.Errorf("unexpected body %s", got)
	}
}
