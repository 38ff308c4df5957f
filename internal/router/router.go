package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mindcare/wellness-api/internal/aiquiz"
	"github.com/mindcare/wellness-api/internal/auth"
	"github.com/mindcare/wellness-api/internal/chat"
	"github.com/mindcare/wellness-api/internal/config"
	"github.com/mindcare/wellness-api/internal/middlewares"
	"github.com/mindcare/wellness-api/internal/mood"
	"github.com/mindcare/wellness-api/internal/quiz"
	"github.com/mindcare/wellness-api/internal/user"
)

const apiPrefix = "/api/v1"

type RouterConfig struct {
	UserHandler   *user.Handler
	MoodHandler   *mood.Handler
	ChatHandler   *chat.Handler
	AIQuizHandler *aiquiz.Handler
	QuizHandler   *quiz.Handler

	// TrialLimiter guards the public trial endpoints. Nil disables it.
	TrialLimiter   func(http.Handler) http.Handler
	AllowedOrigins []string
}

func Health(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, map[string]string{"status": "Ok"})
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware(cfg.AllowedOrigins))

	r.Get("/", Health)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var trial []func(http.Handler) http.Handler
	if cfg.TrialLimiter != nil {
		trial = append(trial, cfg.TrialLimiter)
	}

	r.Route(apiPrefix, func(r chi.Router) {
		r.Post("/register", cfg.UserHandler.Register)
		r.Post("/login", cfg.UserHandler.Login)
		r.Get("/logout", auth.NewHandler().Logout)
		r.With(auth.AuthMiddleware).Get("/fetch_stat", cfg.UserHandler.FetchStat)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/mood", mood.Routes(cfg.MoodHandler, trial...))
		r.Mount("/chat", chat.Routes(cfg.ChatHandler, trial...))
		r.Mount("/quiz", quiz.Routes(cfg.QuizHandler))
		r.Mount("/ai-quiz", aiquiz.Routes(cfg.AIQuizHandler, trial...))
	})
	return r
}
