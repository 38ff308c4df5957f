package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mindcare/wellness-api/internal/auth"
)

func Routes(h *Handler, trial ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.With(auth.AuthMiddleware).Post("/", h.Chat)
	r.With(trial...).Post("/trial", h.ChatTrial)
	return r
}
