package user

import (
	"github.com/go-chi/chi/v5"

	"github.com/mindcare/wellness-api/internal/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(auth.AuthMiddleware)

	r.Get("/me", h.GetUser)
	r.Put("/condition", h.SetCondition)
	return r
}
