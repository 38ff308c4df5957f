package aiquiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, mw ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.With(mw...).Post("/preview", h.Preview)
	return r
}
