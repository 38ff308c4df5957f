package mood

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mindcare/wellness-api/internal/auth"
)

// Routes mounts the mood endpoints. trial wraps the public endpoint.
func Routes(h *Handler, trial ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.With(auth.AuthMiddleware).Post("/face-detection", h.FaceDetection)
	r.With(trial...).Post("/face-detection/trial", h.FaceDetectionTrial)
	return r
}
