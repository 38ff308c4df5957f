package aiquiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mindcare/wellness-api/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto PreviewDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid preview request body")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := config.Validate(dto); err != nil {
		config.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result, err := h.service.Preview(r.Context(), dto)
	if err != nil {
		if errors.Is(err, ErrInvalidTheme) || errors.Is(err, ErrInvalidDifficulty) {
			config.Error(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		log.WithError(err).Error("Failed to generate quiz preview")
		config.Error(w, http.StatusInternalServerError, "Failed to generate quiz")
		return
	}

	config.JSON(w, http.StatusOK, result)
}
