package mood

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/mindcare/wellness-api/internal/auth"
	"github.com/mindcare/wellness-api/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func decodeImage(w http.ResponseWriter, r *http.Request) (string, bool) {
	var dto FaceDetectionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return "", false
	}
	if err := config.Validate(dto); err != nil {
		config.Error(w, http.StatusUnprocessableEntity, err.Error())
		return "", false
	}
	return dto.Image, true
}

func (h *Handler) FaceDetection(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	image, ok := decodeImage(w, r)
	if !ok {
		return
	}

	res, err := h.service.Detect(r.Context(), userID, image)
	if err != nil {
		if errors.Is(err, ErrMoodAlreadyRecorded) || errors.Is(err, ErrUnknownMood) {
			config.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		log.WithError(err).Error("Mood inference failed")
		config.Error(w, http.StatusBadRequest, "Failed to perform mood inference")
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) FaceDetectionTrial(w http.ResponseWriter, r *http.Request) {
	image, ok := decodeImage(w, r)
	if !ok {
		return
	}

	res, err := h.service.DetectTrial(r.Context(), image)
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Error("Mood inference trial failed")
		config.Error(w, http.StatusBadRequest, "Failed to perform mood inference")
		return
	}
	config.JSON(w, http.StatusOK, res)
}
