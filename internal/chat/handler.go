package chat

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

func writeChatError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrHistoryTooLong), errors.Is(err, ErrMoodNotRecorded):
		config.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUserNotFound):
		config.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNoReply):
		config.Error(w, http.StatusBadGateway, err.Error())
	default:
		config.WithContext(r.Context()).WithError(err).Error("Chat failed")
		config.Error(w, http.StatusInternalServerError, "Chat failed due to an error")
	}
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
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

	var dto ChatDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := config.Validate(dto); err != nil {
		config.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	res, err := h.service.Chat(r.Context(), userID, dto)
	if err != nil {
		writeChatError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) ChatTrial(w http.ResponseWriter, r *http.Request) {
	var dto ChatTrialDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := config.Validate(dto); err != nil {
		config.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	res, err := h.service.ChatTrial(r.Context(), dto)
	if err != nil {
		writeChatError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, res)
}
