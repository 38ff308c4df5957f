package user

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mindcare/wellness-api/internal/auth"
	"github.com/mindcare/wellness-api/internal/config"
)

type Handler struct {
	service  UserService
	tokenTTL time.Duration
}

func NewHandler(s UserService, tokenTTL time.Duration) *Handler {
	return &Handler{service: s, tokenTTL: tokenTTL}
}

func claimedUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "Not authenticated")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "Could not validate credentials")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := config.Validate(dto); err != nil {
		config.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	res, err := h.service.Register(r.Context(), dto)
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			config.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		config.WithContext(r.Context()).WithError(err).Error("Failed to register user")
		config.Error(w, http.StatusInternalServerError, "Failed to register user")
		return
	}
	config.JSON(w, http.StatusCreated, res)
}

// decodeLogin accepts an OAuth2 password form as well as a JSON body.
func decodeLogin(r *http.Request) (LoginDTO, error) {
	var dto LoginDTO
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return dto, err
		}
		dto.Username = r.FormValue("username")
		dto.Password = r.FormValue("password")
	default:
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			return dto, err
		}
	}
	return dto, nil
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	dto, err := decodeLogin(r)
	if err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := config.Validate(dto); err != nil {
		config.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	token, err := h.service.Login(r.Context(), dto)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			config.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		config.WithContext(r.Context()).WithError(err).Error("Login failed")
		config.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	auth.SetTokenCookie(w, token, int(h.tokenTTL.Seconds()))
	config.JSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := claimedUser(w, r)
	if !ok {
		return
	}

	res, err := h.service.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			config.Error(w, http.StatusNotFound, err.Error())
			return
		}
		config.WithContext(r.Context()).WithError(err).Error("Failed to load user")
		config.Error(w, http.StatusInternalServerError, "Failed to load user")
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) SetCondition(w http.ResponseWriter, r *http.Request) {
	userID, ok := claimedUser(w, r)
	if !ok {
		return
	}

	var dto ConditionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := config.Validate(dto); err != nil {
		config.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.service.SetCondition(r.Context(), userID, dto.Summary); err != nil {
		config.WithContext(r.Context()).WithError(err).Error("Failed to save condition summary")
		config.Error(w, http.StatusInternalServerError, "Failed to save condition summary")
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{"message": "Condition summary saved"})
}

func (h *Handler) FetchStat(w http.ResponseWriter, r *http.Request) {
	userID, ok := claimedUser(w, r)
	if !ok {
		return
	}

	res, err := h.service.FetchStat(r.Context(), userID)
	if err != nil {
		var active *ActiveAttemptError
		switch {
		case errors.As(err, &active):
			config.Error(w, http.StatusTemporaryRedirect, map[string]string{
				"message":      active.Error(),
				"redirect_url": active.RedirectURL(),
			})
		case errors.Is(err, ErrUserNotFound):
			config.Error(w, http.StatusNotFound, err.Error())
		default:
			config.WithContext(r.Context()).WithError(err).Error("Failed to fetch user stats")
			config.Error(w, http.StatusInternalServerError, "Failed to fetch user stats")
		}
		return
	}
	config.JSON(w, http.StatusOK, res)
}
