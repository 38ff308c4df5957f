package auth

import (
	"net/http"

	"github.com/mindcare/wellness-api/internal/config"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// SetTokenCookie mirrors the access token into a cookie so browser clients
// can call the API without managing the header themselves.
func SetTokenCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: false,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	SetTokenCookie(w, "", -1)

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "Logout successful",
	})
}
