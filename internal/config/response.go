package config

import (
	"encoding/json"
	"net/http"
)

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		Logger.WithError(err).Error("Failed to encode response")
	}
}

// Error writes {"detail": detail}. detail is usually a string but may be
// any JSON-encodable value.
func Error(w http.ResponseWriter, status int, detail interface{}) {
	JSON(w, status, map[string]interface{}{"detail": detail})
}
