// backend/src/utils/http.go
package utils

import (
	"encoding/json"
	"net/http"

	"github.com/username/saathi/backend/src/logger"
)

// JSONError is the error envelope every handler returns.
type JSONError struct {
	Error string `json:"error"`
}

// SendJSONError writes the standard JSON error envelope with the given status.
func SendJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(JSONError{Error: message}); err != nil {
		logger.L.Error("Error encoding JSON error response", "error", err)
	}
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L.Error("Error encoding JSON response", "error", err)
	}
}
