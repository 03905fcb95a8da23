package response

import (
	"encoding/json"
	"net/http"
)

// FailureResponse is the flat failure envelope used across the API.
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Fail sends the flat failure envelope with the given message.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, FailureResponse{
		Success: false,
		Error:   message,
	})
}

// InternalError sends a generic 500. The underlying error stays in the
// logs, not on the wire.
func InternalError(w http.ResponseWriter) {
	Fail(w, http.StatusInternalServerError, "internal server error")
}
