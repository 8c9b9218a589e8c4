package http

import (
	"encoding/json"
	"net/http"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
)

// envelope is the uniform response body. Success responses carry data,
// failures carry a message; never both.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// writeList always serializes an array, never null, and includes the count.
func writeList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: items, Count: &n})
}

func writeMessage(w http.ResponseWriter, status int, format string) {
	writeJSON(w, status, envelope{Success: true, Message: format})
}

// writeError maps the application error code to an HTTP status. Internal
// errors are logged with their cause and surfaced with a generic message.
func writeError(w http.ResponseWriter, err error) {
	code := domain.CodeOf(err)
	status := statusForCode(code)

	message := err.Error()
	if code == domain.ErrCodeInternal {
		logger.Error("request failed", "error", err)
		message = "internal server error"
	}

	writeJSON(w, status, envelope{Success: false, Message: message})
}

func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeValidation, domain.ErrCodeConflict, domain.ErrCodeInvalidState:
		return http.StatusBadRequest
	case domain.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
