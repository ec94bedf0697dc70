// Package shared centralizes JSON response and error envelope writing so
// every handler translates domain errors the same way.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "fairlens/pkg/domain-errors"
)

// ToHTTPStatus maps a domain error code to an HTTP status.
func ToHTTPStatus(code dErrors.ErrorCode) int {
	switch code {
	case dErrors.CodeBadRequest:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders a domain error as a consistent JSON envelope.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ToHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   string(code),
		"message": err.Error(),
	})
}

// WriteJSON renders v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
