// internal/api/responses.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "transparency-service/internal/common/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError reports a structured failure with a kind and a human-readable
// message, mapped onto the appropriate status code.
func writeError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)

	code := apperrors.CodeOf(err)
	message := err.Error()
	details := ""

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
		details = appErr.Details
	}

	writeJSON(w, status, map[string]interface{}{
		"error":   string(code),
		"message": message,
		"details": details,
	})
}
