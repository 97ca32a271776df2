package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/kavehz/realmstats/pkg/errors"
	"github.com/kavehz/realmstats/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps AppError codes onto HTTP statuses. Internal errors
// never leak their underlying message to the caller.
func writeError(w http.ResponseWriter, err error) {
	code := errors.CodeOf(err)

	var status int
	switch code {
	case errors.ErrCodeInvalidFilenameFormat,
		errors.ErrCodeWorksheetNotFound,
		errors.ErrCodeValidationFailed:
		status = http.StatusBadRequest
	case errors.ErrCodeUploadTooLarge:
		status = http.StatusRequestEntityTooLarge
	case errors.ErrCodeUnauthorized:
		status = http.StatusUnauthorized
	case errors.ErrCodeForbidden:
		status = http.StatusForbidden
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeRateLimitExceeded:
		status = http.StatusTooManyRequests
	default:
		status = http.StatusInternalServerError
	}

	message := "internal error"
	if appErr, ok := err.(*errors.AppError); ok && status != http.StatusInternalServerError {
		message = appErr.Message
	}

	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}
