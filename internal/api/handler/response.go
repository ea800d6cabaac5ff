package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akostin-dev/vidhost/internal/domain/model"
	"github.com/akostin-dev/vidhost/internal/domain/repository"
)

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, "failed to encode response", http.StatusInternalServerError)
		}
	}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func Error(w http.ResponseWriter, status int, err string, message string) {
	JSON(w, status, ErrorResponse{
		Error:   err,
		Message: message,
	})
}

// ServiceError translates domain and repository errors to HTTP responses.
// Validation errors from the model map to 400; the storage taxonomy maps
// NotFound to 404, Conflict to 409 and unavailability to 503. Anything
// unclassified is a 500 with the detail kept out of the body.
func ServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		Error(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, repository.ErrConflict):
		Error(w, http.StatusConflict, "conflict", "concurrent modification, retry the request")
	case errors.Is(err, repository.ErrStorageUnavailable):
		Error(w, http.StatusServiceUnavailable, "storage_unavailable", "storage is temporarily unavailable")
	case isValidationError(err):
		Error(w, http.StatusBadRequest, "validation_failed", err.Error())
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func isValidationError(err error) bool {
	for _, target := range []error{
		model.ErrEmptyName,
		model.ErrNameTooLong,
		model.ErrInvalidOwnerID,
		model.ErrInvalidVideoID,
		model.ErrInvalidUserID,
		model.ErrInvalidKind,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
