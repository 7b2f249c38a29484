package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mytheresa/product-catalog/models"
	"github.com/mytheresa/product-catalog/photo"
)

// WriteJSON writes v as the JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes {"error": msg} with the given status.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

// StatusFor maps catalog errors to HTTP status codes.
func StatusFor(err error) int {
	var fileErr *photo.FileError
	switch {
	case errors.Is(err, models.ErrConstraintViolation),
		errors.Is(err, photo.ErrCorruptPhoto):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	case errors.As(err, &fileErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
