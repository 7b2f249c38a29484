package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mytheresa/product-catalog/models"
	"github.com/mytheresa/product-catalog/photo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, http.StatusBadRequest, "Invalid JSON body")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Invalid JSON body", body["error"])
}

func TestStatusFor(t *testing.T) {
	_, corrupt := photo.Decode("not-valid-base64!!")

	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "constraint violation",
			err:      &models.StoreError{Op: "insert product", Kind: models.KindConstraintViolation, Err: errors.New("fk")},
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "unavailable",
			err:      fmt.Errorf("list: %w", &models.StoreError{Op: "list products", Kind: models.KindUnavailable, Err: errors.New("closed")}),
			expected: http.StatusServiceUnavailable,
		},
		{name: "corrupt photo", err: corrupt, expected: http.StatusUnprocessableEntity},
		{name: "file error", err: &photo.FileError{Op: "read", Path: "/x", Err: errors.New("denied")}, expected: http.StatusUnprocessableEntity},
		{name: "deadline", err: context.DeadlineExceeded, expected: http.StatusServiceUnavailable},
		{name: "unknown", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StatusFor(tc.err))
		})
	}
}
