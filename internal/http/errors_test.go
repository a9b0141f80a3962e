package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"murim-academy/internal/domain"
	"murim-academy/internal/service"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", domain.NewValidationError("email", "is invalid"), http.StatusBadRequest, "email: is invalid"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
		{"forbidden", fmt.Errorf("book: %w", domain.ErrForbidden), http.StatusForbidden, "permission denied"},
		{"not found", fmt.Errorf("user %w", domain.ErrNotFound), http.StatusNotFound, "user not found"},
		{"conflict", fmt.Errorf("email %w", domain.ErrConflict), http.StatusConflict, "email already exists"},
		{"storage", service.ErrStorageUnavailable, http.StatusServiceUnavailable, service.ErrStorageUnavailable.Error()},
		{"no rows", fmt.Errorf("update user 3: %w", domain.ErrNoRowsAffected), http.StatusInternalServerError, "no record was changed"},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := classifyError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, message)
		})
	}
}
