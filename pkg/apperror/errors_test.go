package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError(t *testing.T) {
	wrapped := fmt.Errorf("create sale: %w", NewNotFoundError("Product"))
	assert.True(t, IsAppError(wrapped))

	appErr := GetAppError(wrapped)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "Product not found", appErr.Message)

	plain := GetAppError(errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, plain.Code)
	assert.Equal(t, "Internal server error", plain.Message)
}

func TestNewFieldError(t *testing.T) {
	err := NewFieldError("down_payment", "must not exceed total_amount")
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Equal(t, []FieldError{{Field: "down_payment", Message: "must not exceed total_amount"}}, err.Errors)
}
