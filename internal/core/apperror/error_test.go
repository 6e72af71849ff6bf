package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIdempotencyConflict(t *testing.T) {
	err := NewIdempotencyConflict("key-123")

	assert.Equal(t, CodeIdempotency, err.Code)
	assert.Equal(t, http.StatusConflict, err.HTTPStatus)
	assert.Equal(t, "key-123", err.Details["idempotency_key"])
}

func TestNewIdempotencyMismatch(t *testing.T) {
	err := NewIdempotencyMismatch("key-123").
		WithDetail("stored_user_id", "u1").
		WithDetail("request_user_id", "u2")

	assert.Equal(t, CodeIdempotency, err.Code)
	assert.Equal(t, http.StatusConflict, err.HTTPStatus)
	assert.Equal(t, "key-123", err.Details["idempotency_key"])
	assert.Equal(t, "u1", err.Details["stored_user_id"])
	assert.Equal(t, "u2", err.Details["request_user_id"])
}

func TestAsAppErrorUnwrapsChain(t *testing.T) {
	wrapped := NewConcurrentModification("sale_batch", "id-1").WithCause(errors.New("db"))

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeConcurrentModification, appErr.Code)
	assert.True(t, IsConcurrentModification(wrapped))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(wrapped))
}
