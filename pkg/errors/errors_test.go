package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NotFound("wishlist", "alice")
	assert.Contains(t, err.Error(), "NOT_FOUND")
	assert.Contains(t, err.Error(), "alice")

	wrapped := &AppError{Code: "X", Message: "boom", Err: errors.New("cause")}
	assert.Contains(t, wrapped.Error(), "cause")
}

func TestAppError_Unwrap(t *testing.T) {
	assert.True(t, errors.Is(NotFound("user", "bob"), ErrNotFound))
	assert.True(t, errors.Is(Forbidden("nope"), ErrForbidden))
	assert.True(t, errors.Is(Unavailable("store down", errors.New("dial tcp")), ErrUnavailable))

	// Unavailable keeps the underlying cause reachable.
	cause := errors.New("connection refused")
	assert.ErrorContains(t, Unavailable("store down", cause), "connection refused")
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{NotFound("item", "42"), http.StatusNotFound},
		{InvalidInput("bad"), http.StatusBadRequest},
		{Unauthorized("no token"), http.StatusUnauthorized},
		{Forbidden("not yours"), http.StatusForbidden},
		{Conflict("user doc", "alice"), http.StatusConflict},
		{Unavailable("store down", errors.New("x")), http.StatusServiceUnavailable},
		{errors.New("unknown"), http.StatusInternalServerError},
		{fmt.Errorf("wrap: %w", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("wrap: %w", ErrUnavailable), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, HTTPStatus(tt.err), "error: %v", tt.err)
	}
}
