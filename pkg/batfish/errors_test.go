package batfish

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHTTPError(t *testing.T) {
	t.Parallel()

	err := NewHTTPError(http.MethodGet, "/droplets/1", http.StatusNotFound,
		[]byte(`{"id": "not_found", "message": "The resource you were accessing could not be found."}`))

	assert.Equal(t, "not_found", err.ID)
	assert.Equal(t, "Not Found", err.Reason)
	assert.Equal(t, "GET /droplets/1: 404 Not Found: The resource you were accessing could not be found.", err.Error())
}

func TestNewHTTPError_UnparseableBody(t *testing.T) {
	t.Parallel()

	err := NewHTTPError(http.MethodPost, "/droplets", http.StatusBadGateway, []byte("<html>bad gateway</html>"))

	assert.Empty(t, err.ID)
	assert.Empty(t, err.Message)
	assert.Equal(t, "POST /droplets: 502 Bad Gateway", err.Error())
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	notFound := fmt.Errorf("getting droplet: %w", &HTTPError{StatusCode: http.StatusNotFound})
	unauthorized := fmt.Errorf("listing droplets: %w", &HTTPError{StatusCode: http.StatusUnauthorized})
	forbidden := &HTTPError{StatusCode: http.StatusForbidden}
	serverErr := &HTTPError{StatusCode: http.StatusServiceUnavailable}
	validation := newValidationError("name", "a b", ErrInvalidName)
	plain := errors.New("dial tcp: connection refused")

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(serverErr))

	assert.True(t, IsUnauthorized(unauthorized))
	assert.True(t, IsUnauthorized(forbidden))
	assert.True(t, IsUnauthorized(fmt.Errorf("loading: %w", ErrNotAuthenticated)))
	assert.False(t, IsUnauthorized(notFound))

	assert.True(t, IsServerError(serverErr))
	assert.False(t, IsServerError(notFound))

	assert.True(t, IsValidation(validation))
	assert.ErrorIs(t, validation, ErrInvalidName)
	assert.Equal(t, `invalid name "a b": name may only contain letters, digits, '.' and '-'`, validation.Error())

	for _, check := range []func(error) bool{IsNotFound, IsUnauthorized, IsServerError, IsValidation} {
		assert.False(t, check(plain))
		assert.False(t, check(nil))
	}
}
