package batfish

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is returned when the API answers with a 4xx or 5xx status.
type HTTPError struct {
	StatusCode int    `json:"status_code" yaml:"status_code"`
	Reason     string `json:"reason"      yaml:"reason"`
	ID         string `json:"id"          yaml:"id"`
	Message    string `json:"message"     yaml:"message"`
	Method     string `json:"method"      yaml:"method"`
	Path       string `json:"path"        yaml:"path"`
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Reason)
	if e.Message != "" {
		msg += ": " + e.Message
	}

	return msg
}

// NewHTTPError builds an HTTPError, reading the API error body when it is the
// usual {"id": ..., "message": ...} document.
func NewHTTPError(method, path string, statusCode int, body []byte) *HTTPError {
	httpErr := &HTTPError{
		StatusCode: statusCode,
		Reason:     http.StatusText(statusCode),
		Method:     method,
		Path:       path,
	}

	var remote struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	}

	if len(body) > 0 && json.Unmarshal(body, &remote) == nil {
		httpErr.ID = remote.ID
		httpErr.Message = remote.Message
	}

	return httpErr
}

// Validation sentinels. They are wrapped in *ValidationError and returned
// before any request is sent.
var (
	ErrUnsupportedAction = errors.New("unsupported action")
	ErrInvalidName       = errors.New("name may only contain letters, digits, '.' and '-'")
	ErrNameRequired      = errors.New("name is required")
	ErrImageRequired     = errors.New("image is required")
	ErrSizeRequired      = errors.New("size is required")
	ErrRegionRequired    = errors.New("region is required")
	ErrNilReference      = errors.New("resource reference is nil")
)

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired    = errors.New("config is required")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrMalformedResponse = errors.New("malformed response body")
	ErrActionErrored     = errors.New("action errored")
)

// ValidationError reports a precondition failure detected locally.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
	}

	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(field, value string, err error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Err: err}
}

// IsNotFound checks if the error is a 404 from the API.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is a 401 or 403 from the API, or a local
// missing-token error.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrNotAuthenticated) {
		return true
	}

	return hasStatus(err, http.StatusUnauthorized) || hasStatus(err, http.StatusForbidden)
}

// IsServerError checks if the error is a 5xx from the API.
func IsServerError(err error) bool {
	httpErr := &HTTPError{}
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= http.StatusInternalServerError
	}

	return false
}

// IsValidation checks if the error is a local precondition failure.
func IsValidation(err error) bool {
	validationErr := &ValidationError{}

	return errors.As(err, &validationErr)
}

func hasStatus(err error, status int) bool {
	httpErr := &HTTPError{}
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == status
	}

	return false
}
