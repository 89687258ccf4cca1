package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fivetwenty-io/batfish/internal/auth"
	bfhttp "github.com/fivetwenty-io/batfish/internal/http"
	"github.com/fivetwenty-io/batfish/pkg/batfish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v2/droplets", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))
			assert.Contains(t, request.Header.Get("User-Agent"), "Batfish (")
			assert.Empty(t, request.Header.Get("Content-Type"))

			_ = json.NewEncoder(writer).Encode(map[string]interface{}{"droplets": []interface{}{}})
		}))
		defer server.Close()

		client := bfhttp.NewClient(server.URL+"/v2", auth.NewStaticTokenManager("test-token"))

		resp, err := client.Do(context.Background(), &bfhttp.Request{Method: "GET", Path: "/droplets"})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result map[string]interface{}

		require.NoError(t, json.Unmarshal(resp.Body, &result))
		assert.Contains(t, result, "droplets")
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/images", request.URL.Path)
			assert.Equal(t, "page=2", request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := bfhttp.NewClient(server.URL, nil)

		resp, err := client.Do(context.Background(), &bfhttp.Request{
			Method: "GET",
			Path:   "/images",
			Query:  url.Values{"page": []string{"2"}},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "reboot", body["type"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := bfhttp.NewClient(server.URL, nil)

		resp, err := client.Do(context.Background(), &bfhttp.Request{
			Method: "POST",
			Path:   "/droplets/1/actions",
			Body:   map[string]string{"type": "reboot"},
		})
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(writer).Encode(map[string]string{
				"id":      "not_found",
				"message": "The resource you were accessing could not be found.",
			})
		}))
		defer server.Close()

		client := bfhttp.NewClient(server.URL, nil)

		resp, err := client.Do(context.Background(), &bfhttp.Request{Method: "GET", Path: "/droplets/999"})
		require.Error(t, err)
		assert.Equal(t, 404, resp.StatusCode)

		httpErr := &batfish.HTTPError{}
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, "not_found", httpErr.ID)
		assert.Equal(t, "Not Found", httpErr.Reason)
		assert.Equal(t, "/droplets/999", httpErr.Path)
		assert.True(t, batfish.IsNotFound(err))
	})

	t.Run("custom headers override defaults", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			assert.Equal(t, "Bearer candidate", request.Header.Get("Authorization"))
			assert.Equal(t, "custom-agent", request.Header.Get("User-Agent"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := bfhttp.NewClient(server.URL, auth.NewStaticTokenManager("stored"))

		resp, err := client.Do(context.Background(), &bfhttp.Request{
			Method: "GET",
			Path:   "/actions",
			Headers: map[string]string{
				"X-Custom-Header": "custom-value",
				"Authorization":   "Bearer candidate",
				"User-Agent":      "custom-agent",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("no token sends no authorization header", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Empty(t, request.Header.Get("Authorization"))
			writer.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := bfhttp.NewClient(server.URL, auth.NewStaticTokenManager(""))

		_, err := client.Get(context.Background(), "/droplets", nil)
		require.Error(t, err)
		assert.True(t, batfish.IsUnauthorized(err))
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := bfhttp.NewClient(server.URL, auth.NewStaticTokenManager("secret-token"),
			bfhttp.WithLogger(logger), bfhttp.WithDebug(true))

		_, err := client.Do(context.Background(), &bfhttp.Request{Method: "GET", Path: "/sizes"})
		require.NoError(t, err)

		// Should have logged request and response
		require.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
		assert.NotContains(t, logger.logs[0]["fields"], "Authorization")
	})

	t.Run("transport error propagates", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		serverURL := server.URL
		server.Close()

		client := bfhttp.NewClient(serverURL, nil, bfhttp.WithTimeouts(time.Second, time.Second))

		resp, err := client.Get(context.Background(), "/droplets", nil)
		require.Error(t, err)
		assert.Nil(t, resp)

		httpErr := &batfish.HTTPError{}
		assert.False(t, errors.As(err, &httpErr))
	})
}

func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*bfhttp.Client, context.Context) (*bfhttp.Response, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *bfhttp.Client, ctx context.Context) (*bfhttp.Response, error) {
				return c.Get(ctx, "/test", nil)
			},
		},
		{
			name:   "POST",
			method: "POST",
			fn: func(c *bfhttp.Client, ctx context.Context) (*bfhttp.Response, error) {
				return c.Post(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PUT",
			method: "PUT",
			fn: func(c *bfhttp.Client, ctx context.Context) (*bfhttp.Response, error) {
				return c.Put(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "DELETE",
			method: "DELETE",
			fn: func(c *bfhttp.Client, ctx context.Context) (*bfhttp.Response, error) {
				return c.Delete(ctx, "/test")
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := bfhttp.NewClient(server.URL, nil)
			resp, err := testCase.fn(client, context.Background())
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

func TestClient_UserAgent(t *testing.T) {
	t.Parallel()

	var seen atomic.Value

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen.Store(request.Header.Get("User-Agent"))
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := bfhttp.NewClient(server.URL, nil, bfhttp.WithUserAgent("first"))
	assert.Equal(t, "first", client.UserAgent())

	client.SetUserAgent("second")

	_, err := client.Get(context.Background(), "/", nil)
	require.NoError(t, err)
	assert.Equal(t, "second", seen.Load())
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_RetryLogic(t *testing.T) {
	t.Parallel()
	t.Run("retries on 5xx errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) < 3 {
				writer.WriteHeader(http.StatusInternalServerError)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := bfhttp.NewClient(server.URL, nil, bfhttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int32(3), attempts.Load())
	})

	t.Run("retries on rate limiting", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) < 2 {
				writer.WriteHeader(http.StatusTooManyRequests)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := bfhttp.NewClient(server.URL, nil, bfhttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int32(2), attempts.Load())
	})

	t.Run("does not retry on client errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := bfhttp.NewClient(server.URL, nil, bfhttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("does not retry non-idempotent requests", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := bfhttp.NewClient(server.URL, nil, bfhttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Post(context.Background(), "/droplets", map[string]string{"name": "web"})
		require.Error(t, err)
		assert.Equal(t, 503, resp.StatusCode)
		assert.Equal(t, int32(1), attempts.Load())
		assert.True(t, batfish.IsServerError(err))
	})

	t.Run("no retries by default", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := bfhttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		assert.Equal(t, 500, resp.StatusCode)
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("exhausted retries return the last response", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := bfhttp.NewClient(server.URL, nil, bfhttp.WithRetryConfig(2, time.Millisecond, 5*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		assert.Equal(t, 502, resp.StatusCode)
		assert.Equal(t, int32(3), attempts.Load())
	})
}
