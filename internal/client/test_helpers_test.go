package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/fivetwenty-io/batfish/internal/auth"
	"github.com/fivetwenty-io/batfish/pkg/batfish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "test-token"

// NewTestClient creates a client for baseURL holding testToken.
func NewTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	client, err := New(t.Context(), &batfish.Config{
		APIEndpoint: baseURL,
		TokenStore:  auth.NewMemoryTokenStore(testToken),
	})
	require.NoError(t, err)

	return client
}

// RecordedRequest is a request seen by a TestServer.
type RecordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   map[string]interface{}
}

// TestServer records every request it serves.
type TestServer struct {
	*httptest.Server

	mutex    sync.Mutex
	requests []RecordedRequest
}

// NewTestServer starts a server answering every request with status and the
// JSON encoding of response. A nil response sends an empty body.
func NewTestServer(t *testing.T, status int, response interface{}) *TestServer {
	t.Helper()

	return NewTestServerFunc(t, func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, status, response)
	})
}

// NewTestServerFunc starts a recording server with a custom handler.
func NewTestServerFunc(t *testing.T, handler http.HandlerFunc) *TestServer {
	t.Helper()

	server := &TestServer{}
	server.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		recorded := RecordedRequest{
			Method: request.Method,
			Path:   request.URL.Path,
			Query:  request.URL.RawQuery,
			Header: request.Header.Clone(),
		}

		body, err := io.ReadAll(request.Body)
		assert.NoError(t, err)

		if len(body) > 0 {
			assert.NoError(t, json.Unmarshal(body, &recorded.Body))
		}

		server.mutex.Lock()
		server.requests = append(server.requests, recorded)
		server.mutex.Unlock()

		handler(writer, request)
	}))
	t.Cleanup(server.Close)

	return server
}

// Requests returns the requests served so far.
func (s *TestServer) Requests() []RecordedRequest {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return append([]RecordedRequest(nil), s.requests...)
}

// LastRequest returns the most recent request.
func (s *TestServer) LastRequest(t *testing.T) RecordedRequest {
	t.Helper()

	requests := s.Requests()
	require.NotEmpty(t, requests)

	return requests[len(requests)-1]
}

func writeJSON(writer http.ResponseWriter, status int, response interface{}) {
	if response != nil {
		writer.Header().Set("Content-Type", "application/json")
	}

	writer.WriteHeader(status)

	if response != nil {
		_ = json.NewEncoder(writer).Encode(response)
	}
}

// TestLookupOperation is a table entry for single-resource lookups.
type TestLookupOperation[T any] struct {
	Name         string
	ExpectedPath string
	StatusCode   int
	Response     interface{}
	WantNil      bool
	WantErr      bool
	Check        func(t *testing.T, result *T)
}

// RunLookupTests runs lookup tests against a fresh server per case.
func RunLookupTests[T any](
	t *testing.T,
	tests []TestLookupOperation[T],
	lookup func(*Client) (*T, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			server := NewTestServer(t, testCase.StatusCode, testCase.Response)
			client := NewTestClient(t, server.URL)

			result, err := lookup(client)

			if testCase.ExpectedPath != "" {
				assert.Equal(t, testCase.ExpectedPath, server.LastRequest(t).Path)
			}

			switch {
			case testCase.WantErr:
				require.Error(t, err)
				assert.Nil(t, result)
			case testCase.WantNil:
				require.NoError(t, err)
				assert.Nil(t, result)
			default:
				require.NoError(t, err)
				require.NotNil(t, result)

				if testCase.Check != nil {
					testCase.Check(t, result)
				}
			}
		})
	}
}
