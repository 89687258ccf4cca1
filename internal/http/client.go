package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fivetwenty-io/batfish/internal/auth"
	"github.com/fivetwenty-io/batfish/internal/constants"
	"github.com/fivetwenty-io/batfish/pkg/batfish"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	headerAuthorization = "Authorization"
	headerUserAgent     = "User-Agent"
	headerAccept        = "Accept"
	headerContentType   = "Content-Type"

	mimeJSON = "application/json"
)

// Request describes a single API call. Headers override the defaults.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client sends requests to the API, adding authentication and the user agent.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenManager auth.TokenManager
	logger       batfish.Logger
	debug        bool

	mutex     sync.RWMutex
	userAgent string

	httpTimeout    time.Duration
	connectTimeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output and retry notices.
func WithLogger(logger batfish.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig enables retries of GET and HEAD requests.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeouts sets the whole-request and dial timeouts. Zero keeps the
// default.
func WithTimeouts(httpTimeout, connectTimeout time.Duration) Option {
	return func(c *Client) {
		if httpTimeout > 0 {
			c.httpTimeout = httpTimeout
		}

		if connectTimeout > 0 {
			c.connectTimeout = connectTimeout
		}
	}
}

// NewClient creates a client for baseURL. tokenManager may be nil, in which
// case requests are sent without an Authorization header.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.CheckRetry = checkRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	client := &Client{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		httpClient:     retryClient,
		tokenManager:   tokenManager,
		userAgent:      fmt.Sprintf(constants.UserAgentFormat, constants.Version),
		httpTimeout:    constants.DefaultHTTPTimeout,
		connectTimeout: constants.DefaultConnectTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient.HTTPClient = &http.Client{
		Transport: newTransport(client.connectTimeout),
		Timeout:   client.httpTimeout,
	}

	if client.logger != nil && client.debug && retryClient.RetryMax > 0 {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

func newTransport(connectTimeout time.Duration) *http.Transport {
	transport := cleanhttp.DefaultPooledTransport()
	transport.DialContext = (&net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext

	return transport
}

// BaseURL returns the URL every path is appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// UserAgent returns the current User-Agent header value.
func (c *Client) UserAgent() string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.userAgent
}

// SetUserAgent replaces the User-Agent header value.
func (c *Client) SetUserAgent(userAgent string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.userAgent = userAgent
}

// Do sends req. On a 4xx or 5xx status it returns both the response and a
// *batfish.HTTPError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var body []byte

	if req.Body != nil {
		var err error

		body, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
	}

	ctx = context.WithValue(ctx, idempotentKey{}, isIdempotent(req.Method))

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	headers, err := c.headers(ctx, body != nil)
	if err != nil {
		return nil, err
	}

	for key, value := range req.Headers {
		headers[key] = value
	}

	for key, value := range headers {
		httpReq.Header.Set(key, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
			"body":   string(body),
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   httpResp.StatusCode,
			"duration": time.Since(start).String(),
			"body":     string(respBody),
		})
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if httpResp.StatusCode >= http.StatusBadRequest {
		return resp, batfish.NewHTTPError(req.Method, req.Path, httpResp.StatusCode, respBody)
	}

	return resp, nil
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post sends a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put sends a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

func (c *Client) headers(ctx context.Context, hasBody bool) (map[string]string, error) {
	headers := map[string]string{
		headerAccept:    mimeJSON,
		headerUserAgent: c.UserAgent(),
	}

	if hasBody {
		headers[headerContentType] = mimeJSON
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}

		if token != "" {
			headers[headerAuthorization] = "Bearer " + token
		}
	}

	return headers, nil
}

func bodyReader(body []byte) interface{} {
	if body == nil {
		return nil
	}

	return bytes.NewReader(body)
}

type idempotentKey struct{}

func isIdempotent(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

// checkRetry applies the default policy to idempotent requests only.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if idempotent, _ := ctx.Value(idempotentKey{}).(bool); !idempotent {
		return false, ctx.Err()
	}

	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// leveledLogger forwards retryablehttp's retry notices to a batfish.Logger.
type leveledLogger struct {
	logger batfish.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, fields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fields(keysAndValues))
}

func fields(keysAndValues []interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}

		if _, isRequest := keysAndValues[i+1].(*http.Request); isRequest {
			continue
		}

		out[key] = keysAndValues[i+1]
	}

	return out
}
