package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	nethttp "net/http"

	"github.com/fivetwenty-io/batfish/internal/auth"
	"github.com/fivetwenty-io/batfish/internal/constants"
	"github.com/fivetwenty-io/batfish/internal/http"
	"github.com/fivetwenty-io/batfish/pkg/batfish"
)

// Static errors for err113 compliance.
var (
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
)

var _ batfish.Client = (*Client)(nil)

// Client implements the batfish.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	tokenStore   batfish.TokenStore
	baseURL      string
	logger       batfish.Logger

	droplets *DropletsClient
	images   *ImagesClient
	regions  *RegionsClient
	sizes    *SizesClient
	actions  *ActionsClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *batfish.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	httpOpts = append(httpOpts, http.WithTimeouts(config.HTTPTimeout, config.ConnectTimeout))

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a client. The token is config.AccessToken when set, otherwise
// whatever config.TokenStore holds. A client without a token is still usable:
// the API rejects the requests that need one.
func New(_ context.Context, config *batfish.Config) (*Client, error) {
	if config == nil {
		return nil, batfish.ErrConfigRequired
	}

	token := config.AccessToken

	if token == "" && config.TokenStore != nil {
		stored, err := config.TokenStore.Load()
		if err != nil {
			return nil, fmt.Errorf("loading token: %w", err)
		}

		token = stored
	}

	return NewWithTokenManager(config, auth.NewStaticTokenManager(token))
}

// NewWithTokenManager creates a client with a custom token manager.
func NewWithTokenManager(config *batfish.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config == nil {
		return nil, batfish.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, ErrAPIEndpointRequired
	}

	httpClient := http.NewClient(config.APIEndpoint, tokenManager, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		tokenStore:   config.TokenStore,
		baseURL:      httpClient.BaseURL(),
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.droplets = NewDropletsClient(c.httpClient)
	c.images = NewImagesClient(c.httpClient)
	c.regions = NewRegionsClient(c.httpClient)
	c.sizes = NewSizesClient(c.httpClient)
	c.actions = NewActionsClient(c.httpClient)
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// BaseURL returns the API endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get implements batfish.RequestClient.Get. headers override the defaults.
func (c *Client) Get(ctx context.Context, path string, headers map[string]string) (map[string]interface{}, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{Method: nethttp.MethodGet, Path: path, Headers: headers})
	if err != nil {
		return nil, err
	}

	return decodeDocument(resp)
}

// Post implements batfish.RequestClient.Post.
func (c *Client) Post(ctx context.Context, path string, payload interface{}) (map[string]interface{}, error) {
	resp, err := c.httpClient.Post(ctx, path, payload)
	if err != nil {
		return nil, err
	}

	return decodeDocument(resp)
}

// Put implements batfish.RequestClient.Put.
func (c *Client) Put(ctx context.Context, path string, payload interface{}) (map[string]interface{}, error) {
	resp, err := c.httpClient.Put(ctx, path, payload)
	if err != nil {
		return nil, err
	}

	return decodeDocument(resp)
}

// Delete implements batfish.RequestClient.Delete. The body is ignored.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.httpClient.Delete(ctx, path)

	return err
}

// Authorize implements batfish.AuthClient.Authorize. The candidate token is
// checked against an authenticated endpoint and, if accepted, saved to the
// token store and adopted.
func (c *Client) Authorize(ctx context.Context, token string) (*batfish.AuthorizeResult, error) {
	_, err := c.httpClient.Do(ctx, &http.Request{
		Method:  nethttp.MethodGet,
		Path:    constants.AuthorizePath,
		Headers: map[string]string{"Authorization": "Bearer " + token},
	})
	if err != nil {
		httpErr := &batfish.HTTPError{}
		if !errors.As(err, &httpErr) || httpErr.StatusCode >= nethttp.StatusInternalServerError {
			return nil, fmt.Errorf("authorizing: %w", err)
		}

		status := batfish.AuthorizeUnknown
		if httpErr.StatusCode == nethttp.StatusNotFound {
			status = batfish.AuthorizeUnable
		}

		return &batfish.AuthorizeResult{
			Status:     status,
			StatusCode: httpErr.StatusCode,
			Reason:     httpErr.Reason,
		}, nil
	}

	if c.tokenStore != nil {
		err = c.tokenStore.Save(token)
		if err != nil {
			return nil, fmt.Errorf("saving token: %w", err)
		}
	}

	c.tokenManager.SetToken(token)

	if c.logger != nil {
		c.logger.Info("token authorized", nil)
	}

	return &batfish.AuthorizeResult{Status: batfish.AuthorizeOK, StatusCode: nethttp.StatusOK}, nil
}

// Token implements batfish.AuthClient.Token.
func (c *Client) Token() string {
	token, _ := c.tokenManager.GetToken(context.Background())

	return token
}

// UserAgent implements batfish.Client.UserAgent.
func (c *Client) UserAgent() string {
	return c.httpClient.UserAgent()
}

// SetUserAgent implements batfish.Client.SetUserAgent.
func (c *Client) SetUserAgent(ua string) {
	c.httpClient.SetUserAgent(ua)
}

// Resource client accessors

// Droplets implements batfish.Client.Droplets.
func (c *Client) Droplets() batfish.DropletsClient {
	return c.droplets
}

// Images implements batfish.Client.Images.
func (c *Client) Images() batfish.ImagesClient {
	return c.images
}

// Regions implements batfish.Client.Regions.
func (c *Client) Regions() batfish.RegionsClient {
	return c.regions
}

// Sizes implements batfish.Client.Sizes.
func (c *Client) Sizes() batfish.SizesClient {
	return c.sizes
}

// Actions implements batfish.Client.Actions.
func (c *Client) Actions() batfish.ActionsClient {
	return c.actions
}

// decodeDocument decodes a response body as a JSON object. Only 204 No
// Content may come without a body.
func decodeDocument(resp *http.Response) (map[string]interface{}, error) {
	document := map[string]interface{}{}
	if resp.StatusCode == nethttp.StatusNoContent {
		return document, nil
	}

	if len(resp.Body) == 0 {
		return nil, fmt.Errorf("%w: empty body", batfish.ErrMalformedResponse)
	}

	err := json.Unmarshal(resp.Body, &document)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", batfish.ErrMalformedResponse, err)
	}

	return document, nil
}
