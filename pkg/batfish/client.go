package batfish

import (
	"context"
	"strconv"
	"time"
)

// DropletsClient manages droplets and their actions.
type DropletsClient interface {
	List(ctx context.Context) ([]Droplet, error)
	FromID(ctx context.Context, id int) (*Droplet, error)
	FromName(ctx context.Context, name string) (*Droplet, error)
	Create(ctx context.Context, request *DropletCreateRequest) (*Droplet, error)
	Delete(ctx context.Context, droplet DropletRef) error
	Actions(ctx context.Context, droplet DropletRef) ([]Action, error)

	// Perform validates and sends any droplet action.
	Perform(ctx context.Context, droplet DropletRef, request *ActionRequest) (*Action, error)

	Reboot(ctx context.Context, droplet DropletRef) (*Action, error)
	PowerCycle(ctx context.Context, droplet DropletRef) (*Action, error)
	PowerOff(ctx context.Context, droplet DropletRef) (*Action, error)
	PowerOn(ctx context.Context, droplet DropletRef) (*Action, error)
	PasswordReset(ctx context.Context, droplet DropletRef) (*Action, error)
	Shutdown(ctx context.Context, droplet DropletRef) (*Action, error)
	Restore(ctx context.Context, droplet DropletRef, image ImageRef) (*Action, error)
	Rebuild(ctx context.Context, droplet DropletRef, image ImageRef) (*Action, error)
	Snapshot(ctx context.Context, droplet DropletRef, name string) (*Action, error)
	Rename(ctx context.Context, droplet DropletRef, name string) (*Action, error)
	Resize(ctx context.Context, droplet DropletRef, size string) (*Action, error)
	EnableIPv6(ctx context.Context, droplet DropletRef) (*Action, error)
	DisableBackups(ctx context.Context, droplet DropletRef) (*Action, error)
	EnablePrivateNetworking(ctx context.Context, droplet DropletRef) (*Action, error)
}

// ImagesClient manages images.
type ImagesClient interface {
	List(ctx context.Context) ([]Image, error)
	FromID(ctx context.Context, id int) (*Image, error)
	FromName(ctx context.Context, name string) (*Image, error)
	FromSlug(ctx context.Context, slug string) (*Image, error)
	Delete(ctx context.Context, image ImageRef) error
	Rename(ctx context.Context, image ImageRef, name string) (*Image, error)
	Transfer(ctx context.Context, image ImageRef, region string) (*Action, error)
	Actions(ctx context.Context, image ImageRef) ([]Action, error)
	Perform(ctx context.Context, image ImageRef, request *ActionRequest) (*Action, error)
}

// RegionsClient looks up regions. Regions are keyed by slug.
type RegionsClient interface {
	List(ctx context.Context) ([]Region, error)
	FromID(ctx context.Context, slug string) (*Region, error)
	FromName(ctx context.Context, name string) (*Region, error)
	FromSlug(ctx context.Context, slug string) (*Region, error)
}

// SizesClient looks up sizes. Sizes are keyed by slug.
type SizesClient interface {
	List(ctx context.Context) ([]Size, error)
	FromID(ctx context.Context, slug string) (*Size, error)
	FromName(ctx context.Context, name string) (*Size, error)
}

// ActionsClient reads action records.
type ActionsClient interface {
	List(ctx context.Context) ([]Action, error)
	Get(ctx context.Context, id int) (*Action, error)

	// Wait polls an action until it completes or errors. A non-positive
	// interval uses the default.
	Wait(ctx context.Context, id int, interval time.Duration) (*Action, error)
}

// ResourceClients provides access to all resource-specific clients.
type ResourceClients interface {
	Droplets() DropletsClient
	Images() ImagesClient
	Regions() RegionsClient
	Sizes() SizesClient
	Actions() ActionsClient
}

// RequestClient exposes the raw request operations. Responses are decoded into
// generic key-value maps.
type RequestClient interface {
	Get(ctx context.Context, path string, headers map[string]string) (map[string]interface{}, error)
	Post(ctx context.Context, path string, payload interface{}) (map[string]interface{}, error)
	Put(ctx context.Context, path string, payload interface{}) (map[string]interface{}, error)
	Delete(ctx context.Context, path string) error
}

// AuthClient validates and adopts tokens.
type AuthClient interface {
	Authorize(ctx context.Context, token string) (*AuthorizeResult, error)
	Token() string
}

type Client interface {
	ResourceClients
	RequestClient
	AuthClient

	UserAgent() string
	SetUserAgent(ua string)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// TokenStore loads and persists the API token. An empty token with a nil error
// means no token has been stored yet.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
}

// Config represents client configuration for building a batfish.Client.
//
// # Authentication
//
// AccessToken, when set, is used as the Bearer token and TokenStore is only
// written to by Authorize. Otherwise the token is loaded from TokenStore at
// construction. With neither, the client starts unauthenticated and calls
// that need a token fail remotely.
//
// # Timeouts and retries
//
// HTTPTimeout bounds a whole request, ConnectTimeout bounds dialing. Requests
// are not retried unless RetryMax > 0, and even then only idempotent GET and
// HEAD requests are retried (on connection errors, 429 and 5xx).
type Config struct {
	// APIEndpoint: base URL, e.g. "https://api.digitalocean.com/v2". Paths are
	// appended verbatim. Defaults to the public endpoint.
	APIEndpoint string
	// AccessToken: if set, used directly as the Bearer token.
	AccessToken string
	// TokenStore: where the token is loaded from and saved to by Authorize.
	TokenStore TokenStore

	// UserAgent: overrides the default "Batfish (<version>)" agent string.
	UserAgent string

	// HTTPTimeout: bound on a whole request. ConnectTimeout: dial timeout.
	HTTPTimeout    time.Duration
	ConnectTimeout time.Duration

	// Retry settings, applied to GET and HEAD only and only when RetryMax > 0.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Debug: enables request/response logging when a Logger is provided.
	Debug  bool
	Logger Logger
}

// AuthorizeStatus classifies the outcome of Authorize.
type AuthorizeStatus string

const (
	// AuthorizeOK means the token was accepted, stored and adopted.
	AuthorizeOK AuthorizeStatus = "ok"
	// AuthorizeUnable means the endpoint answered 404 for the candidate token.
	AuthorizeUnable AuthorizeStatus = "unable"
	// AuthorizeUnknown means any other non-success client status.
	AuthorizeUnknown AuthorizeStatus = "unknown"
)

// AuthorizeResult is returned by Authorize for every answered request.
type AuthorizeResult struct {
	Status     AuthorizeStatus `json:"status"                yaml:"status"`
	StatusCode int             `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	Reason     string          `json:"reason,omitempty"      yaml:"reason,omitempty"`
}

// OK reports whether the token was adopted.
func (r *AuthorizeResult) OK() bool {
	return r != nil && r.Status == AuthorizeOK
}

// String renders the result for display.
func (r *AuthorizeResult) String() string {
	switch r.Status {
	case AuthorizeOK:
		return "OK"
	case AuthorizeUnable:
		return "Unable to authorize"
	default:
		return "Unable to authorize due to unknown reason. Server responded with " +
			strconv.Itoa(r.StatusCode) + " - " + r.Reason
	}
}
