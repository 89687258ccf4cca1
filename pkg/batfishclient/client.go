package batfishclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/batfish/internal/auth"
	"github.com/fivetwenty-io/batfish/internal/client"
	"github.com/fivetwenty-io/batfish/internal/constants"
	"github.com/fivetwenty-io/batfish/pkg/batfish"
)

// New creates a new API client from config. The config is normalized in
// place: the endpoint gets a default and a scheme.
func New(ctx context.Context, config *batfish.Config) (batfish.Client, error) {
	if config == nil {
		return nil, batfish.ErrConfigRequired
	}

	config.APIEndpoint = NormalizeEndpoint(config.APIEndpoint)

	client, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

// NewWithToken creates a client for the public API using token. Authorize
// does not persist anything on a client built this way.
func NewWithToken(ctx context.Context, token string) (batfish.Client, error) {
	return New(ctx, &batfish.Config{AccessToken: token})
}

// NewFromHome creates a client that loads its token from ~/.batfish and saves
// authorized tokens back to it.
func NewFromHome(ctx context.Context) (batfish.Client, error) {
	store, err := auth.NewHomeTokenStore()
	if err != nil {
		return nil, err
	}

	return New(ctx, &batfish.Config{TokenStore: store})
}

// NormalizeEndpoint applies the default endpoint, adds https:// when no
// scheme is given and strips a trailing slash.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return constants.DefaultAPIEndpoint
	}

	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}
