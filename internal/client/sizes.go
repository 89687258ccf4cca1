package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/batfish/internal/constants"
	http_internal "github.com/fivetwenty-io/batfish/internal/http"
	"github.com/fivetwenty-io/batfish/pkg/batfish"
)

// SizesClient implements the batfish.SizesClient interface. Sizes have no
// display name, so name lookups match on the slug.
type SizesClient struct {
	httpClient *http_internal.Client
}

// NewSizesClient creates a new SizesClient.
func NewSizesClient(httpClient *http_internal.Client) *SizesClient {
	return &SizesClient{httpClient: httpClient}
}

// List lists all sizes.
func (c *SizesClient) List(ctx context.Context) ([]batfish.Size, error) {
	sizes, err := getList[batfish.Size](ctx, c.httpClient, constants.SizesPath, constants.KeySizes)
	if err != nil {
		return nil, fmt.Errorf("listing sizes: %w", err)
	}

	return sizes, nil
}

// FromID returns the size whose slug equals slug, ignoring case.
func (c *SizesClient) FromID(ctx context.Context, slug string) (*batfish.Size, error) {
	sizes, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	return firstByKey(sizes, slug, sizeSlug), nil
}

// FromName returns the first size whose slug starts with name.
func (c *SizesClient) FromName(ctx context.Context, name string) (*batfish.Size, error) {
	sizes, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	return firstByPrefix(sizes, name, sizeSlug), nil
}

func sizeSlug(s batfish.Size) string {
	return s.Slug
}
