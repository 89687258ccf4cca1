package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/batfish/internal/constants"
	http_internal "github.com/fivetwenty-io/batfish/internal/http"
	"github.com/fivetwenty-io/batfish/pkg/batfish"
)

// RegionsClient implements the batfish.RegionsClient interface. The API has
// no single-region endpoint, so every lookup lists the collection.
type RegionsClient struct {
	httpClient *http_internal.Client
}

// NewRegionsClient creates a new RegionsClient.
func NewRegionsClient(httpClient *http_internal.Client) *RegionsClient {
	return &RegionsClient{httpClient: httpClient}
}

// List lists all regions.
func (c *RegionsClient) List(ctx context.Context) ([]batfish.Region, error) {
	regions, err := getList[batfish.Region](ctx, c.httpClient, constants.RegionsPath, constants.KeyRegions)
	if err != nil {
		return nil, fmt.Errorf("listing regions: %w", err)
	}

	return regions, nil
}

// FromID returns the region whose slug equals slug, ignoring case.
func (c *RegionsClient) FromID(ctx context.Context, slug string) (*batfish.Region, error) {
	regions, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	return firstByKey(regions, slug, regionSlug), nil
}

// FromName returns the first region whose name starts with name.
func (c *RegionsClient) FromName(ctx context.Context, name string) (*batfish.Region, error) {
	regions, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	return firstByPrefix(regions, name, func(r batfish.Region) string { return r.Name }), nil
}

// FromSlug returns the region with an equal slug, or failing that the first
// region whose slug starts with slug.
func (c *RegionsClient) FromSlug(ctx context.Context, slug string) (*batfish.Region, error) {
	regions, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	if region := firstByKey(regions, slug, regionSlug); region != nil {
		return region, nil
	}

	return firstByPrefix(regions, slug, regionSlug), nil
}

func regionSlug(r batfish.Region) string {
	return r.Slug
}
