package batfish

import (
	"context"

	"github.com/samber/lo"
)

// Image represents a public distribution image or a private snapshot.
type Image struct {
	ID           int       `json:"id"           yaml:"id"`
	Name         string    `json:"name"         yaml:"name"`
	Distribution string    `json:"distribution" yaml:"distribution"`
	Slug         string    `json:"slug"         yaml:"slug,omitempty"`
	Public       bool      `json:"public"       yaml:"public"`
	RegionSlugs  []string  `json:"regions"      yaml:"regions"`
	CreatedAt    Timestamp `json:"created_at"   yaml:"created_at"`
}

// ImageID implements ImageRef.
func (i *Image) ImageID() int {
	return i.ID
}

func (i *Image) String() string {
	return "<Image " + i.Name + ">"
}

// RegionNames maps the image's region slugs to display names.
func (i *Image) RegionNames() []string {
	return lo.Map(i.RegionSlugs, func(slug string, _ int) string {
		return RegionNameFromSlug(slug)
	})
}

// Regions resolves each region the image is available in. Slugs the API does
// not know are skipped.
func (i *Image) Regions(ctx context.Context, client ResourceClients) ([]Region, error) {
	return resolveRegions(ctx, client, i.RegionSlugs)
}

// Actions lists the actions performed on the image.
func (i *Image) Actions(ctx context.Context, client ResourceClients) ([]Action, error) {
	return client.Images().Actions(ctx, i)
}

func resolveRegions(ctx context.Context, client ResourceClients, slugs []string) ([]Region, error) {
	regions := make([]Region, 0, len(slugs))

	for _, slug := range slugs {
		region, err := client.Regions().FromSlug(ctx, slug)
		if err != nil {
			return nil, err
		}

		if region != nil {
			regions = append(regions, *region)
		}
	}

	return regions, nil
}
