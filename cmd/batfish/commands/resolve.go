package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/batfish/internal/constants"
	"github.com/fivetwenty-io/batfish/pkg/batfish"
)

func isNumeric(value string) bool {
	if value == "" {
		return false
	}

	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func parseID(value string) (int, error) {
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidID, value)
	}

	return id, nil
}

// resolveDroplet finds a droplet by id when the argument is all digits and by
// name prefix otherwise.
func resolveDroplet(ctx context.Context, client batfish.ResourceClients, nameOrID string) (*batfish.Droplet, error) {
	var (
		droplet *batfish.Droplet
		err     error
	)

	if isNumeric(nameOrID) {
		id, parseErr := parseID(nameOrID)
		if parseErr != nil {
			return nil, parseErr
		}

		droplet, err = client.Droplets().FromID(ctx, id)
	} else {
		droplet, err = client.Droplets().FromName(ctx, nameOrID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find droplet: %w", err)
	}

	if droplet == nil {
		return nil, fmt.Errorf("droplet '%s': %w", nameOrID, constants.ErrDropletNotFound)
	}

	return droplet, nil
}

// resolveImage works like resolveDroplet and falls back from name to slug.
func resolveImage(ctx context.Context, client batfish.ResourceClients, nameOrID string) (*batfish.Image, error) {
	var (
		image *batfish.Image
		err   error
	)

	if isNumeric(nameOrID) {
		id, parseErr := parseID(nameOrID)
		if parseErr != nil {
			return nil, parseErr
		}

		image, err = client.Images().FromID(ctx, id)
	} else {
		image, err = client.Images().FromName(ctx, nameOrID)
		if err == nil && image == nil {
			image, err = client.Images().FromSlug(ctx, nameOrID)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find image: %w", err)
	}

	if image == nil {
		return nil, fmt.Errorf("image '%s': %w", nameOrID, constants.ErrImageNotFound)
	}

	return image, nil
}

// resolveRegion tries the slug first and the display name second.
func resolveRegion(ctx context.Context, client batfish.ResourceClients, slugOrName string) (*batfish.Region, error) {
	region, err := client.Regions().FromSlug(ctx, slugOrName)
	if err == nil && region == nil {
		region, err = client.Regions().FromName(ctx, slugOrName)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find region: %w", err)
	}

	if region == nil {
		return nil, fmt.Errorf("region '%s': %w", slugOrName, constants.ErrRegionNotFound)
	}

	return region, nil
}

func resolveSize(ctx context.Context, client batfish.ResourceClients, slug string) (*batfish.Size, error) {
	size, err := client.Sizes().FromID(ctx, slug)
	if err == nil && size == nil {
		size, err = client.Sizes().FromName(ctx, slug)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find size: %w", err)
	}

	if size == nil {
		return nil, fmt.Errorf("size '%s': %w", slug, constants.ErrSizeNotFound)
	}

	return size, nil
}
