package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/batfish/internal/constants"
	http_internal "github.com/fivetwenty-io/batfish/internal/http"
	"github.com/fivetwenty-io/batfish/pkg/batfish"
)

// ImagesClient implements the batfish.ImagesClient interface.
type ImagesClient struct {
	httpClient *http_internal.Client
}

// NewImagesClient creates a new ImagesClient.
func NewImagesClient(httpClient *http_internal.Client) *ImagesClient {
	return &ImagesClient{httpClient: httpClient}
}

func imagePath(id int) string {
	return constants.ImagesPath + "/" + strconv.Itoa(id)
}

// List lists all images available to the account.
func (c *ImagesClient) List(ctx context.Context) ([]batfish.Image, error) {
	images, err := getList[batfish.Image](ctx, c.httpClient, constants.ImagesPath, constants.KeyImages)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}

	return images, nil
}

// FromID retrieves an image, or nil when it does not exist.
func (c *ImagesClient) FromID(ctx context.Context, id int) (*batfish.Image, error) {
	image, err := getOne[batfish.Image](ctx, c.httpClient, imagePath(id), constants.KeyImage)
	if err != nil {
		return nil, fmt.Errorf("getting image: %w", err)
	}

	return image, nil
}

// FromName returns the first image whose name starts with name, ignoring
// case, or nil.
func (c *ImagesClient) FromName(ctx context.Context, name string) (*batfish.Image, error) {
	images, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	return firstByPrefix(images, name, func(i batfish.Image) string { return i.Name }), nil
}

// FromSlug retrieves a public image by slug, ignoring case.
func (c *ImagesClient) FromSlug(ctx context.Context, slug string) (*batfish.Image, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, nil
	}

	image, err := getOne[batfish.Image](ctx, c.httpClient, constants.ImagesPath+"/"+url.PathEscape(slug), constants.KeyImage)
	if err != nil {
		return nil, fmt.Errorf("getting image by slug: %w", err)
	}

	return image, nil
}

// Delete deletes a private image.
func (c *ImagesClient) Delete(ctx context.Context, image batfish.ImageRef) error {
	id, err := imageID(image)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, imagePath(id))
	if err != nil {
		return fmt.Errorf("deleting image: %w", err)
	}

	return nil
}

// Rename changes an image's name with a PUT to the image itself.
func (c *ImagesClient) Rename(ctx context.Context, image batfish.ImageRef, name string) (*batfish.Image, error) {
	err := batfish.ValidateName(name)
	if err != nil {
		return nil, err
	}

	id, err := imageID(image)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Put(ctx, imagePath(id), map[string]string{"name": name})
	if err != nil {
		return nil, fmt.Errorf("renaming image: %w", err)
	}

	var renamed batfish.Image

	found, err := decodeKey(resp.Body, constants.KeyImage, &renamed)
	if err != nil {
		return nil, fmt.Errorf("parsing image response: %w", err)
	}

	if !found {
		return nil, nil
	}

	return &renamed, nil
}

// Transfer copies an image to another region.
func (c *ImagesClient) Transfer(ctx context.Context, image batfish.ImageRef, region string) (*batfish.Action, error) {
	return c.Perform(ctx, image, &batfish.ActionRequest{Type: batfish.ActionTransfer, Region: region})
}

// Actions lists the actions performed on an image.
func (c *ImagesClient) Actions(ctx context.Context, image batfish.ImageRef) ([]batfish.Action, error) {
	id, err := imageID(image)
	if err != nil {
		return nil, err
	}

	actions, err := getList[batfish.Action](ctx, c.httpClient, imagePath(id)+constants.ActionsPath, constants.KeyActions)
	if err != nil {
		return nil, fmt.Errorf("listing image actions: %w", err)
	}

	return actions, nil
}

// Perform validates request and sends it to the image's actions endpoint.
func (c *ImagesClient) Perform(ctx context.Context, image batfish.ImageRef, request *batfish.ActionRequest) (*batfish.Action, error) {
	if request == nil {
		return nil, &batfish.ValidationError{Field: "action", Err: batfish.ErrNilReference}
	}

	if !request.Type.AppliesToImages() {
		return nil, &batfish.ValidationError{Field: "action", Value: string(request.Type), Err: batfish.ErrUnsupportedAction}
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	id, err := imageID(image)
	if err != nil {
		return nil, err
	}

	action, err := postAction(ctx, c.httpClient, imagePath(id)+constants.ActionsPath, request.Payload())
	if err != nil {
		return nil, fmt.Errorf("performing %s on image %d: %w", request.Type, id, err)
	}

	return action, nil
}
