package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/batfish/internal/constants"
	http_internal "github.com/fivetwenty-io/batfish/internal/http"
	"github.com/fivetwenty-io/batfish/pkg/batfish"
)

// DropletsClient implements the batfish.DropletsClient interface.
type DropletsClient struct {
	httpClient *http_internal.Client
}

// NewDropletsClient creates a new DropletsClient.
func NewDropletsClient(httpClient *http_internal.Client) *DropletsClient {
	return &DropletsClient{
		httpClient: httpClient,
	}
}

func dropletPath(id int) string {
	return constants.DropletsPath + "/" + strconv.Itoa(id)
}

// List lists all droplets. It returns nil when the account reports none.
func (c *DropletsClient) List(ctx context.Context) ([]batfish.Droplet, error) {
	droplets, err := getList[batfish.Droplet](ctx, c.httpClient, constants.DropletsPath, constants.KeyDroplets)
	if err != nil {
		return nil, fmt.Errorf("listing droplets: %w", err)
	}

	return droplets, nil
}

// FromID retrieves a droplet, or nil when it does not exist.
func (c *DropletsClient) FromID(ctx context.Context, id int) (*batfish.Droplet, error) {
	droplet, err := getOne[batfish.Droplet](ctx, c.httpClient, dropletPath(id), constants.KeyDroplet)
	if err != nil {
		return nil, fmt.Errorf("getting droplet: %w", err)
	}

	return droplet, nil
}

// FromName returns the first droplet whose name starts with name, ignoring
// case, or nil.
func (c *DropletsClient) FromName(ctx context.Context, name string) (*batfish.Droplet, error) {
	droplets, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	return firstByPrefix(droplets, name, func(d batfish.Droplet) string { return d.Name }), nil
}

// Create creates a new droplet.
func (c *DropletsClient) Create(ctx context.Context, request *batfish.DropletCreateRequest) (*batfish.Droplet, error) {
	if request == nil {
		return nil, &batfish.ValidationError{Field: "request", Err: batfish.ErrNilReference}
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, constants.DropletsPath, request.Payload())
	if err != nil {
		return nil, fmt.Errorf("creating droplet: %w", err)
	}

	var droplet batfish.Droplet

	found, err := decodeKey(resp.Body, constants.KeyDroplet, &droplet)
	if err != nil {
		return nil, fmt.Errorf("parsing droplet response: %w", err)
	}

	if !found {
		return nil, nil
	}

	return &droplet, nil
}

// Delete deletes a droplet.
func (c *DropletsClient) Delete(ctx context.Context, droplet batfish.DropletRef) error {
	id, err := dropletID(droplet)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, dropletPath(id))
	if err != nil {
		return fmt.Errorf("deleting droplet: %w", err)
	}

	return nil
}

// Actions lists the actions performed on a droplet.
func (c *DropletsClient) Actions(ctx context.Context, droplet batfish.DropletRef) ([]batfish.Action, error) {
	id, err := dropletID(droplet)
	if err != nil {
		return nil, err
	}

	actions, err := getList[batfish.Action](ctx, c.httpClient, dropletPath(id)+constants.ActionsPath, constants.KeyActions)
	if err != nil {
		return nil, fmt.Errorf("listing droplet actions: %w", err)
	}

	return actions, nil
}

// Perform validates request and sends it to the droplet's actions endpoint.
// Invalid requests are rejected without contacting the API.
func (c *DropletsClient) Perform(ctx context.Context, droplet batfish.DropletRef, request *batfish.ActionRequest) (*batfish.Action, error) {
	if request == nil {
		return nil, &batfish.ValidationError{Field: "action", Err: batfish.ErrNilReference}
	}

	if !request.Type.AppliesToDroplets() {
		return nil, &batfish.ValidationError{Field: "action", Value: string(request.Type), Err: batfish.ErrUnsupportedAction}
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	id, err := dropletID(droplet)
	if err != nil {
		return nil, err
	}

	action, err := postAction(ctx, c.httpClient, dropletPath(id)+constants.ActionsPath, request.Payload())
	if err != nil {
		return nil, fmt.Errorf("performing %s on droplet %d: %w", request.Type, id, err)
	}

	return action, nil
}

func (c *DropletsClient) simple(ctx context.Context, droplet batfish.DropletRef, actionType batfish.ActionType) (*batfish.Action, error) {
	return c.Perform(ctx, droplet, &batfish.ActionRequest{Type: actionType})
}

// Reboot reboots a droplet.
func (c *DropletsClient) Reboot(ctx context.Context, droplet batfish.DropletRef) (*batfish.Action, error) {
	return c.simple(ctx, droplet, batfish.ActionReboot)
}

// PowerCycle turns a droplet off and on again.
func (c *DropletsClient) PowerCycle(ctx context.Context, droplet batfish.DropletRef) (*batfish.Action, error) {
	return c.simple(ctx, droplet, batfish.ActionPowerCycle)
}

// PowerOff hard-stops a droplet.
func (c *DropletsClient) PowerOff(ctx context.Context, droplet batfish.DropletRef) (*batfish.Action, error) {
	return c.simple(ctx, droplet, batfish.ActionPowerOff)
}

// PowerOn starts a droplet.
func (c *DropletsClient) PowerOn(ctx context.Context, droplet batfish.DropletRef) (*batfish.Action, error) {
	return c.simple(ctx, droplet, batfish.ActionPowerOn)
}

// PasswordReset resets the root password.
func (c *DropletsClient) PasswordReset(ctx context.Context, droplet batfish.DropletRef) (*batfish.Action, error) {
	return c.simple(ctx, droplet, batfish.ActionPasswordReset)
}

// Shutdown gracefully stops a droplet.
func (c *DropletsClient) Shutdown(ctx context.Context, droplet batfish.DropletRef) (*batfish.Action, error) {
	return c.simple(ctx, droplet, batfish.ActionShutdown)
}

// Restore restores a droplet from a backup image.
func (c *DropletsClient) Restore(ctx context.Context, droplet batfish.DropletRef, image batfish.ImageRef) (*batfish.Action, error) {
	return c.Perform(ctx, droplet, &batfish.ActionRequest{Type: batfish.ActionRestore, Image: image})
}

// Rebuild reinstalls a droplet from an image.
func (c *DropletsClient) Rebuild(ctx context.Context, droplet batfish.DropletRef, image batfish.ImageRef) (*batfish.Action, error) {
	return c.Perform(ctx, droplet, &batfish.ActionRequest{Type: batfish.ActionRebuild, Image: image})
}

// Snapshot takes a named snapshot.
func (c *DropletsClient) Snapshot(ctx context.Context, droplet batfish.DropletRef, name string) (*batfish.Action, error) {
	return c.Perform(ctx, droplet, &batfish.ActionRequest{Type: batfish.ActionSnapshot, Name: name})
}

// Rename renames a droplet.
func (c *DropletsClient) Rename(ctx context.Context, droplet batfish.DropletRef, name string) (*batfish.Action, error) {
	return c.Perform(ctx, droplet, &batfish.ActionRequest{Type: batfish.ActionRename, Name: name})
}

// Resize moves a droplet to another size.
func (c *DropletsClient) Resize(ctx context.Context, droplet batfish.DropletRef, size string) (*batfish.Action, error) {
	return c.Perform(ctx, droplet, &batfish.ActionRequest{Type: batfish.ActionResize, Size: size})
}

// EnableIPv6 enables IPv6 networking.
func (c *DropletsClient) EnableIPv6(ctx context.Context, droplet batfish.DropletRef) (*batfish.Action, error) {
	return c.simple(ctx, droplet, batfish.ActionEnableIPv6)
}

// DisableBackups turns off automatic backups.
func (c *DropletsClient) DisableBackups(ctx context.Context, droplet batfish.DropletRef) (*batfish.Action, error) {
	return c.simple(ctx, droplet, batfish.ActionDisableBackups)
}

// EnablePrivateNetworking enables private networking.
func (c *DropletsClient) EnablePrivateNetworking(ctx context.Context, droplet batfish.DropletRef) (*batfish.Action, error) {
	return c.simple(ctx, droplet, batfish.ActionEnablePrivateNetworking)
}
