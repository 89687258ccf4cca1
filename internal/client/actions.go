package client

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fivetwenty-io/batfish/internal/constants"
	http_internal "github.com/fivetwenty-io/batfish/internal/http"
	"github.com/fivetwenty-io/batfish/pkg/batfish"
)

// ActionsClient implements the batfish.ActionsClient interface.
type ActionsClient struct {
	httpClient *http_internal.Client
}

// NewActionsClient creates a new ActionsClient.
func NewActionsClient(httpClient *http_internal.Client) *ActionsClient {
	return &ActionsClient{httpClient: httpClient}
}

// List lists every action recorded for the account.
func (c *ActionsClient) List(ctx context.Context) ([]batfish.Action, error) {
	actions, err := getList[batfish.Action](ctx, c.httpClient, constants.ActionsPath, constants.KeyActions)
	if err != nil {
		return nil, fmt.Errorf("listing actions: %w", err)
	}

	return actions, nil
}

// Get retrieves an action, or nil when it does not exist.
func (c *ActionsClient) Get(ctx context.Context, id int) (*batfish.Action, error) {
	action, err := getOne[batfish.Action](ctx, c.httpClient, constants.ActionsPath+"/"+strconv.Itoa(id), constants.KeyAction)
	if err != nil {
		return nil, fmt.Errorf("getting action: %w", err)
	}

	return action, nil
}

// Wait implements batfish.ActionsClient.Wait. It checks once immediately and
// then on every tick until the action leaves in-progress, the action
// disappears, or DefaultPollTimeout passes.
func (c *ActionsClient) Wait(ctx context.Context, id int, interval time.Duration) (*batfish.Action, error) {
	if interval <= 0 {
		interval = constants.DefaultPollInterval
	}

	pollCtx, cancel := context.WithTimeout(ctx, constants.DefaultPollTimeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		action, err := c.Get(pollCtx, id)
		if err != nil {
			return nil, fmt.Errorf("polling action: %w", err)
		}

		if action == nil {
			return nil, nil
		}

		switch action.Status {
		case batfish.ActionStatusErrored:
			return action, fmt.Errorf("%w: %s", batfish.ErrActionErrored, action)
		case batfish.ActionStatusCompleted:
			return action, nil
		}

		select {
		case <-pollCtx.Done():
			return action, fmt.Errorf("timeout waiting for action to complete: %w", pollCtx.Err())
		case <-ticker.C:
		}
	}
}
