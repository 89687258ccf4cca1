package batfish

import "context"

// ActionStatus is the progress state of an action.
type ActionStatus string

const (
	ActionStatusInProgress ActionStatus = "in-progress"
	ActionStatusCompleted  ActionStatus = "completed"
	ActionStatusErrored    ActionStatus = "errored"
)

// Action records an asynchronous operation against a droplet or image.
// CompletedAt is nil while the action is in progress.
type Action struct {
	ID           int          `json:"id"            yaml:"id"`
	Status       ActionStatus `json:"status"        yaml:"status"`
	Type         string       `json:"type"          yaml:"type"`
	StartedAt    Timestamp    `json:"started_at"    yaml:"started_at"`
	CompletedAt  *Timestamp   `json:"completed_at"  yaml:"completed_at"`
	ResourceID   int          `json:"resource_id"   yaml:"resource_id"`
	ResourceType string       `json:"resource_type" yaml:"resource_type"`
	RegionInfo   *RegionRef   `json:"region"        yaml:"region,omitempty"`
}

func (a *Action) String() string {
	return "<Action " + a.Type + ">"
}

// Completed reports whether the action has a completion time.
func (a *Action) Completed() bool {
	return a.CompletedAt != nil && !a.CompletedAt.IsZero()
}

// RegionSlug returns the slug of the region the action ran in, or "".
func (a *Action) RegionSlug() string {
	if a.RegionInfo == nil {
		return ""
	}

	return a.RegionInfo.Slug
}

// RegionName returns the display name of the action's region.
func (a *Action) RegionName() string {
	return RegionNameFromSlug(a.RegionSlug())
}

// Region fetches the region the action ran in. It returns nil when the action
// carries no region.
func (a *Action) Region(ctx context.Context, client ResourceClients) (*Region, error) {
	if a.RegionSlug() == "" {
		return nil, nil
	}

	return client.Regions().FromSlug(ctx, a.RegionSlug())
}
