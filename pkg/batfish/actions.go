package batfish

import (
	"strings"

	"github.com/samber/lo"
)

// ActionType names a state-changing operation. The set is closed: values
// outside AllActionTypes are rejected before any request is sent.
type ActionType string

const (
	ActionReboot                  ActionType = "reboot"
	ActionPowerCycle              ActionType = "power_cycle"
	ActionPowerOff                ActionType = "power_off"
	ActionPowerOn                 ActionType = "power_on"
	ActionPasswordReset           ActionType = "password_reset"
	ActionShutdown                ActionType = "shutdown"
	ActionRestore                 ActionType = "restore"
	ActionRebuild                 ActionType = "rebuild"
	ActionSnapshot                ActionType = "snapshot"
	ActionRename                  ActionType = "rename"
	ActionResize                  ActionType = "resize"
	ActionEnableIPv6              ActionType = "enable_ipv6"
	ActionDisableBackups          ActionType = "disable_backups"
	ActionEnablePrivateNetworking ActionType = "enable_private_networking"
	ActionTransfer                ActionType = "transfer"
)

var actionTypes = []ActionType{
	ActionReboot,
	ActionPowerCycle,
	ActionPowerOff,
	ActionPowerOn,
	ActionPasswordReset,
	ActionShutdown,
	ActionRestore,
	ActionRebuild,
	ActionSnapshot,
	ActionRename,
	ActionResize,
	ActionEnableIPv6,
	ActionDisableBackups,
	ActionEnablePrivateNetworking,
	ActionTransfer,
}

// AllActionTypes returns every supported action type.
func AllActionTypes() []ActionType {
	return append([]ActionType(nil), actionTypes...)
}

// ParseActionType converts a user-supplied name such as "power-cycle" or
// "POWER_CYCLE" into an ActionType.
func ParseActionType(name string) (ActionType, error) {
	candidate := ActionType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_"))
	if !candidate.IsValid() {
		return "", newValidationError("action", name, ErrUnsupportedAction)
	}

	return candidate, nil
}

// IsValid reports whether t is a supported action type.
func (t ActionType) IsValid() bool {
	return lo.Contains(actionTypes, t)
}

// AppliesToDroplets reports whether t can be sent to a droplet.
func (t ActionType) AppliesToDroplets() bool {
	return t.IsValid() && t != ActionTransfer
}

// AppliesToImages reports whether t can be sent to an image.
func (t ActionType) AppliesToImages() bool {
	return t == ActionTransfer
}

func (t ActionType) String() string {
	return string(t)
}

// ActionRequest describes an action and its companion arguments.
type ActionRequest struct {
	Type ActionType

	// Image is required by restore and rebuild.
	Image ImageRef
	// Name is required by rename and snapshot.
	Name string
	// Size is required by resize.
	Size string
	// Region is required by transfer.
	Region string
}

// Validate checks the request's companion arguments.
func (r *ActionRequest) Validate() error {
	if !r.Type.IsValid() {
		return newValidationError("action", string(r.Type), ErrUnsupportedAction)
	}

	switch r.Type {
	case ActionRestore, ActionRebuild:
		if image, ok := r.Image.(*Image); r.Image == nil || (ok && image == nil) {
			return newValidationError("image", "", ErrImageRequired)
		}
	case ActionRename, ActionSnapshot:
		if err := ValidateName(r.Name); err != nil {
			return err
		}
	case ActionResize:
		if strings.TrimSpace(r.Size) == "" {
			return newValidationError("size", "", ErrSizeRequired)
		}
	case ActionTransfer:
		if strings.TrimSpace(r.Region) == "" {
			return newValidationError("region", "", ErrRegionRequired)
		}
	}

	return nil
}

// Payload builds the request body. Validate must have succeeded.
func (r *ActionRequest) Payload() map[string]interface{} {
	payload := map[string]interface{}{"type": string(r.Type)}

	switch r.Type {
	case ActionRestore, ActionRebuild:
		payload["image"] = r.Image.ImageID()
	case ActionRename, ActionSnapshot:
		payload["name"] = r.Name
	case ActionResize:
		payload["size"] = strings.ToLower(r.Size)
	case ActionTransfer:
		payload["region"] = strings.ToLower(r.Region)
	}

	return payload
}
