package commands

import (
	"errors"

	"github.com/fivetwenty-io/batfish/internal/constants"
	"github.com/fivetwenty-io/batfish/pkg/batfish"
)

var notFoundErrors = []error{
	constants.ErrDropletNotFound,
	constants.ErrImageNotFound,
	constants.ErrRegionNotFound,
	constants.ErrSizeNotFound,
	constants.ErrActionNotFound,
}

// ExitCode maps an error returned by a command to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return constants.ExitOK
	case batfish.IsUnauthorized(err), errors.Is(err, constants.ErrAuthorizeFailed):
		return constants.ExitUnauthorized
	case batfish.IsNotFound(err), isResolutionError(err):
		return constants.ExitNotFound
	default:
		return constants.ExitError
	}
}

func isResolutionError(err error) bool {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// ErrorMessage renders err for the terminal. Each exit class gets its own
// lead-in.
func ErrorMessage(err error) string {
	switch ExitCode(err) {
	case constants.ExitUnauthorized:
		return "Authentication failed: " + err.Error() + "\nRun 'batfish authorize' to store a valid token."
	case constants.ExitNotFound:
		return "Not found: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}
