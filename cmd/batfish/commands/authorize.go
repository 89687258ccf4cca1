package commands

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/batfish/internal/constants"
	"github.com/fivetwenty-io/batfish/internal/events"
	"github.com/fivetwenty-io/batfish/pkg/batfish"
	"github.com/spf13/cobra"
)

// NewAuthorizeCommand creates the authorize command.
func NewAuthorizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "authorize [TOKEN]",
		Aliases: []string{"auth", "login"},
		Short:   "Validate and store an API token",
		Long: `Validate an API token against the API and store it in the token file.

Without an argument the token is read from the terminal without echo.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string

			if len(args) == 1 {
				token = args[0]
			} else {
				read, err := readToken(cmd)
				if err != nil {
					return err
				}

				token = read
			}

			token = strings.TrimSpace(token)
			if token == "" {
				return constants.ErrEmptyToken
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := s.client.Authorize(cmd.Context(), token)
			if err != nil {
				return fmt.Errorf("failed to authorize: %w", err)
			}

			if !result.OK() {
				return authorizeError(result)
			}

			s.publish(cmd.Context(), events.NewEvent("authorize", "account", 0))

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.String())

			return nil
		},
	}
}

func authorizeError(result *batfish.AuthorizeResult) error {
	if result.Status == batfish.AuthorizeUnable {
		return constants.ErrAuthorizeFailed
	}

	return fmt.Errorf("%w: server responded with %d - %s", constants.ErrAuthorizeFailed, result.StatusCode, result.Reason)
}
