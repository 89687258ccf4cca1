package commands

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fivetwenty-io/batfish/internal/constants"
	"github.com/fivetwenty-io/batfish/pkg/batfish"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// NewActionsCommand creates the actions command group.
func NewActionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "actions",
		Aliases: []string{"action"},
		Short:   "Show actions",
		Long:    "List actions across the account and inspect a single action",
	}

	cmd.AddCommand(newActionsListCommand())
	cmd.AddCommand(newActionsGetCommand())
	cmd.AddCommand(newActionsWaitCommand())

	return cmd
}

func newActionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			actions, err := s.client.Actions().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list actions: %w", err)
			}

			return render(cmd, actions, func(w io.Writer) error {
				return renderActionTable(w, actions)
			})
		},
	}
}

func newActionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ACTION_ID",
		Short: "Get action details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			action, err := s.client.Actions().Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get action: %w", err)
			}

			if action == nil {
				return fmt.Errorf("action %d: %w", id, constants.ErrActionNotFound)
			}

			return render(cmd, action, func(w io.Writer) error {
				return renderActionDetails(w, action)
			})
		},
	}
}

func newActionsWaitCommand() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "wait ACTION_ID",
		Short: "Wait for an action to finish",
		Long:  "Poll an action until it completes or errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			action, err := waitForAction(cmd, s, id, interval)
			if err != nil {
				return err
			}

			return render(cmd, action, func(w io.Writer) error {
				return renderActionDetails(w, action)
			})
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", constants.DefaultPollInterval, "polling interval")

	return cmd
}

func waitForAction(cmd *cobra.Command, s *session, id int, interval time.Duration) (*batfish.Action, error) {
	action, err := s.client.Actions().Wait(cmd.Context(), id, interval)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for action %d: %w", id, err)
	}

	if action == nil {
		return nil, fmt.Errorf("action %d: %w", id, constants.ErrActionNotFound)
	}

	return action, nil
}

func completedAt(action *batfish.Action) string {
	if action.CompletedAt == nil || action.CompletedAt.IsZero() {
		return constants.NotAvailable
	}

	return action.CompletedAt.String()
}

func renderActionTable(w io.Writer, actions []batfish.Action) error {
	if len(actions) == 0 {
		_, _ = io.WriteString(w, "No actions found\n")

		return nil
	}

	rows := lo.Map(actions, func(action batfish.Action, _ int) []string {
		return []string{
			strconv.Itoa(action.ID),
			action.Type,
			string(action.Status),
			fmt.Sprintf("%s %d", action.ResourceType, action.ResourceID),
			action.RegionName(),
			action.StartedAt.String(),
			completedAt(&action),
		}
	})

	return renderTable(w, []string{"ID", "Type", "Status", "Resource", "Region", "Started", "Completed"}, rows)
}

func renderActionDetails(w io.Writer, action *batfish.Action) error {
	if action == nil {
		_, _ = io.WriteString(w, "Action accepted.\n")

		return nil
	}

	return renderProperties(w, []property{
		{"ID", strconv.Itoa(action.ID)},
		{"Type", action.Type},
		{"Status", string(action.Status)},
		{"Resource", fmt.Sprintf("%s %d", action.ResourceType, action.ResourceID)},
		{"Region", action.RegionName()},
		{"Started", action.StartedAt.String()},
		{"Completed", completedAt(action)},
	})
}
