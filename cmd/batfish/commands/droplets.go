package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/batfish/internal/constants"
	"github.com/fivetwenty-io/batfish/internal/events"
	"github.com/fivetwenty-io/batfish/pkg/batfish"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const resourceDroplet = "droplet"

// NewDropletsCommand creates the droplets command group.
func NewDropletsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "droplets",
		Aliases: []string{"droplet", "d"},
		Short:   "Manage droplets",
		Long:    "List, inspect, create and delete droplets and run droplet actions",
	}

	cmd.AddCommand(newDropletsListCommand())
	cmd.AddCommand(newDropletsGetCommand())
	cmd.AddCommand(newDropletsCreateCommand())
	cmd.AddCommand(newDropletsDeleteCommand())
	cmd.AddCommand(newDropletsActionsCommand())

	for _, verb := range dropletActionVerbs {
		cmd.AddCommand(newDropletActionCommand(verb))
	}

	return cmd
}

func newDropletsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List droplets",
		Long:  "List all droplets in the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			droplets, err := s.client.Droplets().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list droplets: %w", err)
			}

			return render(cmd, droplets, func(w io.Writer) error {
				return renderDropletTable(w, droplets)
			})
		},
	}
}

func renderDropletTable(w io.Writer, droplets []batfish.Droplet) error {
	if len(droplets) == 0 {
		_, _ = io.WriteString(w, "No droplets found\n")

		return nil
	}

	rows := lo.Map(droplets, func(d batfish.Droplet, _ int) []string {
		return []string{
			strconv.Itoa(d.ID),
			d.Name,
			string(d.Status),
			d.RegionName(),
			d.Size().Name,
			humanMemory(d.Memory),
			humanDisk(d.Disk),
			orNone(d.PublicIPv4()),
		}
	})

	return renderTable(w, []string{"ID", "Name", "Status", "Region", "Size", "Memory", "Disk", "IPv4"}, rows)
}

func newDropletsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DROPLET_NAME_OR_ID",
		Short: "Get droplet details",
		Long:  "Display detailed information about a droplet. Names match by prefix.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			droplet, err := resolveDroplet(cmd.Context(), s.client, args[0])
			if err != nil {
				return err
			}

			return render(cmd, droplet, func(w io.Writer) error {
				return renderDropletDetails(w, droplet)
			})
		},
	}
}

func renderDropletDetails(w io.Writer, d *batfish.Droplet) error {
	size := d.Size()

	kernel := constants.None
	if d.Kernel != nil {
		kernel = d.Kernel.Name
	}

	ipv6 := lo.Map(d.Networks.V6, func(n batfish.Network, _ int) string { return n.IPAddress })

	return renderProperties(w, []property{
		{"ID", strconv.Itoa(d.ID)},
		{"Name", d.Name},
		{"Status", string(d.Status)},
		{"Region", d.RegionName()},
		{"Image ID", strconv.Itoa(d.ImageInfo.ID)},
		{"Size", fmt.Sprintf("%s (%s/month)", size.Name, formatPrice(size.Monthly))},
		{"Memory", humanMemory(d.Memory)},
		{"VCPUs", strconv.Itoa(d.VCPUs)},
		{"Disk", d.DiskSize()},
		{"IPv4", orNone(d.PublicIPv4())},
		{"IPv6", joinOrNone(ipv6)},
		{"Locked", formatBool(d.Locked)},
		{"Kernel", kernel},
		{"Backups", strconv.Itoa(len(d.BackupIDs))},
		{"Snapshots", strconv.Itoa(len(d.SnapshotIDs))},
		{"Features", joinOrNone(d.Features)},
		{"Created", d.CreatedAt.String()},
	})
}

func newDropletsCreateCommand() *cobra.Command {
	var request batfish.DropletCreateRequest

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a droplet",
		Long:  "Create a droplet from an image slug or id in the given region and size",
		Example: `  batfish droplets create web-1 --region nyc1 --size 512mb --image ubuntu-14-04-x64
  batfish droplets create db-1 -r ams2 -s 2gb -i 3101045 --ipv6 --ssh-key 12,34`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request.Name = args[0]

			err := request.Validate()
			if err != nil {
				return err
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			droplet, err := s.client.Droplets().Create(cmd.Context(), &request)
			if err != nil {
				return fmt.Errorf("failed to create droplet: %w", err)
			}

			if droplet == nil {
				return fmt.Errorf("failed to create droplet: %w", batfish.ErrMalformedResponse)
			}

			event := events.NewEvent("create", resourceDroplet, droplet.ID)
			event.Name = droplet.Name
			s.publish(cmd.Context(), event)

			return render(cmd, droplet, func(w io.Writer) error {
				_, _ = fmt.Fprintf(w, "Droplet %s (%d) is being created.\n", droplet.Name, droplet.ID)

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&request.Region, "region", "r", "", "region slug (required)")
	cmd.Flags().StringVarP(&request.Size, "size", "s", "", "size slug (required)")
	cmd.Flags().StringVarP(&request.Image, "image", "i", "", "image slug or id (required)")
	cmd.Flags().IntSliceVar(&request.SSHKeys, "ssh-key", nil, "SSH key ids to install")
	cmd.Flags().BoolVar(&request.Backups, "backups", false, "enable backups")
	cmd.Flags().BoolVar(&request.IPv6, "ipv6", false, "enable IPv6")
	cmd.Flags().BoolVar(&request.PrivateNetworking, "private-networking", false, "enable private networking")

	return cmd
}

func newDropletsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete DROPLET_NAME_OR_ID",
		Short: "Delete a droplet",
		Long:  "Destroy a droplet. Asks for confirmation unless --force is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			droplet, err := resolveDroplet(cmd.Context(), s.client, args[0])
			if err != nil {
				return err
			}

			if err := confirm(cmd, force); err != nil {
				return cancelled(cmd, err)
			}

			err = s.client.Droplets().Delete(cmd.Context(), droplet)
			if err != nil {
				return fmt.Errorf("failed to delete droplet: %w", err)
			}

			event := events.NewEvent("delete", resourceDroplet, droplet.ID)
			event.Name = droplet.Name
			s.publish(cmd.Context(), event)

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Droplet %s deleted.\n", droplet.Name)

			return nil
		},
	}

	addForceFlag(cmd, &force)

	return cmd
}

func newDropletsActionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "actions DROPLET_NAME_OR_ID",
		Short: "List droplet actions",
		Long:  "List the actions recorded for a droplet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			droplet, err := resolveDroplet(cmd.Context(), s.client, args[0])
			if err != nil {
				return err
			}

			actions, err := droplet.Actions(cmd.Context(), s.client)
			if err != nil {
				return fmt.Errorf("failed to list droplet actions: %w", err)
			}

			return render(cmd, actions, func(w io.Writer) error {
				return renderActionTable(w, actions)
			})
		},
	}
}

// actionFlags are the per-invocation options of an action verb.
type actionFlags struct {
	force bool
	wait  bool
}

// actionVerb describes one droplet action subcommand.
type actionVerb struct {
	action  batfish.ActionType
	short   string
	arg     string
	confirm bool
}

var dropletActionVerbs = []actionVerb{
	{action: batfish.ActionReboot, short: "Reboot a droplet", confirm: true},
	{action: batfish.ActionPowerCycle, short: "Power cycle a droplet", confirm: true},
	{action: batfish.ActionPowerOff, short: "Power off a droplet", confirm: true},
	{action: batfish.ActionPowerOn, short: "Power on a droplet"},
	{action: batfish.ActionPasswordReset, short: "Reset the root password of a droplet", confirm: true},
	{action: batfish.ActionShutdown, short: "Shut down a droplet", confirm: true},
	{action: batfish.ActionRestore, short: "Restore a droplet from a backup image", arg: "IMAGE", confirm: true},
	{action: batfish.ActionRebuild, short: "Rebuild a droplet from an image", arg: "IMAGE", confirm: true},
	{action: batfish.ActionSnapshot, short: "Take a snapshot of a droplet", arg: "NAME"},
	{action: batfish.ActionRename, short: "Rename a droplet", arg: "NAME"},
	{action: batfish.ActionResize, short: "Resize a droplet", arg: "SIZE"},
	{action: batfish.ActionEnableIPv6, short: "Enable IPv6 on a droplet"},
	{action: batfish.ActionDisableBackups, short: "Disable backups on a droplet", confirm: true},
	{action: batfish.ActionEnablePrivateNetworking, short: "Enable private networking on a droplet"},
}

func verbName(action batfish.ActionType) string {
	return strings.ReplaceAll(string(action), "_", "-")
}

func newDropletActionCommand(verb actionVerb) *cobra.Command {
	var flags actionFlags

	use := verbName(verb.action) + " DROPLET_NAME_OR_ID"
	nargs := 1

	if verb.arg != "" {
		use += " " + verb.arg
		nargs = 2
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: verb.short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDropletAction(cmd, verb, args, flags)
		},
	}

	if verb.confirm {
		cmd.Long = verb.short + ". Asks for confirmation unless --force is given."
		addForceFlag(cmd, &flags.force)
	}

	addWaitFlag(cmd, &flags.wait)

	return cmd
}

func runDropletAction(cmd *cobra.Command, verb actionVerb, args []string, flags actionFlags) error {
	ctx := cmd.Context()

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	droplet, err := resolveDroplet(ctx, s.client, args[0])
	if err != nil {
		return err
	}

	request := &batfish.ActionRequest{Type: verb.action}

	switch verb.arg {
	case "IMAGE":
		image, err := resolveImage(ctx, s.client, args[1])
		if err != nil {
			return err
		}

		request.Image = image
	case "NAME":
		request.Name = args[1]
	case "SIZE":
		request.Size = args[1]
	}

	err = request.Validate()
	if err != nil {
		return err
	}

	if verb.confirm {
		if err := confirm(cmd, flags.force); err != nil {
			return cancelled(cmd, err)
		}
	}

	action, err := s.client.Droplets().Perform(ctx, droplet, request)
	if err != nil {
		return fmt.Errorf("failed to %s droplet: %w", verbName(verb.action), err)
	}

	s.publishAction(ctx, resourceDroplet, droplet.ID, action)

	if flags.wait && action != nil {
		action, err = waitForAction(cmd, s, action.ID, 0)
		if err != nil {
			return err
		}
	}

	return render(cmd, action, func(w io.Writer) error {
		return renderActionDetails(w, action)
	})
}

// cancelled turns a declined confirmation into a clean exit.
func cancelled(cmd *cobra.Command, err error) error {
	if errors.Is(err, constants.ErrOperationCancelled) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")

		return nil
	}

	return err
}
