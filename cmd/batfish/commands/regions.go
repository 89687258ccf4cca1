package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fivetwenty-io/batfish/pkg/batfish"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// NewRegionsCommand creates the regions command group.
func NewRegionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "regions",
		Aliases: []string{"region", "r"},
		Short:   "Show regions",
		Long:    "List regions and show which sizes they offer",
	}

	cmd.AddCommand(newRegionsListCommand())
	cmd.AddCommand(newRegionsGetCommand())

	return cmd
}

func newRegionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			regions, err := s.client.Regions().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list regions: %w", err)
			}

			return render(cmd, regions, func(w io.Writer) error {
				return renderRegionTable(w, regions)
			})
		},
	}
}

func renderRegionTable(w io.Writer, regions []batfish.Region) error {
	if len(regions) == 0 {
		_, _ = io.WriteString(w, "No regions found\n")

		return nil
	}

	rows := lo.Map(regions, func(region batfish.Region, _ int) []string {
		return []string{region.Slug, region.Name, formatBool(region.Available), strconv.Itoa(len(region.Sizes))}
	})

	return renderTable(w, []string{"Slug", "Name", "Available", "Sizes"}, rows)
}

func newRegionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get REGION_SLUG_OR_NAME",
		Short: "Get region details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			region, err := resolveRegion(cmd.Context(), s.client, args[0])
			if err != nil {
				return err
			}

			return render(cmd, region, func(w io.Writer) error {
				return renderProperties(w, []property{
					{"Slug", region.Slug},
					{"Name", region.Name},
					{"Available", formatBool(region.Available)},
					{"Sizes", joinOrNone(region.Sizes)},
					{"Features", joinOrNone(region.Features)},
				})
			})
		},
	}
}
