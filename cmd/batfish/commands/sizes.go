package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/batfish/pkg/batfish"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// NewSizesCommand creates the sizes command group.
func NewSizesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sizes",
		Aliases: []string{"size", "s"},
		Short:   "Show droplet sizes",
		Long:    "List droplet sizes with their resources and prices",
	}

	cmd.AddCommand(newSizesListCommand())
	cmd.AddCommand(newSizesGetCommand())

	return cmd
}

func newSizesListCommand() *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sizes",
		Long:  "List size slugs. With --detailed the sizes are fetched from the API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !detailed {
				slugs := batfish.SizeSlugs()

				return render(cmd, slugs, func(w io.Writer) error {
					_, err := fmt.Fprintln(w, strings.Join(slugs, " "))

					return err
				})
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			sizes, err := s.client.Sizes().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list sizes: %w", err)
			}

			return render(cmd, sizes, func(w io.Writer) error {
				return renderSizeTable(w, sizes)
			})
		},
	}

	cmd.Flags().BoolVarP(&detailed, "detailed", "d", false, "fetch resources and prices from the API")

	return cmd
}

func renderSizeTable(w io.Writer, sizes []batfish.Size) error {
	if len(sizes) == 0 {
		_, _ = io.WriteString(w, "No sizes found\n")

		return nil
	}

	rows := lo.Map(sizes, func(size batfish.Size, _ int) []string {
		return []string{
			size.Slug,
			humanMemory(size.Memory),
			strconv.Itoa(size.VCPUs),
			size.DiskSize(),
			size.TransferAllowance(),
			formatPrice(size.PriceHourly),
			formatPrice(size.PriceMonthly),
		}
	})

	return renderTable(w, []string{"Slug", "Memory", "VCPUs", "Disk", "Transfer", "Hourly", "Monthly"}, rows)
}

func newSizesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SIZE_SLUG",
		Short: "Get size details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			size, err := resolveSize(cmd.Context(), s.client, args[0])
			if err != nil {
				return err
			}

			return render(cmd, size, func(w io.Writer) error {
				return renderProperties(w, []property{
					{"Slug", size.Slug},
					{"Memory", humanMemory(size.Memory)},
					{"VCPUs", strconv.Itoa(size.VCPUs)},
					{"Disk", size.DiskSize()},
					{"Transfer", size.TransferAllowance()},
					{"Hourly", formatPrice(size.PriceHourly)},
					{"Monthly", formatPrice(size.PriceMonthly)},
					{"Regions", joinOrNone(size.RegionNames())},
				})
			})
		},
	}
}
