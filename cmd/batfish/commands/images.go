package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fivetwenty-io/batfish/internal/events"
	"github.com/fivetwenty-io/batfish/pkg/batfish"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const resourceImage = "image"

// NewImagesCommand creates the images command group.
func NewImagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "images",
		Aliases: []string{"image", "i"},
		Short:   "Manage images",
		Long:    "List, inspect, rename, transfer and delete images",
	}

	cmd.AddCommand(newImagesListCommand())
	cmd.AddCommand(newImagesGetCommand())
	cmd.AddCommand(newImagesDeleteCommand())
	cmd.AddCommand(newImagesRenameCommand())
	cmd.AddCommand(newImagesTransferCommand())
	cmd.AddCommand(newImagesActionsCommand())

	return cmd
}

func newImagesListCommand() *cobra.Command {
	var (
		publicOnly  bool
		privateOnly bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List images",
		Long:  "List public images and the account's private images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			images, err := s.client.Images().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list images: %w", err)
			}

			if publicOnly || privateOnly {
				images = lo.Filter(images, func(image batfish.Image, _ int) bool {
					return image.Public == publicOnly
				})
			}

			return render(cmd, images, func(w io.Writer) error {
				return renderImageTable(w, images)
			})
		},
	}

	cmd.Flags().BoolVar(&publicOnly, "public", false, "only list public images")
	cmd.Flags().BoolVar(&privateOnly, "private", false, "only list private images")
	cmd.MarkFlagsMutuallyExclusive("public", "private")

	return cmd
}

func renderImageTable(w io.Writer, images []batfish.Image) error {
	if len(images) == 0 {
		_, _ = io.WriteString(w, "No images found\n")

		return nil
	}

	rows := lo.Map(images, func(image batfish.Image, _ int) []string {
		return []string{
			strconv.Itoa(image.ID),
			image.Name,
			image.Distribution,
			orNone(image.Slug),
			formatBool(image.Public),
			joinOrNone(image.RegionSlugs),
		}
	})

	return renderTable(w, []string{"ID", "Name", "Distribution", "Slug", "Public", "Regions"}, rows)
}

func newImagesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get IMAGE_NAME_ID_OR_SLUG",
		Short: "Get image details",
		Long:  "Display detailed information about an image. Names match by prefix, then slugs exactly.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			image, err := resolveImage(cmd.Context(), s.client, args[0])
			if err != nil {
				return err
			}

			return render(cmd, image, func(w io.Writer) error {
				return renderImageDetails(w, image)
			})
		},
	}
}

func renderImageDetails(w io.Writer, image *batfish.Image) error {
	return renderProperties(w, []property{
		{"ID", strconv.Itoa(image.ID)},
		{"Name", image.Name},
		{"Distribution", image.Distribution},
		{"Slug", orNone(image.Slug)},
		{"Public", formatBool(image.Public)},
		{"Regions", joinOrNone(image.RegionNames())},
		{"Created", image.CreatedAt.String()},
	})
}

func newImagesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete IMAGE_NAME_OR_ID",
		Short: "Delete an image",
		Long:  "Delete a private image. Asks for confirmation unless --force is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			image, err := resolveImage(cmd.Context(), s.client, args[0])
			if err != nil {
				return err
			}

			if err := confirm(cmd, force); err != nil {
				return cancelled(cmd, err)
			}

			err = s.client.Images().Delete(cmd.Context(), image)
			if err != nil {
				return fmt.Errorf("failed to delete image: %w", err)
			}

			event := events.NewEvent("delete", resourceImage, image.ID)
			event.Name = image.Name
			s.publish(cmd.Context(), event)

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Image %s deleted.\n", image.Name)

			return nil
		},
	}

	addForceFlag(cmd, &force)

	return cmd
}

func newImagesRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename IMAGE_NAME_OR_ID NEW_NAME",
		Short: "Rename an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := batfish.ValidateName(args[1])
			if err != nil {
				return err
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			image, err := resolveImage(cmd.Context(), s.client, args[0])
			if err != nil {
				return err
			}

			renamed, err := s.client.Images().Rename(cmd.Context(), image, args[1])
			if err != nil {
				return fmt.Errorf("failed to rename image: %w", err)
			}

			if renamed == nil {
				return fmt.Errorf("failed to rename image: %w", batfish.ErrMalformedResponse)
			}

			event := events.NewEvent("rename", resourceImage, renamed.ID)
			event.Name = renamed.Name
			s.publish(cmd.Context(), event)

			return render(cmd, renamed, func(w io.Writer) error {
				return renderImageDetails(w, renamed)
			})
		},
	}
}

func newImagesTransferCommand() *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "transfer IMAGE_NAME_OR_ID REGION",
		Short: "Transfer an image to another region",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			image, err := resolveImage(ctx, s.client, args[0])
			if err != nil {
				return err
			}

			region, err := resolveRegion(ctx, s.client, args[1])
			if err != nil {
				return err
			}

			action, err := s.client.Images().Transfer(ctx, image, region.Slug)
			if err != nil {
				return fmt.Errorf("failed to transfer image: %w", err)
			}

			s.publishAction(ctx, resourceImage, image.ID, action)

			if wait && action != nil {
				action, err = waitForAction(cmd, s, action.ID, 0)
				if err != nil {
					return err
				}
			}

			return render(cmd, action, func(w io.Writer) error {
				return renderActionDetails(w, action)
			})
		},
	}

	addWaitFlag(cmd, &wait)

	return cmd
}

func newImagesActionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "actions IMAGE_NAME_OR_ID",
		Short: "List image actions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			image, err := resolveImage(cmd.Context(), s.client, args[0])
			if err != nil {
				return err
			}

			actions, err := image.Actions(cmd.Context(), s.client)
			if err != nil {
				return fmt.Errorf("failed to list image actions: %w", err)
			}

			return render(cmd, actions, func(w io.Writer) error {
				return renderActionTable(w, actions)
			})
		},
	}
}
