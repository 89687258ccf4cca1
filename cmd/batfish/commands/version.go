package commands

import (
	"fmt"
	"io"

	"github.com/fivetwenty-io/batfish/internal/constants"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the batfish CLI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			type VersionInfo struct {
				Version   string `json:"version"    yaml:"version"`
				Commit    string `json:"commit"     yaml:"commit"`
				Built     string `json:"built"      yaml:"built"`
				UserAgent string `json:"user_agent" yaml:"user_agent"`
			}

			versionInfo := VersionInfo{
				Version:   info.Version,
				Commit:    info.Commit,
				Built:     info.Date,
				UserAgent: fmt.Sprintf(constants.UserAgentFormat, constants.Version),
			}

			return render(cmd, versionInfo, func(w io.Writer) error {
				return renderProperties(w, []property{
					{"Version", versionInfo.Version},
					{"Commit", versionInfo.Commit},
					{"Built", versionInfo.Built},
					{"User Agent", versionInfo.UserAgent},
				})
			})
		},
	}
}
