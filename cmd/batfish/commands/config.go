package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fivetwenty-io/batfish/internal/constants"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const tokenKey = "token"

// DefaultConfigPath returns $HOME/.batfish.yml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", constants.ErrNoHomeDirectory, err)
	}

	return filepath.Join(home, constants.ConfigFileName+"."+constants.ConfigFileType), nil
}

func configFilePath() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}

	if path := viper.GetString("config"); path != "" {
		return path, nil
	}

	return DefaultConfigPath()
}

func configKeys() []string {
	keys := lo.Values(flagKeys)
	sort.Strings(keys)

	return keys
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show the effective configuration and write settings to the config file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration from flags, environment and config file. The token is masked.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := make(map[string]string)

			for _, key := range configKeys() {
				value := viper.GetString(key)
				if key == tokenKey {
					value = maskToken(value)
				}

				settings[key] = value
			}

			return render(cmd, settings, func(w io.Writer) error {
				properties := lo.Map(configKeys(), func(key string, _ int) property {
					return property{name: key, value: settings[key]}
				})

				if path, err := configFilePath(); err == nil {
					properties = append(properties, property{name: "config file", value: path})
				}

				return renderProperties(w, properties)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: `Write a setting to the config file.

Valid keys: ` + strings.Join(lo.Without(configKeys(), tokenKey), ", ") + `.
The token can only be stored with 'batfish authorize'.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ReplaceAll(strings.ToLower(args[0]), "-", "_")

			if key == tokenKey {
				return constants.ErrTokenNotSettable
			}

			if !lo.Contains(configKeys(), key) {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, args[0])
			}

			path, err := configFilePath()
			if err != nil {
				return err
			}

			err = writeConfigValue(path, key, args[1])
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", key, path)

			return nil
		},
	}
}

func writeConfigValue(path, key, value string) error {
	settings := make(map[string]interface{})

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("failed to read config file: %w", err)
	default:
		err = yaml.Unmarshal(data, &settings)
		if err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	settings[key] = value

	data, err = yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	err = os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
