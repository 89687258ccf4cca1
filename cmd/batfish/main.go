package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fivetwenty-io/batfish/cmd/batfish/commands"
	"github.com/fivetwenty-io/batfish/internal/constants"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func initConfig() {
	// A .env in the working directory feeds BATFISH_* variables.
	_ = godotenv.Load()

	cfgFile := viper.GetString("config")
	if cfgFile == "" {
		path, err := commands.DefaultConfigPath()
		if err == nil {
			if _, statErr := os.Stat(path); statErr == nil {
				cfgFile = path
			}
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		viper.SetConfigType(constants.ConfigFileType)
	}

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile == "" {
		return
	}

	err := viper.ReadInConfig()

	switch {
	case err == nil:
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", cfgFile, err)
	}
}

func main() {
	cobra.OnInitialize(initConfig)

	rootCmd := commands.NewRootCommand(commands.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, commands.ErrorMessage(err))
		os.Exit(commands.ExitCode(err))
	}
}
