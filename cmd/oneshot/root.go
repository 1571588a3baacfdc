package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/oneshot/pkg/cli"
	"mercator-hq/oneshot/pkg/config"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "oneshot",
	Short: "Oneshot - read-once guard for credential environment variables",
	Long: `Oneshot keeps credentials such as GITHUB_TOKEN or OPENAI_API_KEY out of a
process's environment once they have been read.

The first read of a protected name copies its value into memory and removes it
from the environment, so tools that inspect the process later cannot see it.
Later reads are served from memory.

Environment:
  ONESHOT_TOKENS           comma-separated protected names (default: built-in list)
  ONESHOT_SKIP_UNSET       keep values in the environment (debugging only)
  ONESHOT_CACHE_FILE       pre-staged hand-off file, consumed at startup
  ONESHOT_CACHE_FILE_WAIT  how long to wait for the hand-off file
  ONESHOT_CONFIG           YAML configuration file
  ONESHOT_DEBUG            enable debug diagnostics`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The guard reads its configuration from the environment.
		if cfgFile != "" {
			if err := os.Setenv(config.EnvConfigFile, cfgFile); err != nil {
				return err
			}
		}
		if verbose {
			if err := os.Setenv(config.EnvDebug, "1"); err != nil {
				return err
			}
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (sets "+config.EnvConfigFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug diagnostics (sets "+config.EnvDebug+")")
}
