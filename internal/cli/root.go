// Package cli implements the archpilot command line.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "archpilot",
	Short: "Natural-language annotation copilot for building design documents",
	Long: "archpilot turns plain-language requests such as \"dimension all rooms on Level 1\"\n" +
		"into checked, confirmed operations on the open design document.\n\n" +
		"Run without a subcommand to start an interactive session.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSession,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to firm_defaults.yaml (default $ARCHPILOT_CONFIG or ~/.config/archpilot/firm_defaults.yaml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
