// Proptrack is an interactive demo of the property tracker overlay.
//
// A tracker follows the mouse across a dotted canvas and shows the length
// and angle of the segment from the last click to the pointer. Tab enters
// edit mode, where values can be typed and accepted with Enter.
//
// Usage:
//
//	proptrack run [flags]
//
// See 'proptrack run --help' for available options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "proptrack",
		Short: "Property tracker overlay demo",
		Long: `An interactive terminal demo of the property tracker.

The tracker follows the pointer while running and turns into an inline
editor after Tab. Settings are read from a TOML or YAML file and from
PROPTRACK_* environment variables.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(newRunCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "proptrack %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
