// Ema-ctl is a command line utility for EMA8314 temperature I/O modules.
//
// It talks to a module over UDP and exposes every device operation as a
// subcommand: reading temperatures, driving relays, configuring limit
// control, the hardware watchdog, and network settings. The watch command
// opens a live full-screen dashboard.
//
// Usage:
//
//	ema-ctl [command] [flags]
//
// See 'ema-ctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emalab/ema8314/internal/logging"
	"github.com/emalab/ema8314/internal/version"
)

func main() {
	logging.InitializeFromEnv()
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ema-ctl",
	Short: "EMA8314 Temperature Module Utility",
	Long: `A command line utility for EMA8314 4-channel temperature I/O modules.

Reads temperatures, drives relay outputs, and configures limit control,
the hardware watchdog, and the module's network settings over UDP.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ema-ctl %s\n", version.Full())
	},
}
