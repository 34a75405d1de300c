// Onvifcfg is a batch IP configuration utility for ONVIF cameras.
//
// It re-addresses fleets of IP cameras over the ONVIF device management
// service: given a plan mapping current addresses to new ones, it issues
// an authenticated SetNetworkInterfaces to each camera in turn and reports
// per-camera outcomes. Credentials are prompted at run time and never
// written to disk.
//
// Usage:
//
//	onvifcfg [command] [flags]
//
// See 'onvifcfg --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/onvifcfg/internal/logging"
	"github.com/muurk/onvifcfg/internal/version"
)

func main() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "onvifcfg",
	Short: "ONVIF Camera Network Configuration Utility",
	Long: `A standalone utility for re-addressing ONVIF IP cameras in bulk.

Reads a JSON plan mapping current camera IPs to new ones, authenticates
with WS-Security PasswordDigest, and applies the change to each camera
sequentially via SetNetworkInterfaces. Passwords are prompted at run
time and are never stored in any file.`,
	Version: version.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Silent unless ONVIFCFG_LOG_LEVEL is set; apply reinitializes
		// with a run log file on top of this.
		return logging.InitializeFromEnv()
	},
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
		fmt.Printf("onvifcfg %s (commit: %s)\n", version.Version, version.Commit)
	},
}
