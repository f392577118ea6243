// Zscreen is a declarative manager for Zabbix screens.
//
// It reconciles screens on a Zabbix server (versions before 5.4) against a
// YAML manifest: each screen is described as a grid of graphs collected
// from the monitored hosts of one or more host groups, and zscreen
// creates, rebuilds or deletes server-side screens until they match.
//
// Usage:
//
//	zscreen [command] [flags]
//
// See 'zscreen --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zscreen/zscreen/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zscreen",
	Short: "Declarative Zabbix screen management",
	Long: `A utility for managing Zabbix screens declaratively.

Screens are described in a YAML manifest as grids of graphs taken from
the monitored hosts of one or more host groups. zscreen compares each
described screen with what the server holds and creates, rebuilds or
deletes screens to match.

The screen API was removed in Zabbix 5.4; zscreen refuses to touch
newer servers.`,
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
		fmt.Printf("zscreen %s (commit: %s)\n", version.Version, version.Commit)
	},
}
