// Package cmd implements the hkds command-line entry points: a
// self-test suite runner and a scripted provisioning/transaction demo
// (§6 "CLI... out of scope for the core" — the CLI itself is ambient
// operator tooling, not part of the library's public API).
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:     "hkds",
	Short:   "HKDS hierarchical key distribution toolkit",
	Version: version,
	Long: `hkds v` + version + `
Symmetric post-quantum key distribution for constrained terminal fleets.

Subcommands:
  selftest   run the known-answer vectors and testable properties
  demo       walk through provisioning and a transaction end to end`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(selftestCmd)
	rootCmd.AddCommand(demoCmd)
}
