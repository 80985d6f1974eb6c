package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"hkds/report"
	"hkds/selftest"
)

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Run the KAT vectors and testable properties",
	Run: func(cmd *cobra.Command, args []string) {
		results := selftest.Run()
		if !report.PrintSelftestResults(results) {
			os.Exit(1)
		}
	},
}
