// Command malh is a CLI over the multi-attribute linear-hashed file engine:
// create relations, bulk-load tuples, run partial-match queries, and report
// bucket statistics.
package main

import (
	"os"

	"github.com/multiattr/malh/internal/diagnostics"
	"github.com/spf13/cobra"
)

var memoryFlag bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "malh",
		Short:         "multi-attribute linear-hashed file engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&memoryFlag, "memory", false, "use an in-memory relation instead of files on disk")
	root.AddCommand(
		newCreateCmd(),
		newInsertCmd(),
		newSelectCmd(),
		newProjectCmd(),
		newStatsCmd(),
		newDropCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(diagnostics.Fail(os.Stderr, err))
	}
}
