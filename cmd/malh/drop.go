package main

import (
	"fmt"
	"os"

	"github.com/multiattr/malh/relation"
	"github.com/spf13/cobra"
)

func newDropCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drop NAME",
		Short: "delete a relation's info, data and overflow files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if memoryFlag {
				return nil
			}
			return withLock(name, true, func() error {
				if !relation.Exists(name) {
					return fmt.Errorf("%q: %w", name, relation.ErrRelationMissing)
				}
				for _, suffix := range []string{".info", ".data", ".ovflow"} {
					if err := os.Remove(name + suffix); err != nil && !os.IsNotExist(err) {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "dropped %q\n", name)
				return nil
			})
		},
	}
	return cmd
}
