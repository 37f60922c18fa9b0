package main

import (
	"bufio"
	"fmt"

	"github.com/multiattr/malh/relation"
	"github.com/spf13/cobra"
)

func newInsertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insert NAME",
		Short: "bulk-load tuples from stdin, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			return withLock(name, true, func() error {
				r, err := relation.Open(name, memoryFlag)
				if err != nil {
					return err
				}
				defer r.Close()

				inserted, skipped := 0, 0
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					line := scanner.Bytes()
					if len(line) == 0 {
						continue
					}
					if _, err := r.Insert(line); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "skipping %q: %s\n", line, err)
						skipped++
						continue
					}
					inserted++
				}
				if err := scanner.Err(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d inserted, %d skipped\n", inserted, skipped)
				return nil
			})
		},
	}
	return cmd
}
