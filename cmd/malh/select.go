package main

import (
	"fmt"

	"github.com/multiattr/malh/relation"
	"github.com/multiattr/malh/selection"
	"github.com/spf13/cobra"
)

func newSelectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select NAME QUERY",
		Short: "run a partial-match query (comma-separated terms; ? = unknown, % = substring wildcard)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, query := args[0], args[1]
			return withLock(name, false, func() error {
				r, err := relation.Open(name, memoryFlag)
				if err != nil {
					return err
				}
				defer r.Close()

				scan, err := selection.NewScan(r, query)
				if err != nil {
					return err
				}
				var rows [][]string
				for scan.Next() {
					rows = append(rows, []string{string(scan.Tuple())})
				}
				if scan.Err() != nil {
					return scan.Err()
				}
				fmt.Fprint(cmd.OutOrStdout(), printTable([]string{"tuple"}, rows))
				return nil
			})
		},
	}
	return cmd
}
