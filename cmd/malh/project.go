package main

import (
	"fmt"

	"github.com/multiattr/malh/project"
	"github.com/multiattr/malh/relation"
	"github.com/multiattr/malh/selection"
	"github.com/spf13/cobra"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project NAME QUERY ATTRS",
		Short: "run a query and project each result down to ATTRS (\"*\" or a 1-based comma list, e.g. \"3,1\")",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, query, attrs := args[0], args[1], args[2]
			return withLock(name, false, func() error {
				r, err := relation.Open(name, memoryFlag)
				if err != nil {
					return err
				}
				defer r.Close()

				proj, err := project.Parse(attrs, r.NAttrs())
				if err != nil {
					return err
				}

				scan, err := selection.NewScan(r, query)
				if err != nil {
					return err
				}
				var rows [][]string
				for scan.Next() {
					out, err := proj.Apply(scan.Tuple())
					if err != nil {
						return err
					}
					rows = append(rows, []string{string(out)})
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
