package main

import (
	"fmt"

	"github.com/multiattr/malh/relation"
	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	var nattrs, npages, depth int
	var cv string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "create a new relation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			return withLock(name, true, func() error {
				r, err := relation.Create(name, nattrs, npages, depth, cv, memoryFlag)
				if err != nil {
					return err
				}
				defer r.Close()
				fmt.Fprintf(cmd.OutOrStdout(), "created %q: nattrs=%d npages=%d depth=%d\n", name, nattrs, npages, depth)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&nattrs, "nattrs", 1, "number of attributes")
	cmd.Flags().IntVar(&npages, "npages", 1, "initial number of data pages (should be 2^depth)")
	cmd.Flags().IntVar(&depth, "depth", 0, "initial addressing depth")
	cmd.Flags().StringVar(&cv, "cv", "", "choice vector descriptor, e.g. \"0:0,1:0,0:1,1:1\"")
	return cmd
}
