package main

import (
	"fmt"
	"strconv"

	"github.com/multiattr/malh/relation"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats NAME",
		Short: "report global counters, the choice vector, and per-bucket page chains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			return withLock(name, false, func() error {
				r, err := relation.Open(name, memoryFlag)
				if err != nil {
					return err
				}
				defer r.Close()

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Global Info:")
				fmt.Fprintf(out, "#attrs:%d  #pages:%d  #tuples:%d  d:%d  sp:%d\n",
					r.NAttrs(), r.NPages(), r.NTuples(), r.Depth(), r.SplitPointer())
				fmt.Fprintln(out, "Choice vector:", r.ChoiceVector().String())

				report, err := r.BucketReport()
				if err != nil {
					return err
				}
				header := []string{"bucket", "chain (id,tuples,free,ovflow?)"}
				rows := make([][]string, 0, len(report))
				for _, b := range report {
					chain := ""
					for i, p := range b.Chain {
						if i > 0 {
							chain += " -> "
						}
						chain += fmt.Sprintf("(%d,%d,%d,ov=%v)", p.ID, p.NTuples, p.FreeBytes, p.Overflow)
					}
					rows = append(rows, []string{strconv.Itoa(int(b.Bucket)), chain})
				}
				fmt.Fprint(out, printTable(header, rows))

				dataStats, ovflowStats := r.CacheStats()
				fmt.Fprintf(out, "cache: data(hits=%d lookups=%d evictions=%d) ovflow(hits=%d lookups=%d evictions=%d)\n",
					dataStats.Hits, dataStats.Lookups, dataStats.Evictions,
					ovflowStats.Hits, ovflowStats.Lookups, ovflowStats.Evictions)
				return nil
			})
		},
	}
	return cmd
}
