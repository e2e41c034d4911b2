package main

import (
	"github.com/spf13/cobra"

	"github.com/rmalmain/alcov"
	"github.com/rmalmain/alcov/snapshot"
)

func newMergeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "merge input...",
		Short: "Merge snapshots collected from the same target",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshots := make([]*snapshot.Snapshot, 0, len(args))
			for _, input := range args {
				snap, err := readInput(input)
				if err != nil {
					return err
				}
				snapshots = append(snapshots, snap)
			}

			merged, err := snapshot.Merge(snapshots...)
			if err != nil {
				return err
			}

			return alcov.WriteFile(merged, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file for the merged snapshot")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
