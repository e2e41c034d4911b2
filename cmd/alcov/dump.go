package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rmalmain/alcov"
	"github.com/rmalmain/alcov/snapshot"
)

type dumpOptions struct {
	metadata bool
	blocks   bool
	edges    bool
}

func newDumpCmd() *cobra.Command {
	opts := &dumpOptions{}

	cmd := &cobra.Command{
		Use:   "dump [input]",
		Short: "Read an alcov file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}

			snap, err := readInput(input)
			if err != nil {
				return err
			}

			return runDump(cmd.OutOrStdout(), snap, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.metadata, "metadata", "m", false, "Show the metadata of the file")
	cmd.Flags().BoolVarP(&opts.blocks, "blocks", "b", false, "Show blocks")
	cmd.Flags().BoolVarP(&opts.edges, "edges", "e", false, "Show edges")

	return cmd
}

// readInput loads a snapshot from a file path or from stdin when input is "-".
func readInput(input string) (*snapshot.Snapshot, error) {
	if input != "-" {
		return alcov.ReadFile(input)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, err
	}

	return alcov.ReadBytes(data)
}

func runDump(w io.Writer, snap *snapshot.Snapshot, opts *dumpOptions) error {
	if opts.metadata {
		if err := writeMetadata(w, snap); err != nil {
			return err
		}
	}
	if opts.blocks {
		writeBlocks(w, snap)
	}
	if opts.edges {
		writeEdges(w, snap)
	}

	return nil
}

func writeMetadata(w io.Writer, snap *snapshot.Snapshot) error {
	fmt.Fprintf(w, "alcov file v%d.%d\n\n", snap.VersionMajor, snap.VersionMinor)
	fmt.Fprintf(w, "Flags: %s\n", snap.Flags())

	if snap.HasInput() {
		fmt.Fprintf(w, "Input path: %s\n", snap.InputPath)
	}

	fingerprint, err := snap.Fingerprint()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Fingerprint: %016x\n", fingerprint)

	fmt.Fprintf(w, "# %d Blocks\n", len(snap.Blocks))
	if snap.HasEdges() {
		fmt.Fprintf(w, "# %d Edges\n", snap.Edges.NbEdges())
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "# %d Modules\n", len(snap.Modules))
	for _, module := range snap.Modules {
		fmt.Fprintf(w, "\tBase address: %d\n", module.BaseAddress)
		if module.Path != "" {
			fmt.Fprintf(w, "\tPath: %s\n", module.Path)
		} else {
			fmt.Fprintf(w, "\t<no path>\n")
		}

		fmt.Fprintf(w, "\t# %d Segments\n", len(module.Segments))
		for _, segment := range module.Segments {
			fmt.Fprintf(w, "\t\t Range %#x -> %#x from module base.\n", segment.Start, segment.End)
		}
		fmt.Fprintln(w)
	}

	return nil
}

func writeBlocks(w io.Writer, snap *snapshot.Snapshot) {
	fmt.Fprintf(w, "# %d Blocks\n", len(snap.Blocks))
	for i, block := range snap.Blocks {
		fmt.Fprintf(w, "\t[%d] module %d segment %d offset %#x size %d taken %d\n",
			i, block.ModuleID, block.SegmentID, block.SegmentOffset, block.Size, block.NbTaken)
	}
	fmt.Fprintln(w)
}

func writeEdges(w io.Writer, snap *snapshot.Snapshot) {
	if !snap.HasEdges() {
		fmt.Fprintln(w, "<no edges>")
		return
	}

	fmt.Fprintf(w, "# %d Edges\n", snap.Edges.NbEdges())
	for src, adjacency := range snap.Edges.Adjacency {
		if len(adjacency) == 0 {
			continue
		}

		dsts := make([]uint64, 0, len(adjacency))
		for dst := range adjacency {
			dsts = append(dsts, dst)
		}
		sort.Slice(dsts, func(i, j int) bool { return dsts[i] < dsts[j] })

		for _, dst := range dsts {
			fmt.Fprintf(w, "\t%d -> %d taken %d\n", src, dst, adjacency[dst])
		}
	}
	fmt.Fprintln(w)
}
