// Command alcov inspects and combines alcov coverage snapshot files.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "alcov",
		Short:         "Inspect and combine alcov coverage snapshots",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newDumpCmd(), newMergeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
