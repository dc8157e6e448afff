// File: cmd/atomlog/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// atomlog command: runs the recorder service or a local demonstration.

package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "atomlog",
		Short: "Allocation-free in-memory log recorder",
		Long: "atomlog keeps the most recent log records in a fixed-size, lock-free store " +
			"and drains them to sinks. This CLI runs the recorder service or a local demo.",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newDemoCommand())
	return rootCmd
}
