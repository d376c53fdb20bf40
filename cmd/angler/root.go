package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "angler",
	Short: "Angler - recompile exported routing policy for verification",
	Long: `Angler converts network snapshots exported from a Batfish session into a
verifier-ready network model.

It decodes the exported JSON document, recompiles every routing policy into
a function with explicit control flow over a route environment, and
assembles the per-node declarations and BGP peerings into a single output
document.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "angler.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
