package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for stabex.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stabex",
		Short: "Extract damage stability results from MOSES output files",
		Long: `stabex parses MOSES hydrostatic analysis output files and extracts the
damage stability results: per-case draft mark readings, GM against
criteria, and heel, trim, and wind heeling area ratios where present.

Each run writes a rendered report next to the input file and records the
extraction in a local history database for later comparison.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewExtractCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
