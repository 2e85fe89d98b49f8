package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vega/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "vega",
	Short: "Vega SMT type table toolkit",
	Long:  `Vega drives a hash-consed, garbage-collected table of first-order SMT types from script files.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("jobs", 0, "parallel script-loading workers (0 = GOMAXPROCS)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
