package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vega/internal/version"
)

const versionTagline = "hash-cons everything"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show vega build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := strings.TrimSpace(version.Version)
		if v == "" {
			v = "dev"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "vega %s — %s\n", v, versionTagline)
		return nil
	},
}
