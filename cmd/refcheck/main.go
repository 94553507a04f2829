// Package main provides the refcheck CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// noCache disables the local lookup cache
var noCache bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "refcheck",
	Short: "Citation verification and literature discovery",
	Long: `refcheck verifies manuscript reference lists against Crossref,
PubMed, and Semantic Scholar, and searches the biomedical literature.

References are resolved by identifier (DOI, PMID) with bibliographic
search fallback, compared field by field against the best-matching
authoritative record, and batch-checked for retractions. All commands
output JSON by default for easy integration with other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Bypass the local lookup cache")
	rootCmd.Version = Version
}
