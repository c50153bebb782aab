// Package cli provides the deckgen command-line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "deckgen",
	Short: "Turn text and markdown documents into presentations",
	Long: `deckgen converts a .txt or .md document into a .pptx deck using the same
pipeline as the server: content analysis, structure design, visual design
and file build. Without an AI key every stage uses its offline fallback.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(themesCmd)
}
