package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagFormat string

// errorHandled is set by outputError so main() doesn't double-print.
var errorHandled bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "semgraph",
	Short:         "Semantic graph core for a statically-typed module language",
	Long:          "semgraph parses Go source with tree-sitter and walks it into an in-memory symbol/scope graph, with no persisted index: every invocation builds its graph fresh from the files given on the command line.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "output format: json|text")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(symbolAtCmd)
	rootCmd.AddCommand(definitionCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(dumpCmd)
}
