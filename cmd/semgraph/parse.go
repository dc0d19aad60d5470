package main

import (
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>...",
	Short: "Parse files and list every symbol registered",
	Long:  "Parses the given Go source files into a fresh in-memory graph and prints every symbol (top-level and nested) that registration found.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(args)
	if err != nil {
		return outputError("parse", err)
	}

	var syms []CLISymbol
	for _, p := range args {
		for _, sym := range ws.FileSymbols(p) {
			syms = append(syms, symbolToCLI(ws, sym))
		}
	}

	return outputResult(CLIResult{Command: "parse", Results: syms})
}
