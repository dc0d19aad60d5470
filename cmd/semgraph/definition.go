package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vlang-tools/semgraph"
)

var definitionCmd = &cobra.Command{
	Use:   "definition <file> <line> <col> [other-file]...",
	Short: "Find the declaration of the symbol at a zero-based line/column",
	Long:  "Parses <file> (and any additional files given) and reports the source location of the symbol declaration enclosing the given position, as a bare location rather than the full symbol-at result.",
	Args:  cobra.MinimumNArgs(3),
	RunE:  runDefinition,
}

func runDefinition(cmd *cobra.Command, args []string) error {
	target := args[0]
	line, err := strconv.Atoi(args[1])
	if err != nil {
		return outputError("definition", err)
	}
	col, err := strconv.Atoi(args[2])
	if err != nil {
		return outputError("definition", err)
	}

	paths := append([]string{target}, args[3:]...)
	ws, err := openWorkspace(paths)
	if err != nil {
		return outputError("definition", err)
	}

	sym := ws.SymbolAtPosition(target, semgraph.Position{Line: line, Col: col})
	if sym.IsVoid() {
		return outputResult(CLIResult{Command: "definition", Results: nil})
	}
	return outputResult(CLIResult{Command: "definition", Results: []CLILocation{locationToCLI(ws, sym)}})
}
