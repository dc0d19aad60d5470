package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vlang-tools/semgraph"
)

var symbolAtCmd = &cobra.Command{
	Use:   "symbol-at <file> <line> <col> [other-file]...",
	Short: "Resolve the symbol at a zero-based line/column",
	Long:  "Parses <file> (and any additional files given, for cross-file resolution) and reports the innermost symbol enclosing the given zero-based line and column in <file>.",
	Args:  cobra.MinimumNArgs(3),
	RunE:  runSymbolAt,
}

func runSymbolAt(cmd *cobra.Command, args []string) error {
	target := args[0]
	line, err := strconv.Atoi(args[1])
	if err != nil {
		return outputError("symbol-at", err)
	}
	col, err := strconv.Atoi(args[2])
	if err != nil {
		return outputError("symbol-at", err)
	}

	paths := append([]string{target}, args[3:]...)
	ws, err := openWorkspace(paths)
	if err != nil {
		return outputError("symbol-at", err)
	}

	sym := ws.SymbolAtPosition(target, semgraph.Position{Line: line, Col: col})
	if sym.IsVoid() {
		return outputResult(CLIResult{Command: "symbol-at", Results: nil})
	}
	return outputResult(CLIResult{Command: "symbol-at", Results: symbolToCLI(ws, sym)})
}
