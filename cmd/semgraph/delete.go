package main

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <dir> <file>...",
	Short: "Parse files, then delete a module directory from the graph",
	Long:  "Parses the given files, runs the recursive directory-deletion GC for <dir>, and prints the symbols that survive under the remaining files.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	dir := args[0]
	paths := args[1:]

	ws, err := openWorkspace(paths)
	if err != nil {
		return outputError("delete", err)
	}

	ws.DeleteDirectory(dir)

	var syms []CLISymbol
	for _, p := range paths {
		for _, sym := range ws.FileSymbols(p) {
			syms = append(syms, symbolToCLI(ws, sym))
		}
	}
	return outputResult(CLIResult{Command: "delete", Results: syms})
}
