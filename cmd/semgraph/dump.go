package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vlang-tools/semgraph"
	"github.com/vlang-tools/semgraph/internal/report"
	"github.com/vlang-tools/semgraph/internal/snapshot"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <db-path> <file>...",
	Short: "Parse files and write a one-way debug snapshot to SQLite",
	Long:  "Parses the given files and exports the resulting symbol/scope graph to a SQLite file at <db-path>, for offline inspection. The snapshot is never read back by this tool; the live graph exists only for the lifetime of this process.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	dbPath := args[0]
	paths := args[1:]

	sink := report.NewCollectingSink()
	ws := semgraph.NewWorkspaceWithSink(sink)
	for _, p := range paths {
		src, err := os.ReadFile(p)
		if err != nil {
			return outputError("dump", err)
		}
		if _, err := ws.OpenFile(p, 1, src); err != nil {
			return outputError("dump", fmt.Errorf("parsing %s: %w", p, err))
		}
	}

	if err := snapshot.Export(ws.Store(), dbPath); err != nil {
		return outputError("dump", err)
	}

	reports := make([]CLIReport, len(sink.Reports))
	for i, r := range sink.Reports {
		reports[i] = CLIReport{
			Kind:    r.Kind.String(),
			Message: r.Message,
			File:    r.FilePath,
			Line:    r.Range.StartPoint.Row,
			Col:     r.Range.StartPoint.Column,
		}
	}

	return outputResult(CLIResult{Command: "dump", Results: reports})
}
