package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/vlang-tools/semgraph"
)

// openWorkspace parses every path in paths into a fresh Workspace, in
// order, and returns it — there is no persisted index to reopen, so every
// subcommand starts from an empty graph (§6 "Persisted state: None").
func openWorkspace(paths []string) (*semgraph.Workspace, error) {
	ws := semgraph.NewWorkspace()
	for _, p := range paths {
		src, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		if _, err := ws.OpenFile(p, 1, src); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", p, err)
		}
	}
	return ws, nil
}

// symbolToCLI converts a semgraph.Symbol into its JSON-friendly shape,
// resolving its file id back to a path through ws.
func symbolToCLI(ws *semgraph.Workspace, sym semgraph.Symbol) CLISymbol {
	return CLISymbol{
		ID:         sym.ID,
		Name:       sym.Name,
		Kind:       sym.Kind.String(),
		Visibility: visibilityName(sym.Access),
		File:       ws.Store().FilePath(sym.FileID),
		StartLine:  sym.Range.StartPoint.Row,
		StartCol:   sym.Range.StartPoint.Column,
		EndLine:    sym.Range.EndPoint.Row,
		EndCol:     sym.Range.EndPoint.Column,
		Parent:     sym.Parent,
		ReturnSym:  sym.ReturnSym,
	}
}

func visibilityName(a semgraph.AccessKind) string {
	switch a {
	case semgraph.AccessPublic, semgraph.AccessPublicMutable, semgraph.AccessGlobal:
		return "public"
	default:
		return "private"
	}
}

// locationToCLI converts a resolved Symbol into the CLILocation shape
// "definition" reports, mirroring the teacher's locationToCLI helper.
func locationToCLI(ws *semgraph.Workspace, sym semgraph.Symbol) CLILocation {
	return CLILocation{
		File:      ws.Store().FilePath(sym.FileID),
		StartLine: sym.Range.StartPoint.Row,
		StartCol:  sym.Range.StartPoint.Column,
		EndLine:   sym.Range.EndPoint.Row,
		EndCol:    sym.Range.EndPoint.Column,
		SymbolID:  sym.ID,
	}
}

func formatLocationsText(w io.Writer, locs []CLILocation) {
	for _, loc := range locs {
		fmt.Fprintf(w, "%s:%d:%d\n", loc.File, loc.StartLine, loc.StartCol)
	}
}

func formatSymbolsText(w io.Writer, syms []CLISymbol) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tKIND\tVISIBILITY\tFILE\tLINE")
	for _, s := range syms {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\n",
			s.ID, s.Name, s.Kind, s.Visibility, s.File, s.StartLine)
	}
	tw.Flush()
}

// outputResult writes result in the selected format (json|text).
func outputResult(result CLIResult) error {
	if flagFormat == "text" {
		w := io.Writer(os.Stdout)
		switch v := result.Results.(type) {
		case []CLILocation:
			formatLocationsText(w, v)
		case []CLISymbol:
			formatSymbolsText(w, v)
		case CLISymbol:
			formatSymbolsText(w, []CLISymbol{v})
		case nil:
			// No output for nil results (e.g. symbol-at with no match).
		default:
			fmt.Fprintf(w, "%v\n", v)
		}
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError writes an error in the selected format and returns it so
// RunE can propagate it to Cobra. In JSON mode the error is written to
// stdout as a CLIResult envelope; in text mode it goes to stderr.
func outputError(command string, err error) error {
	errorHandled = true
	if flagFormat == "text" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(CLIResult{Command: command, Error: err.Error()})
	return err
}

var validFormats = []string{"json", "text"}

func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be json or text", format)
}
