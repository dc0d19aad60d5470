package semgraph

import (
	"github.com/vlang-tools/semgraph/internal/ast"
	"github.com/vlang-tools/semgraph/internal/graph"
	"github.com/vlang-tools/semgraph/internal/infer"
)

// SymbolAt resolves the innermost local symbol or, failing that, the
// innermost module-index declaration of filePath whose range contains the
// byte offset.
// Grounded on query.go's QueryBuilder.DefinitionAt in the teacher, whose
// range-overlap predicate this mirrors directly.
//
// A position over a local symbol (pushed into a scope's own Symbols list by
// ScopeManager.RegisterSymbol) resolves through the scope walk below. Most
// declarations the walker registers — every top-level function, struct,
// method, and variable — live only in the module index, never in a scope's
// Symbols list (§4.1's register_symbol always goes through the module path
// for those), so SPEC_FULL PART 3's promised fallback scans the module
// index directly when the scope walk comes up empty.
func (w *Workspace) SymbolAt(filePath string, bytePos int) Symbol {
	fileID, ok := w.store.FileID(filePath)
	if !ok {
		return graph.VoidSym
	}
	if scopeID, ok := w.store.Scopes.Innermost(fileID, bytePos, bytePos); ok {
		for w.store.Scopes.IsValidID(scopeID) {
			scope := w.store.Scopes.GetInfo(scopeID)
			var best Symbol
			for _, symID := range scope.Symbols {
				sym := w.store.Symbols.GetInfo(symID)
				if sym.Range.Contains(bytePos) {
					if best.IsVoid() || sym.Range.StartByte >= best.Range.StartByte {
						best = sym
					}
				}
			}
			if !best.IsVoid() {
				return best
			}
			scopeID = scope.ParentID
		}
	}
	return w.moduleSymbolAt(filePath, bytePos)
}

// moduleSymbolAt scans filePath's module-index symbols (the ones
// walkTopLevel actually registers) for the innermost declaration whose
// range contains bytePos.
func (w *Workspace) moduleSymbolAt(filePath string, bytePos int) Symbol {
	ids := w.store.GetSymbolsByFilePath(filePath)
	var best Symbol
	for _, id := range ids {
		sym := w.store.Symbols.GetInfo(id)
		if sym.Range.Contains(bytePos) {
			if best.IsVoid() || sym.Range.StartByte >= best.Range.StartByte {
				best = sym
			}
		}
	}
	if best.IsVoid() {
		return graph.VoidSym
	}
	return best
}

// InferType infers the declared type of an AST node in filePath, through
// internal/infer — the Query surface's infer_symbol_from_node entry point.
func (w *Workspace) InferType(filePath string, node ast.Node) Symbol {
	src, ok := w.sources[filePath]
	if !ok {
		return graph.VoidSym
	}
	return infer.InferSymbolFromNode(w.store, filePath, node, src)
}

// InferValueType infers the value type of an AST node in filePath, through
// internal/infer — the Query surface's infer_value_type_from_node entry point.
func (w *Workspace) InferValueType(filePath string, node ast.Node) Symbol {
	src, ok := w.sources[filePath]
	if !ok {
		return graph.VoidSym
	}
	return infer.InferValueTypeFromNode(w.store, filePath, node, src)
}

// byteOffset converts a zero-based (line, column) position to a byte offset
// into filePath's cached source, for callers (SymbolAtPosition, the CLI)
// that think in line/column rather than bytes.
func byteOffset(src ast.Source, pos Position) int {
	line, col := 0, 0
	for i, b := range src {
		if line == pos.Line && col == pos.Col {
			return i
		}
		if b == '\n' {
			line++
			col = 0
			continue
		}
		col++
	}
	if line == pos.Line && col == pos.Col {
		return len(src)
	}
	return len(src)
}

// FileSymbols returns every symbol (top-level and nested) registered under
// filePath, for callers (the CLI's parse/dump commands) that want to list
// what a single Open pass found.
func (w *Workspace) FileSymbols(filePath string) []Symbol {
	ids := w.store.GetSymbolsByFilePath(filePath)
	return w.store.Symbols.GetInfos(ids)
}

// SymbolAtPosition is SymbolAt addressed by line/column instead of a raw
// byte offset — the shape a CLI or editor protocol actually carries.
func (w *Workspace) SymbolAtPosition(filePath string, pos Position) Symbol {
	src, ok := w.sources[filePath]
	if !ok {
		return graph.VoidSym
	}
	return w.SymbolAt(filePath, byteOffset(src, pos))
}
