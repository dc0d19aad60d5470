// Package semgraph provides the semantic analysis core of a language server
// for a statically-typed, module-oriented language with generics, methods
// with receivers, sum types, interfaces, and error-propagating option/result
// types. It maintains a persistent semantic graph of every symbol and lexical
// scope in an open workspace and updates that graph incrementally as files
// are edited, added, or deleted.
//
// # Pipeline
//
// A host (editor, CLI, test) drives a [Workspace] through its lifecycle:
//
//  1. Open: parse a file with tree-sitter (see internal/ast), walk the tree
//     with internal/infer, and register every symbol and scope it finds.
//  2. Edit: re-walk a changed file at a new file_version; stale symbols are
//     either updated in place or superseded according to the update policy.
//  3. Query: ask the graph for the symbol at a position, the type of an
//     expression node, or the enclosing scope of a range.
//  4. Close/Delete: prune a file's or directory's contribution to the graph.
//
// # Usage
//
//	ws := semgraph.NewWorkspace()
//	_, err := ws.OpenFile("pkg/types.go", 1, src)
//	if err != nil { ... }
//	sym := ws.SymbolAtPosition("pkg/types.go", semgraph.Position{Line: 10, Col: 4})
//
// # Scope
//
// The core covered here is the Store + SymbolManager + ScopeManager +
// Resolver quartet together with the type-inference walker. The tree-sitter
// parser, the importer, the dependency graph, and the diagnostic reporter
// are external collaborators whose contracts are concretized under
// internal/ast, internal/importer, internal/depgraph, and internal/report
// respectively, but whose extraction/script-driven behavior is out of scope.
package semgraph
