package semgraph

import "github.com/vlang-tools/semgraph/internal/graph"

// Public aliases onto internal/graph's types, following the teacher's
// canopy.go/types.go pattern of exposing internal representations without
// copying them: canopy aliased store.Symbol, store.Scope, and friends the
// same way at its package root.
type (
	Symbol     = graph.Symbol
	SymbolKind = graph.SymbolKind
	AccessKind = graph.AccessKind
	Language   = graph.Language
	ScopeTree  = graph.ScopeTree
)

const (
	KindVoid          = graph.KindVoid
	KindPlaceholder   = graph.KindPlaceholder
	KindRef           = graph.KindRef
	KindArray         = graph.KindArray
	KindMap           = graph.KindMap
	KindMultiReturn   = graph.KindMultiReturn
	KindOptional      = graph.KindOptional
	KindResult        = graph.KindResult
	KindChan          = graph.KindChan
	KindVariadic      = graph.KindVariadic
	KindFunction      = graph.KindFunction
	KindStruct        = graph.KindStruct
	KindEnum          = graph.KindEnum
	KindTypedef       = graph.KindTypedef
	KindInterface     = graph.KindInterface
	KindField         = graph.KindField
	KindEmbeddedField = graph.KindEmbeddedField
	KindVariable      = graph.KindVariable
	KindSumType       = graph.KindSumType
	KindFunctionType  = graph.KindFunctionType
	KindNever         = graph.KindNever
)

const (
	AccessPrivate        = graph.AccessPrivate
	AccessPrivateMutable = graph.AccessPrivateMutable
	AccessPublic         = graph.AccessPublic
	AccessPublicMutable  = graph.AccessPublicMutable
	AccessGlobal         = graph.AccessGlobal
)

// VoidSymID is the sentinel id meaning "no symbol".
const VoidSymID = graph.VoidSymID

// Position is a zero-based (line, column) source position, the shape
// callers use to query SymbolAtPosition — grounded on the teacher's
// query.go Location type (StartLine/StartCol), trimmed to what
// symbol-at-position needs and kept zero-based to match tree-sitter's
// own Point convention rather than the CLI's display convention.
type Position struct {
	Line int
	Col  int
}
