// Package graph implements the Symbol arena, the Scope arena, the
// identifier resolver, and the Store that coordinates them — the
// "Store + SymbolManager + ScopeManager + Resolver quartet" this module
// exists to provide. Grounded on internal/store's table-per-entity split in
// the teacher repo (mvp-joe-canopy), reworked from SQLite rows to an
// append-only in-memory arena: this graph's ids are insertion indexes, not
// database rows, and nothing here ever touches a disk.
package graph

// SymbolKind tags what semantic entity a Symbol represents.
type SymbolKind int

const (
	KindVoid SymbolKind = iota
	KindPlaceholder
	KindRef
	KindArray
	KindMap
	KindMultiReturn
	KindOptional
	KindResult
	KindChan
	KindVariadic
	KindFunction
	KindStruct
	KindEnum
	KindTypedef
	KindInterface
	KindField
	KindEmbeddedField
	KindVariable
	KindSumType
	KindFunctionType
	KindNever
)

func (k SymbolKind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindPlaceholder:
		return "placeholder"
	case KindRef:
		return "ref"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindMultiReturn:
		return "multi_return"
	case KindOptional:
		return "optional"
	case KindResult:
		return "result"
	case KindChan:
		return "chan"
	case KindVariadic:
		return "variadic"
	case KindFunction:
		return "function"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindTypedef:
		return "typedef"
	case KindInterface:
		return "interface"
	case KindField:
		return "field"
	case KindEmbeddedField:
		return "embedded_field"
	case KindVariable:
		return "variable"
	case KindSumType:
		return "sumtype"
	case KindFunctionType:
		return "function_type"
	case KindNever:
		return "never"
	default:
		return "unknown"
	}
}

// AccessKind tags the visibility/mutability of a Symbol.
type AccessKind int

const (
	AccessPrivate AccessKind = iota
	AccessPrivateMutable
	AccessPublic
	AccessPublicMutable
	AccessGlobal
)

// Language tags which language a binded (foreign) symbol belongs to.
type Language int

const (
	LangTarget Language = iota // "v" in the spec: the language this server analyzes
	LangC
	LangJS
)

// IsTypeDefiningKind reports whether a symbol of this kind introduces a
// named type (as opposed to a value, a derived type, or a structural member).
func IsTypeDefiningKind(k SymbolKind) bool {
	switch k {
	case KindStruct, KindEnum, KindTypedef, KindInterface, KindSumType, KindFunctionType:
		return true
	}
	return false
}

// IsReturnable reports whether a symbol's return_sym field denotes its type
// — variables, fields, and functions are returnable; types are not.
func IsReturnable(k SymbolKind) bool {
	switch k {
	case KindVariable, KindField, KindEmbeddedField, KindFunction:
		return true
	}
	return false
}

// IsReference reports whether a symbol is a pointer-to-T wrapper whose
// parent field holds the pointee.
func IsReference(k SymbolKind) bool {
	return k == KindRef
}

// IsContainerKind reports whether a symbol kind is one of the derived/
// synthesized container kinds (§4.5's derived-type table plus the anonymous
// function_type kind) that register_symbol's same-row rename heuristic must
// not apply to: these symbols carry synthetic printable names
// ("[]T", "map[K]V", "#anon_3", ...), not user-typed identifiers, so two of
// them landing on the same source row is not evidence of a rename.
func IsContainerKind(k SymbolKind) bool {
	switch k {
	case KindRef, KindArray, KindMap, KindMultiReturn, KindOptional, KindResult, KindChan, KindVariadic, KindFunctionType:
		return true
	}
	return false
}

// HasInnerType reports whether a symbol kind wires its inner/pointee type
// through the parent field (ref, chan, optional, result).
func HasInnerType(k SymbolKind) bool {
	switch k {
	case KindRef, KindChan, KindOptional, KindResult:
		return true
	}
	return false
}
