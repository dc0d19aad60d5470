package infer

import (
	"path"

	"github.com/vlang-tools/semgraph/internal/ast"
	"github.com/vlang-tools/semgraph/internal/graph"
)

// InferSymbolFromNode computes the *declared* type of node: an explicit
// type annotation when one is present on a var/const/field/parameter
// declaration, otherwise falling back to the type of node's initializing
// value. Inference never panics on a missing child — a malformed node
// falls back to graph.VoidSym and lets the caller decide whether that
// absence is reportable (§7 propagation policy).
func InferSymbolFromNode(store *graph.Store, filePath string, node ast.Node, src ast.SourceText) graph.Symbol {
	if node.IsNull() {
		return graph.VoidSym
	}
	if t := node.ChildByFieldName("type"); !t.IsNull() {
		sym, err := FindSymbolByTypeNode(store, filePath, t, src)
		if err != nil {
			return graph.VoidSym
		}
		return sym
	}
	if v := node.ChildByFieldName("value"); !v.IsNull() {
		return InferValueTypeFromNode(store, filePath, v, src)
	}
	return InferValueTypeFromNode(store, filePath, node, src)
}

// builtinLiteralKinds maps a literal node's TypeName to the builtin type
// name its value carries.
var builtinLiteralKinds = map[string]string{
	"int_literal":    "int",
	"float_literal":  "f64",
	"string_literal": "string",
	"rune_literal":   "rune",
	"true":           "bool",
	"false":          "bool",
	"bool_literal":   "bool",
}

// InferValueTypeFromNode computes the type an expression node *evaluates
// to*, as opposed to a declared annotation (§4.5).
func InferValueTypeFromNode(store *graph.Store, filePath string, node ast.Node, src ast.SourceText) graph.Symbol {
	if node.IsNull() {
		return graph.VoidSym
	}

	switch node.TypeName() {
	case "identifier":
		sym, err := store.FindSymbol(filePath, "", node.Text(src))
		if err != nil {
			return graph.VoidSym
		}
		return derefReturnable(store, sym)

	case "selector_expression":
		base := InferValueTypeFromNode(store, filePath, node.ChildByFieldName("operand"), src)
		fieldNode := node.ChildByFieldName("field")
		if fieldNode.IsNull() || base.IsVoid() {
			return graph.VoidSym
		}
		field, ok := lookupField(store, base, fieldNode.Text(src))
		if !ok {
			return graph.VoidSym
		}
		return derefReturnable(store, field)

	case "call_expression":
		fnNode := node.ChildByFieldName("function")
		fnSym := calleeSymbol(store, filePath, fnNode, src)
		if fnSym.IsVoid() {
			return graph.VoidSym
		}
		return store.Symbols.GetInfo(fnSym.ReturnSym)

	case "unary_expression":
		op := node.ChildByFieldName("operator")
		operand := InferValueTypeFromNode(store, filePath, node.ChildByFieldName("operand"), src)
		if op.IsNull() || op.Text(src) != "&" || operand.IsVoid() {
			return operand
		}
		if pointerDepth(store, operand) > 2 {
			// unary-& rejects operands whose pointer depth already exceeds 2
			// (DESIGN NOTES, "count_ptr depth cap").
			return graph.VoidSym
		}
		return synthesizeRef(store, filePath, operand)

	case "binary_expression":
		return InferValueTypeFromNode(store, filePath, node.ChildByFieldName("left"), src)

	case "parenthesized_expression":
		return InferValueTypeFromNode(store, filePath, typeChild(node), src)

	default:
		if name, ok := builtinLiteralKinds[node.TypeName()]; ok {
			sym, err := store.FindSymbol(filePath, "", name)
			if err != nil {
				return graph.VoidSym
			}
			return sym
		}
		return graph.VoidSym
	}
}

// calleeSymbol resolves a call_expression's function node to the raw
// function (or function-returning-field) symbol itself, one deref short of
// InferValueTypeFromNode's usual identifier/selector_expression handling —
// those already deref through return_sym for ordinary value use, which
// would otherwise leave call_expression dereferencing twice.
func calleeSymbol(store *graph.Store, filePath string, node ast.Node, src ast.SourceText) graph.Symbol {
	switch node.TypeName() {
	case "identifier":
		sym, err := store.FindSymbol(filePath, "", node.Text(src))
		if err != nil {
			return graph.VoidSym
		}
		return sym

	case "selector_expression":
		base := InferValueTypeFromNode(store, filePath, node.ChildByFieldName("operand"), src)
		fieldNode := node.ChildByFieldName("field")
		if fieldNode.IsNull() || base.IsVoid() {
			return graph.VoidSym
		}
		field, ok := lookupField(store, base, fieldNode.Text(src))
		if !ok {
			return graph.VoidSym
		}
		return field

	default:
		return InferValueTypeFromNode(store, filePath, node, src)
	}
}

// lookupField resolves name against base's own children first, then, for a
// derived kind ([]T, map[K]V, chan T, ?T), falls through to the builtin
// base type base_symbol_locations redirects to (§3) — array/map/chan/IError
// carry the methods a derived symbol's own (empty) children list never
// does.
func lookupField(store *graph.Store, base graph.Symbol, name string) (graph.Symbol, bool) {
	if field, _, ok := store.Symbols.FindSymbolByName(base.Children, name); ok {
		return field, true
	}
	baseSym, ok := store.BaseSymbol(base.Kind)
	if !ok {
		return graph.VoidSym, false
	}
	field, _, ok := store.Symbols.FindSymbolByName(baseSym.Children, name)
	return field, ok
}

// derefReturnable follows a returnable symbol (variable/field/function)
// through to its declared type, mirroring the Resolver's own
// dereferencing rule in ResolveWith.
func derefReturnable(store *graph.Store, sym graph.Symbol) graph.Symbol {
	if graph.IsReturnable(sym.Kind) {
		return store.Symbols.GetInfo(sym.ReturnSym)
	}
	return sym
}

func pointerDepth(store *graph.Store, sym graph.Symbol) int {
	depth := 0
	cur := sym
	for graph.IsReference(cur.Kind) {
		depth++
		cur = store.Symbols.GetInfo(cur.Parent)
	}
	return depth
}

// synthesizeRef finds-or-creates the "&T" ref symbol over inner, used by
// the unary-& operator in value position (as opposed to a parsed
// pointer_type node, which goes through FindSymbolByTypeNode instead).
func synthesizeRef(store *graph.Store, filePath string, inner graph.Symbol) graph.Symbol {
	printable := "&" + inner.Name
	if sym, err := store.FindSymbol(filePath, "", printable); err == nil {
		return sym
	}
	modulePath := path.Dir(filePath)
	fileID := store.InsertFilePath(modulePath + "/placeholder.vv")
	id, err := store.RegisterSymbol(graph.Symbol{
		Name: printable, Kind: graph.KindRef, Access: graph.AccessPublic,
		FileID: fileID, FileVersion: 0,
		Parent: inner.ID, ReturnSym: graph.VoidSymID, Scope: graph.EmptyScopeID,
	})
	if err != nil {
		return graph.VoidSym
	}
	return store.Symbols.GetInfo(id)
}
