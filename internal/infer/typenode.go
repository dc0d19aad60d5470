// Package infer is the type-inference walker (§4.5 component G): the pair
// of entry points InferSymbolFromNode / InferValueTypeFromNode and the
// shared subroutine FindSymbolByTypeNode they're both built on. It
// consumes a *graph.Store rather than embedding one, mirroring how
// engine.go's extraction scripts in the teacher repo were handed a Store
// reference and drove it from the outside rather than subclassing it.
package infer

import (
	stdpath "path"
	"strings"

	"github.com/vlang-tools/semgraph/internal/ast"
	"github.com/vlang-tools/semgraph/internal/graph"
)

// nameTuple is the (kind, module_name, printable_name) triple
// symbol_name_from_node computes — a pure function of the node's shape,
// with no store access and no side effects.
type nameTuple struct {
	Kind          graph.SymbolKind
	ModuleName    string
	PrintableName string
}

// symbolNameFromNode implements §4.5 step 1's dispatch table.
func symbolNameFromNode(node ast.Node, src ast.SourceText) nameTuple {
	if node.IsNull() {
		return nameTuple{Kind: graph.KindVoid}
	}
	switch node.TypeName() {
	case "pointer_type":
		it := symbolNameFromNode(typeChild(node), src)
		return nameTuple{graph.KindRef, "", "&" + it.PrintableName}

	case "array_type", "fixed_array_type":
		inner := node.ChildByFieldName("element")
		if inner.IsNull() {
			inner = typeChild(node)
		}
		it := symbolNameFromNode(inner, src)
		limit := ""
		if lim := node.ChildByFieldName("len"); !lim.IsNull() {
			limit = lim.Text(src)
		}
		return nameTuple{graph.KindArray, it.ModuleName, "[" + limit + "]" + it.PrintableName}

	case "map_type":
		kt := symbolNameFromNode(node.ChildByFieldName("key"), src)
		vt := symbolNameFromNode(node.ChildByFieldName("value"), src)
		mod := kt.ModuleName
		if mod == "" {
			mod = vt.ModuleName
		}
		return nameTuple{graph.KindMap, mod, "map[" + kt.PrintableName + "]" + vt.PrintableName}

	case "channel_type":
		it := symbolNameFromNode(typeChild(node), src)
		return nameTuple{graph.KindChan, it.ModuleName, "chan " + it.PrintableName}

	case "option_type":
		return wrapOptionResult(node, src, graph.KindOptional, "?")

	case "result_type":
		return wrapOptionResult(node, src, graph.KindResult, "!")

	case "variadic_type":
		it := symbolNameFromNode(typeChild(node), src)
		return nameTuple{graph.KindVariadic, it.ModuleName, "..." + it.PrintableName}

	case "multi_return_type", "parameter_list":
		// parameter_list shows up here when a function_declaration's result
		// field is a parenthesized multi-value return list in the real Go
		// grammar; it is treated exactly like the V grammar's dedicated
		// multi_return_type node.
		return nameTuple{graph.KindMultiReturn, "", node.Text(src)}

	case "generic_type":
		return symbolNameFromNode(typeChild(node), src)

	case "function_type", "fn_literal":
		return nameTuple{graph.KindFunctionType, "", ""}

	case "call_expression":
		return symbolNameFromNode(node.ChildByFieldName("function"), src)

	case "qualified_type":
		mod, name := splitQualified(node, src)
		return nameTuple{graph.KindPlaceholder, mod, name}

	default:
		return nameTuple{graph.KindPlaceholder, "", node.Text(src)}
	}
}

// wrapOptionResult handles option_type/result_type: a void inner collapses
// the printable name to a bare sigil (§6 "Special identifier conventions",
// DESIGN NOTES).
func wrapOptionResult(node ast.Node, src ast.SourceText, kind graph.SymbolKind, sigil string) nameTuple {
	inner := typeChild(node)
	it := symbolNameFromNode(inner, src)
	name := it.PrintableName
	if inner.IsNull() || name == "void" {
		name = ""
	}
	return nameTuple{kind, it.ModuleName, sigil + name}
}

func typeChild(node ast.Node) ast.Node {
	if t := node.ChildByFieldName("type"); !t.IsNull() {
		return t
	}
	if node.NamedChildCount() > 0 {
		return node.NamedChild(0)
	}
	return ast.Null
}

func splitQualified(node ast.Node, src ast.SourceText) (string, string) {
	if mod := node.ChildByFieldName("module"); !mod.IsNull() {
		return mod.Text(src), node.ChildByFieldName("name").Text(src)
	}
	text := node.Text(src)
	if idx := strings.LastIndex(text, "."); idx >= 0 {
		return text[:idx], text[idx+1:]
	}
	return "", text
}

func placeholderModulePath(moduleName, filePath string) string {
	if moduleName != "" {
		return moduleName
	}
	return stdpath.Dir(filePath)
}

// FindSymbolByTypeNode resolves a type-expression node to the Symbol it
// denotes, synthesizing and registering a new derived-type or placeholder
// symbol on a miss (§4.5).
func FindSymbolByTypeNode(store *graph.Store, filePath string, node ast.Node, src ast.SourceText) (graph.Symbol, error) {
	if node.IsNull() {
		return graph.VoidSym, nil
	}
	tuple := symbolNameFromNode(node, src)
	if tuple.Kind == graph.KindFunctionType {
		return findFnSymbolByTypeNode(store, filePath, node, src)
	}
	if sym, err := store.FindSymbol(filePath, tuple.ModuleName, tuple.PrintableName); err == nil {
		return sym, nil
	}
	return synthesizePlaceholder(store, filePath, node, src, tuple)
}

// synthesizePlaceholder implements §4.5 step 3's derived-type construction
// table: a miss in Store.find_symbol grows the type universe lazily by
// registering a new symbol at <module_path>/placeholder.vv and wiring its
// parent/children according to its kind.
func synthesizePlaceholder(store *graph.Store, filePath string, node ast.Node, src ast.SourceText, tuple nameTuple) (graph.Symbol, error) {
	modulePath := placeholderModulePath(tuple.ModuleName, filePath)
	fileID := store.InsertFilePath(modulePath + "/placeholder.vv")

	info := graph.Symbol{
		Name: tuple.PrintableName, Kind: tuple.Kind, Access: graph.AccessPublic,
		FileID: fileID, FileVersion: 0,
		Parent: graph.VoidSymID, ReturnSym: graph.VoidSymID, Scope: graph.EmptyScopeID,
		Range: node.Range(),
	}

	switch node.TypeName() {
	case "pointer_type", "channel_type", "option_type", "result_type":
		innerSym, err := FindSymbolByTypeNode(store, filePath, typeChild(node), src)
		if err != nil {
			return graph.VoidSym, err
		}
		info.Parent = innerSym.ID
		id, err := store.RegisterSymbol(info)
		if err != nil {
			return graph.VoidSym, err
		}
		return store.Symbols.GetInfo(id), nil

	case "array_type", "fixed_array_type":
		elem := node.ChildByFieldName("element")
		if elem.IsNull() {
			elem = typeChild(node)
		}
		innerSym, err := FindSymbolByTypeNode(store, filePath, elem, src)
		if err != nil {
			return graph.VoidSym, err
		}
		id, err := store.RegisterSymbol(info)
		if err != nil {
			return graph.VoidSym, err
		}
		store.Symbols.AddChild(id, innerSym.ID)
		return store.Symbols.GetInfo(id), nil

	case "map_type":
		keySym, err := FindSymbolByTypeNode(store, filePath, node.ChildByFieldName("key"), src)
		if err != nil {
			return graph.VoidSym, err
		}
		valSym, err := FindSymbolByTypeNode(store, filePath, node.ChildByFieldName("value"), src)
		if err != nil {
			return graph.VoidSym, err
		}
		id, err := store.RegisterSymbol(info)
		if err != nil {
			return graph.VoidSym, err
		}
		store.Symbols.AddChildAllowDuplicated(id, keySym.ID)
		store.Symbols.AddChildAllowDuplicated(id, valSym.ID)
		return store.Symbols.GetInfo(id), nil

	case "variadic_type":
		innerSym, err := FindSymbolByTypeNode(store, filePath, typeChild(node), src)
		if err != nil {
			return graph.VoidSym, err
		}
		id, err := store.RegisterSymbol(info)
		if err != nil {
			return graph.VoidSym, err
		}
		store.Symbols.AddChildAllowDuplicated(id, innerSym.ID)
		return store.Symbols.GetInfo(id), nil

	case "multi_return_type", "parameter_list":
		childIDs := make([]int64, 0, node.NamedChildCount())
		for i := 0; i < node.NamedChildCount(); i++ {
			member := node.NamedChild(i)
			if t := member.ChildByFieldName("type"); !t.IsNull() {
				member = t
			}
			childSym, err := FindSymbolByTypeNode(store, filePath, member, src)
			if err != nil {
				return graph.VoidSym, err
			}
			childIDs = append(childIDs, childSym.ID)
		}
		id, err := store.RegisterSymbol(info)
		if err != nil {
			return graph.VoidSym, err
		}
		for _, c := range childIDs {
			store.Symbols.AddChildAllowDuplicated(id, c)
		}
		return store.Symbols.GetInfo(id), nil

	default:
		id, err := store.RegisterSymbol(info)
		if err != nil {
			return graph.VoidSym, err
		}
		return store.Symbols.GetInfo(id), nil
	}
}

// findFnSymbolByTypeNode implements §4.5 step 2: extract the parameter
// list and return node, dedup against an existing anonymous function_type
// symbol via Store.FindFnSymbol, and synthesize #anon_<n> on a miss.
func findFnSymbolByTypeNode(store *graph.Store, filePath string, node ast.Node, src ast.SourceText) (graph.Symbol, error) {
	modulePath := stdpath.Dir(filePath)

	paramsNode := node.ChildByFieldName("parameters")
	resultNode := node.ChildByFieldName("result")

	var params []int64
	for i := 0; i < paramsNode.NamedChildCount(); i++ {
		p := paramsNode.NamedChild(i)
		paramSym, err := FindSymbolByTypeNode(store, filePath, p.ChildByFieldName("type"), src)
		if err != nil {
			return graph.VoidSym, err
		}
		paramName := ""
		if n := p.ChildByFieldName("name"); !n.IsNull() {
			paramName = n.Text(src)
		}
		paramID := store.Symbols.CreateNewSymbolWith(graph.Symbol{
			Name: paramName, Kind: graph.KindField, Access: graph.AccessPrivate,
			ReturnSym: paramSym.ID, Parent: graph.VoidSymID, Scope: graph.EmptyScopeID,
			FileID: paramSym.FileID,
		})
		params = append(params, paramID)
	}

	retSym, err := FindSymbolByTypeNode(store, filePath, resultNode, src)
	if err != nil {
		return graph.VoidSym, err
	}

	if existing, ok := store.FindFnSymbol(modulePath, params, retSym.ID); ok {
		return existing, nil
	}

	fileID := store.InsertFilePath(modulePath + "/placeholder.vv")
	info := graph.Symbol{
		Name: store.NextAnonName(), Kind: graph.KindFunctionType, Access: graph.AccessPublic,
		FileID: fileID, FileVersion: 0,
		Parent: graph.VoidSymID, ReturnSym: retSym.ID, Scope: graph.EmptyScopeID,
		Range: node.Range(),
	}
	id, err := store.RegisterSymbol(info)
	if err != nil {
		return graph.VoidSym, err
	}
	for _, p := range params {
		store.Symbols.AddChildAllowDuplicated(id, p)
	}
	return store.Symbols.GetInfo(id), nil
}
