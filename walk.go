package semgraph

import (
	"path"
	"strings"
	"unicode"

	"github.com/vlang-tools/semgraph/internal/ast"
	"github.com/vlang-tools/semgraph/internal/graph"
	"github.com/vlang-tools/semgraph/internal/infer"
)

func pathDir(p string) string { return path.Dir(p) }

// accessForName derives an AccessKind from a name's case, the convention
// the target language's own capitalization-based visibility rule mirrors
// (public names start with an upper-case letter).
func accessForName(name string) graph.AccessKind {
	if name == "" {
		return graph.AccessPrivate
	}
	if unicode.IsUpper([]rune(name)[0]) {
		return graph.AccessPublic
	}
	return graph.AccessPrivate
}

// declaredNames returns the name node(s) a spec declares: a single
// identifier, or every identifier in a comma-separated name list for
// const/var specs that declare more than one at once.
func declaredNames(node ast.Node) []ast.Node {
	nameField := node.ChildByFieldName("name")
	if nameField.IsNull() {
		return nil
	}
	if nameField.NamedChildCount() == 0 {
		return []ast.Node{nameField}
	}
	names := make([]ast.Node, 0, nameField.NamedChildCount())
	for i := 0; i < nameField.NamedChildCount(); i++ {
		names = append(names, nameField.NamedChild(i))
	}
	return names
}

// walkTopLevel registers every top-level declaration in root. It is the
// Go-native replacement for the teacher's script-driven extraction pass in
// engine.go: instead of handing a tree-sitter cursor to a Risor script,
// this function walks it directly and calls straight into RequestContext/
// Store/infer.
func walkTopLevel(rc *graph.RequestContext, filePath string, root ast.Node, src ast.Source) {
	for i := 0; i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		if child.IsNull() {
			continue
		}
		switch child.TypeName() {
		case "function_declaration":
			registerFunction(rc, filePath, child, src, graph.VoidSymID)
		case "method_declaration":
			registerMethod(rc, filePath, child, src)
		case "type_declaration":
			for j := 0; j < child.NamedChildCount(); j++ {
				registerTypeSpec(rc, filePath, child.NamedChild(j), src)
			}
		case "const_declaration":
			for j := 0; j < child.NamedChildCount(); j++ {
				registerValueSpec(rc, filePath, child.NamedChild(j), src, true)
			}
		case "var_declaration":
			for j := 0; j < child.NamedChildCount(); j++ {
				registerValueSpec(rc, filePath, child.NamedChild(j), src, false)
			}
		}
		// import_declaration is deliberately not handled here: module
		// resolution policy belongs to the importer collaborator
		// (internal/importer), which a host wires in ahead of OpenFile via
		// Store.RegisterImport/RegisterAutoImport.
	}
}

func registerFunction(rc *graph.RequestContext, filePath string, node ast.Node, src ast.Source, receiverID int64) int64 {
	store := rc.Store()
	nameNode := node.ChildByFieldName("name")
	if nameNode.IsNull() {
		return graph.VoidSymID
	}
	name := nameNode.Text(src)

	paramIDs := registerParamList(rc, filePath, node.ChildByFieldName("parameters"), src)

	retSym, err := infer.FindSymbolByTypeNode(store, filePath, node.ChildByFieldName("result"), src)
	if err != nil {
		retSym = graph.VoidSym
	}

	info := graph.Symbol{
		Name: name, Kind: graph.KindFunction, Access: accessForName(name),
		Range: node.Range(), IsTopLevel: receiverID == graph.VoidSymID,
		Parent: receiverID, ReturnSym: retSym.ID, Scope: graph.EmptyScopeID,
	}
	id, err := rc.RegisterSymbol(info)
	if err != nil {
		return graph.VoidSymID
	}
	for _, pid := range paramIDs {
		store.Symbols.AddChildAllowDuplicated(id, pid)
	}
	return id
}

// registerParamList creates one symbol per declared parameter directly in
// the arena (not through Store.RegisterSymbol: parameters are children of
// their owning function, never independent module symbols), mirroring how
// findFnSymbolByTypeNode builds the parameter list for a synthesized
// anonymous function type in internal/infer.
func registerParamList(rc *graph.RequestContext, filePath string, paramsNode ast.Node, src ast.Source) []int64 {
	store := rc.Store()
	var ids []int64
	for i := 0; i < paramsNode.NamedChildCount(); i++ {
		p := paramsNode.NamedChild(i)
		typeSym, err := infer.FindSymbolByTypeNode(store, filePath, p.ChildByFieldName("type"), src)
		if err != nil {
			continue
		}
		pname := ""
		if n := p.ChildByFieldName("name"); !n.IsNull() {
			pname = n.Text(src)
		}
		id := store.Symbols.CreateNewSymbolWith(graph.Symbol{
			Name: pname, Kind: graph.KindField, Access: graph.AccessPrivate,
			Range: p.Range(), ReturnSym: typeSym.ID, Parent: graph.VoidSymID, Scope: graph.EmptyScopeID,
			FileID: rc.FileID, FileVersion: rc.FileVersion,
		})
		ids = append(ids, id)
	}
	return ids
}

func registerMethod(rc *graph.RequestContext, filePath string, node ast.Node, src ast.Source) int64 {
	store := rc.Store()
	recv := node.ChildByFieldName("receiver")
	if recv.IsNull() {
		return registerFunction(rc, filePath, node, src, graph.VoidSymID)
	}
	recvTypeNode := recv.ChildByFieldName("type")
	if recvTypeNode.IsNull() {
		if recv.NamedChildCount() > 0 {
			recvTypeNode = recv.NamedChild(0).ChildByFieldName("type")
		}
	}
	if recvTypeNode.IsNull() {
		return registerFunction(rc, filePath, node, src, graph.VoidSymID)
	}
	recvTypeName := strings.TrimPrefix(recvTypeNode.Text(src), "*")
	modulePath := pathDir(filePath)
	recvSym := store.Symbols.GetInfoByName(modulePath, recvTypeName)

	id := registerFunction(rc, filePath, node, src, recvSym.ID)
	if !recvSym.IsVoid() && id != graph.VoidSymID {
		store.Symbols.AddChild(recvSym.ID, id)
	}
	return id
}

func registerTypeSpec(rc *graph.RequestContext, filePath string, node ast.Node, src ast.Source) int64 {
	store := rc.Store()
	nameNode := node.ChildByFieldName("name")
	if nameNode.IsNull() {
		return graph.VoidSymID
	}
	name := nameNode.Text(src)
	typeNode := node.ChildByFieldName("type")

	switch typeNode.TypeName() {
	case "struct_type":
		return registerStructSpec(rc, filePath, name, node, typeNode, src)
	case "interface_type":
		return registerInterfaceSpec(rc, filePath, name, node, typeNode, src)
	default:
		// typedef always inserts rather than updates (DESIGN NOTES:
		// "kind == typedef explicitly skips the update path"), enabling
		// chains of aliases to coexist under the same printable name.
		parent, _ := infer.FindSymbolByTypeNode(store, filePath, typeNode, src)
		info := graph.Symbol{
			Name: name, Kind: graph.KindTypedef, Access: accessForName(name),
			Range: node.Range(), IsTopLevel: true,
			Parent: parent.ID, ReturnSym: graph.VoidSymID, Scope: graph.EmptyScopeID,
		}
		id, err := rc.RegisterSymbol(info)
		if err != nil {
			return graph.VoidSymID
		}
		return id
	}
}

func registerStructSpec(rc *graph.RequestContext, filePath, name string, declNode, typeNode ast.Node, src ast.Source) int64 {
	store := rc.Store()
	info := graph.Symbol{
		Name: name, Kind: graph.KindStruct, Access: accessForName(name),
		Range: declNode.Range(), IsTopLevel: true,
		Parent: graph.VoidSymID, ReturnSym: graph.VoidSymID, Scope: graph.EmptyScopeID,
	}
	id, err := rc.RegisterSymbol(info)
	if err != nil {
		return graph.VoidSymID
	}

	fieldListNode := typeNode.ChildByFieldName("fields")
	for i := 0; i < fieldListNode.NamedChildCount(); i++ {
		f := fieldListNode.NamedChild(i)
		fTypeNode := f.ChildByFieldName("type")
		fType, err := infer.FindSymbolByTypeNode(store, filePath, fTypeNode, src)
		if err != nil {
			continue
		}
		kind := graph.KindField
		fname := ""
		if n := f.ChildByFieldName("name"); !n.IsNull() {
			fname = n.Text(src)
		} else {
			kind = graph.KindEmbeddedField
			fname = fType.Name
		}
		fieldID := store.Symbols.CreateNewSymbolWith(graph.Symbol{
			Name: fname, Kind: kind, Access: accessForName(fname),
			Range: f.Range(), ReturnSym: fType.ID, Parent: id, Scope: graph.EmptyScopeID,
			FileID: rc.FileID, FileVersion: rc.FileVersion,
		})
		store.Symbols.AddChild(id, fieldID)
	}
	return id
}

func registerInterfaceSpec(rc *graph.RequestContext, filePath, name string, declNode, typeNode ast.Node, src ast.Source) int64 {
	store := rc.Store()
	info := graph.Symbol{
		Name: name, Kind: graph.KindInterface, Access: accessForName(name),
		Range: declNode.Range(), IsTopLevel: true,
		Parent: graph.VoidSymID, ReturnSym: graph.VoidSymID, Scope: graph.EmptyScopeID,
	}
	id, err := rc.RegisterSymbol(info)
	if err != nil {
		return graph.VoidSymID
	}

	count := 0
	for i := 0; i < typeNode.NamedChildCount(); i++ {
		m := typeNode.NamedChild(i)
		mNameNode := m.ChildByFieldName("name")
		if mNameNode.IsNull() {
			continue
		}
		paramIDs := registerParamList(rc, filePath, m.ChildByFieldName("parameters"), src)
		retSym, _ := infer.FindSymbolByTypeNode(store, filePath, m.ChildByFieldName("result"), src)
		methodID := store.Symbols.CreateNewSymbolWith(graph.Symbol{
			Name: mNameNode.Text(src), Kind: graph.KindFunction, Access: graph.AccessPublic,
			Range: m.Range(), ReturnSym: retSym.ID, Parent: id, Scope: graph.EmptyScopeID,
			FileID: rc.FileID, FileVersion: rc.FileVersion,
		})
		for _, pid := range paramIDs {
			store.Symbols.AddChildAllowDuplicated(methodID, pid)
		}
		store.Symbols.AddChild(id, methodID)
		count++
	}
	store.Symbols.SetInterfaceChildrenLen(id, count)
	return id
}

func registerValueSpec(rc *graph.RequestContext, filePath string, node ast.Node, src ast.Source, isConst bool) {
	store := rc.Store()
	typeNode := node.ChildByFieldName("type")
	valueNode := node.ChildByFieldName("value")

	for _, nameNode := range declaredNames(node) {
		if nameNode.IsNull() {
			continue
		}
		name := nameNode.Text(src)

		var typeSym graph.Symbol
		if !typeNode.IsNull() {
			typeSym, _ = infer.FindSymbolByTypeNode(store, filePath, typeNode, src)
		} else if !valueNode.IsNull() {
			typeSym = infer.InferValueTypeFromNode(store, filePath, valueNode, src)
		}

		info := graph.Symbol{
			Name: name, Kind: graph.KindVariable, Access: accessForName(name),
			Range: node.Range(), IsTopLevel: true, IsConst: isConst,
			Parent: graph.VoidSymID, ReturnSym: typeSym.ID, Scope: graph.EmptyScopeID,
		}
		rc.RegisterSymbol(info)
	}
}
