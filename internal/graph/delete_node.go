package graph

import (
	"path"

	"github.com/vlang-tools/semgraph/internal/ast"
)

// DeleteSymbolAtNode removes per-node-type symbols declared at root's top
// level whose start row falls within [startLine, endLine] (§4.7):
// consts, globals/vars, functions, interfaces, enums, typedefs, and
// structs — reached either directly (function_declaration,
// method_declaration) or through a spec list a declaration group wraps
// (type_declaration's type_specs, const_declaration's const_specs,
// var_declaration's var_specs). Methods are removed from their receiver
// type's children list instead of the module index. import_declaration
// nodes in the window prune the matching per-file entry from the
// declaring directory's import records. Binded symbols (C.*/JS.*) are
// also pruned from binded_symbol_locations.
func (s *Store) DeleteSymbolAtNode(filePath string, root ast.Node, src ast.SourceText, startLine, endLine int) {
	fileID, ok := s.pathToFileID[filePath]
	if !ok {
		return
	}
	modulePath := dirOf(filePath)
	fileName := path.Base(filePath)

	for i := 0; i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		if child.IsNull() {
			continue
		}

		if child.TypeName() == "import_declaration" {
			row := child.Range().StartPoint.Row
			if row >= startLine && row <= endLine {
				s.removeImportInWindow(modulePath, fileName, startLine, endLine)
			}
			continue
		}

		switch child.TypeName() {
		case "function_declaration", "method_declaration":
			s.deleteSingleDecl(modulePath, fileID, child, src, startLine, endLine)
		case "type_declaration", "const_declaration", "var_declaration":
			for j := 0; j < child.NamedChildCount(); j++ {
				s.deleteSingleDecl(modulePath, fileID, child.NamedChild(j), src, startLine, endLine)
			}
		}
	}
}

func (s *Store) deleteSingleDecl(modulePath string, fileID int, node ast.Node, src ast.SourceText, startLine, endLine int) {
	row := node.Range().StartPoint.Row
	if row < startLine || row > endLine {
		return
	}

	for _, nameNode := range declaredNames(node) {
		if nameNode.IsNull() {
			continue
		}
		name := nameNode.Text(src)

		if recv := node.ChildByFieldName("receiver"); !recv.IsNull() {
			recvTypeNode := recv.ChildByFieldName("type")
			if recvTypeNode.IsNull() {
				continue
			}
			recvType := s.Symbols.GetInfoByName(modulePath, recvTypeNode.Text(src))
			if !recvType.IsVoid() {
				s.removeChildByName(recvType.ID, name)
			}
			continue
		}

		sym := s.Symbols.GetInfoByName(modulePath, name)
		if sym.IsVoid() {
			continue
		}
		s.removeModuleSymbol(modulePath, fileID, name)
		if sym.Language != LangTarget {
			delete(s.bindedSymbolLocations, sym.Name)
		}
	}
}

// declaredNames returns the name node(s) a function/method/spec
// declaration introduces: a single identifier for functions, methods, and
// type specs, or every name in a comma-separated name list for const/var
// specs that declare more than one identifier at once.
func declaredNames(node ast.Node) []ast.Node {
	nameField := node.ChildByFieldName("name")
	if nameField.IsNull() {
		return nil
	}
	if nameField.TypeName() == "identifier" || nameField.NamedChildCount() == 0 {
		return []ast.Node{nameField}
	}
	names := make([]ast.Node, 0, nameField.NamedChildCount())
	for i := 0; i < nameField.NamedChildCount(); i++ {
		names = append(names, nameField.NamedChild(i))
	}
	return names
}

func (s *Store) removeModuleSymbol(modulePath string, fileID int, name string) {
	ids := s.Symbols.moduleSymbols[modulePath]
	for i, id := range ids {
		sym := s.Symbols.GetInfo(id)
		if sym.Name == name && sym.FileID == fileID {
			s.Symbols.moduleSymbols[modulePath] = append(ids[:i:i], ids[i+1:]...)
			return
		}
	}
}

func (s *Store) removeChildByName(parentID int64, name string) {
	sym := s.Symbols.GetInfo(parentID)
	for i, c := range sym.Children {
		if s.Symbols.GetInfo(c).Name == name {
			next := make([]int64, 0, len(sym.Children)-1)
			next = append(next, sym.Children[:i]...)
			next = append(next, sym.Children[i+1:]...)
			s.Symbols.setChildren(parentID, next)
			return
		}
	}
}

func (s *Store) removeImportInWindow(dir, fileName string, startLine, endLine int) {
	imps := s.imports[dir]
	kept := imps[:0:0]
	for _, imp := range imps {
		ranges, ok := imp.Ranges[fileName]
		inWindow := false
		if ok {
			for _, r := range ranges {
				if r.StartPoint.Row >= startLine && r.StartPoint.Row <= endLine {
					inWindow = true
					break
				}
			}
		}
		if inWindow {
			delete(imp.Aliases, fileName)
			delete(imp.Symbols, fileName)
			delete(imp.Ranges, fileName)
			if len(imp.Ranges) == 0 {
				continue
			}
		}
		kept = append(kept, imp)
	}
	s.imports[dir] = kept
}
