package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlang-tools/semgraph/internal/ast"
)

func synthDecl(kind, name string, row int) *ast.SynthNode {
	n := ast.NewSynth(kind, "").WithRange(ast.Range{StartPoint: ast.Point{Row: row}})
	n.SetField("name", ast.NewSynth("identifier", name).WithRange(ast.Range{StartPoint: ast.Point{Row: row}}))
	return n
}

func TestDeleteSymbolAtNode_RemovesFunctionDeclarationInWindow(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	fileID := s.InsertFilePath("pkg/a.go")
	id, err := s.RegisterSymbol(Symbol{Name: "Foo", Kind: KindFunction, FileID: fileID, FileVersion: 1, Range: testRangeAtRow(5)})
	require.NoError(t, err)

	root := ast.NewSynth("source_file", "")
	root.AddNamedChild(synthDecl("function_declaration", "Foo", 5))

	s.DeleteSymbolAtNode("pkg/a.go", root, ast.Source("func Foo() {}"), 0, 10)

	assert.True(t, s.Symbols.GetInfoByName("pkg", "Foo").IsVoid())
	_ = id
}

func TestDeleteSymbolAtNode_IgnoresDeclarationsOutsideWindow(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	fileID := s.InsertFilePath("pkg/a.go")
	_, err := s.RegisterSymbol(Symbol{Name: "Foo", Kind: KindFunction, FileID: fileID, FileVersion: 1, Range: testRangeAtRow(50)})
	require.NoError(t, err)

	root := ast.NewSynth("source_file", "")
	root.AddNamedChild(synthDecl("function_declaration", "Foo", 50))

	s.DeleteSymbolAtNode("pkg/a.go", root, ast.Source(""), 0, 10)

	assert.False(t, s.Symbols.GetInfoByName("pkg", "Foo").IsVoid())
}

func TestDeleteSymbolAtNode_MethodIsRemovedFromReceiverChildren(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	fileID := s.InsertFilePath("pkg/a.go")

	recvType, err := s.RegisterSymbol(Symbol{Name: "Widget", Kind: KindStruct, FileID: fileID, FileVersion: 1, Range: testRangeAtRow(1)})
	require.NoError(t, err)
	method := s.Symbols.CreateNewSymbolWith(Symbol{Name: "Draw", Kind: KindFunction, FileID: fileID, Range: testRangeAtRow(5)})
	s.Symbols.AddChild(recvType, method)

	methodDecl := synthDecl("method_declaration", "Draw", 5)
	recv := ast.NewSynth("parameter_list", "")
	recv.SetField("type", ast.NewSynth("type_identifier", "Widget"))
	methodDecl.SetField("receiver", recv)

	root := ast.NewSynth("source_file", "")
	root.AddNamedChild(methodDecl)

	s.DeleteSymbolAtNode("pkg/a.go", root, ast.Source("func (w Widget) Draw() {}"), 0, 10)

	assert.Empty(t, s.Symbols.GetInfo(recvType).Children)
	// the module symbol index is untouched; only the receiver's child list is pruned.
	assert.False(t, s.Symbols.GetInfoByName("pkg", "Widget").IsVoid())
}

func TestDeleteSymbolAtNode_RemovesAllNamesInMultiNameVarSpec(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	fileID := s.InsertFilePath("pkg/a.go")
	_, err := s.RegisterSymbol(Symbol{Name: "a", Kind: KindVariable, FileID: fileID, FileVersion: 1, Range: testRangeAtRow(3)})
	require.NoError(t, err)
	_, err = s.RegisterSymbol(Symbol{Name: "b", Kind: KindVariable, FileID: fileID, FileVersion: 1, Range: testRangeAtRow(4)})
	require.NoError(t, err)

	varSpec := ast.NewSynth("var_spec", "").WithRange(ast.Range{StartPoint: ast.Point{Row: 3}})
	nameList := ast.NewSynth("identifier_list", "")
	nameList.AddNamedChild(ast.NewSynth("identifier", "a"))
	nameList.AddNamedChild(ast.NewSynth("identifier", "b"))
	varSpec.SetField("name", nameList)

	varDecl := ast.NewSynth("var_declaration", "")
	varDecl.AddNamedChild(varSpec)

	root := ast.NewSynth("source_file", "")
	root.AddNamedChild(varDecl)

	s.DeleteSymbolAtNode("pkg/a.go", root, ast.Source("var a, b int"), 0, 10)

	assert.True(t, s.Symbols.GetInfoByName("pkg", "a").IsVoid())
	assert.True(t, s.Symbols.GetInfoByName("pkg", "b").IsVoid())
}

func TestDeleteSymbolAtNode_UnknownFilePathIsNoop(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	root := ast.NewSynth("source_file", "")
	// Must not panic when filePath was never inserted.
	s.DeleteSymbolAtNode("nowhere.go", root, ast.Source(""), 0, 10)
}

func TestDeleteSymbolAtNode_ImportDeclarationInWindowIsNoopWithoutRegisteredImports(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	s.InsertFilePath("pkg/a.go")

	root := ast.NewSynth("source_file", "")
	importDecl := ast.NewSynth("import_declaration", "").WithRange(ast.Range{StartPoint: ast.Point{Row: 0}})
	root.AddNamedChild(importDecl)

	// With no registered imports this just exercises the no-crash path
	// for an import_declaration node inside the deletion window.
	s.DeleteSymbolAtNode("pkg/a.go", root, ast.Source(`import "lib"`), 0, 5)
}
