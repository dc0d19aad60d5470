package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlang-tools/semgraph/internal/ast"
	"github.com/vlang-tools/semgraph/internal/importer"
	"github.com/vlang-tools/semgraph/internal/report"
)

func newTestStore() *Store {
	return NewStore(report.NewCollectingSink())
}

func TestStore_InsertFilePath_ReusesExistingID(t *testing.T) {
	t.Parallel()
	s := newTestStore()

	id1 := s.InsertFilePath("pkg/a.go")
	id2 := s.InsertFilePath("pkg/a.go")
	id3 := s.InsertFilePath("pkg/b.go")

	assert.Equal(t, id1, id2)
	assert.NotEqual(t, id1, id3)
	assert.Equal(t, 2, s.FileCount())
	assert.Equal(t, "pkg/a.go", s.FilePath(id1))
}

func TestStore_GetIdent_JoinsDirAndName(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	fileID := s.InsertFilePath("pkg/sub/a.go")

	ident := s.GetIdent(Symbol{FileID: fileID, Name: "Widget"})
	assert.Equal(t, "pkg/sub/Widget", ident)
}

func TestStore_RegisterSymbol_InsertsNewModuleSymbol(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	fileID := s.InsertFilePath("pkg/a.go")

	id, err := s.RegisterSymbol(Symbol{
		Name: "Foo", Kind: KindFunction, FileID: fileID, FileVersion: 1,
		Range: testRangeAtRow(1),
	})
	require.NoError(t, err)

	got := s.Symbols.GetInfo(id)
	assert.Equal(t, "Foo", got.Name)
	assert.Contains(t, s.Symbols.ModuleSymbols("pkg"), id)
}

func TestStore_RegisterSymbol_UpdatesInPlaceOnRedeclaration(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	fileID := s.InsertFilePath("pkg/a.go")

	id1, err := s.RegisterSymbol(Symbol{
		Name: "Foo", Kind: KindFunction, FileID: fileID, FileVersion: 1,
		Range: testRangeAtRow(1),
	})
	require.NoError(t, err)

	id2, err := s.RegisterSymbol(Symbol{
		Name: "Foo", Kind: KindFunction, FileID: fileID, FileVersion: 2,
		Range: testRangeAtRow(1),
	})
	require.NoError(t, err)

	assert.Equal(t, id1, id2, "re-registering the same name/row updates in place")
}

func TestStore_RegisterSymbol_TypedefNeverUpdatesInPlace(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	fileID := s.InsertFilePath("pkg/a.go")

	id1, err := s.RegisterSymbol(Symbol{
		Name: "ID", Kind: KindTypedef, FileID: fileID, FileVersion: 1,
		Range: testRangeAtRow(1), Parent: 0,
	})
	require.NoError(t, err)

	id2, err := s.RegisterSymbol(Symbol{
		Name: "ID", Kind: KindTypedef, FileID: fileID, FileVersion: 2,
		Range: testRangeAtRow(1), Parent: 0,
	})
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2, "typedefs always insert a fresh symbol")
}

func TestStore_RegisterSymbol_WakesWaitersOnForwardReference(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	useFileID := s.InsertFilePath("pkg/use.go")
	defFileID := s.InsertFilePath("pkg/def.go")

	waiter := s.Symbols.CreateNewSymbolWith(Symbol{Name: "v", Kind: KindVariable, FileID: useFileID, ReturnSym: VoidSymID})
	require.NoError(t, s.Resolver.Register("pkg/Widget", ResolutionInfo{SymID: waiter}))

	id, err := s.RegisterSymbol(Symbol{
		Name: "Widget", Kind: KindStruct, FileID: defFileID, FileVersion: 1,
		Range: testRangeAtRow(1),
	})
	require.NoError(t, err)

	assert.Equal(t, id, s.Symbols.GetInfo(waiter).ReturnSym)
}

func TestStore_RegisterSymbol_ReportsConflictToSink(t *testing.T) {
	t.Parallel()
	sink := report.NewCollectingSink()
	s := NewStore(sink)
	fileID := s.InsertFilePath("pkg/a.go")

	_, err := s.RegisterSymbol(Symbol{
		Name: "Foo", Kind: KindFunction, FileID: fileID, FileVersion: 1,
		Range: testRangeAtRow(10),
	})
	require.NoError(t, err)

	_, err = s.RegisterSymbol(Symbol{
		Name: "Foo", Kind: KindFunction, FileID: fileID, FileVersion: 1,
		Range: testRangeAtRow(3),
	})
	require.Error(t, err)
	require.Len(t, sink.Reports, 1)
}

func TestStore_FindSymbol_ChecksModuleThenAutoImportThenExplicitImport(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	localFile := s.InsertFilePath("app/main.go")
	builtinFile := s.InsertFilePath("builtin/prim.go")
	libFile := s.InsertFilePath("lib/util.go")

	_, err := s.RegisterSymbol(Symbol{Name: "int", Kind: KindPlaceholder, FileID: builtinFile, FileVersion: -1, Range: testRangeAtRow(0)})
	require.NoError(t, err)
	s.RegisterAutoImport("builtin", "builtin")

	sym, err := s.FindSymbol("app/main.go", "builtin", "int")
	require.NoError(t, err)
	assert.Equal(t, "int", sym.Name)

	_, err = s.RegisterSymbol(Symbol{Name: "Helper", Kind: KindFunction, FileID: libFile, FileVersion: 1, Range: testRangeAtRow(1)})
	require.NoError(t, err)

	imp := importer.NewImport("util", "lib")
	imp.AddUse("main.go", testRangeAtRow(0), "", "", []string{"Helper"})
	s.RegisterImport("app", imp)

	sym, err = s.FindSymbol("app/main.go", "", "Helper")
	require.NoError(t, err)
	assert.Equal(t, "Helper", sym.Name)

	_, err = s.FindSymbol("app/main.go", "", "Missing")
	assert.Error(t, err)
	_ = localFile
}

func TestStore_FindSymbol_UnqualifiedNameFallsThroughEveryAutoImport(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	builtinFile := s.InsertFilePath("builtin/prim.go")
	_, err := s.RegisterSymbol(Symbol{Name: "int", Kind: KindPlaceholder, FileID: builtinFile, FileVersion: -1, Range: testRangeAtRow(0)})
	require.NoError(t, err)
	s.RegisterAutoImport("builtin", "builtin")

	sym, err := s.FindSymbol("app/sub/main.go", "", "int")
	require.NoError(t, err)
	assert.Equal(t, "int", sym.Name)
}

func TestStore_FindSymbol_ResolvesAliasedModuleName(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	libFile := s.InsertFilePath("lib/util.go")

	_, err := s.RegisterSymbol(Symbol{Name: "Helper", Kind: KindFunction, FileID: libFile, FileVersion: 1, Range: testRangeAtRow(1)})
	require.NoError(t, err)

	imp := importer.NewImport("u", "lib")
	s.RegisterImport("app", imp)

	sym, err := s.FindSymbol("app/main.go", "u", "Helper")
	require.NoError(t, err)
	assert.Equal(t, "Helper", sym.Name)
}

func TestStore_FindFnSymbol_DedupsBySignatureIgnoringNames(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	fileID := s.InsertFilePath("pkg/a.go")

	intSym, err := s.RegisterSymbol(Symbol{Name: "int", Kind: KindPlaceholder, FileID: fileID, FileVersion: -1, Range: testRangeAtRow(0)})
	require.NoError(t, err)
	strSym, err := s.RegisterSymbol(Symbol{Name: "string", Kind: KindPlaceholder, FileID: fileID, FileVersion: -1, Range: testRangeAtRow(0)})
	require.NoError(t, err)

	paramA := s.Symbols.CreateNewSymbolWith(Symbol{Name: "a", Kind: KindField, ReturnSym: intSym})
	fn := s.Symbols.CreateNewSymbolWith(Symbol{Name: "#anon_1", Kind: KindFunctionType, Children: []int64{paramA}, ReturnSym: strSym})
	s.Symbols.AddSymbolToModule("pkg", fn)

	paramB := s.Symbols.CreateNewSymbolWith(Symbol{Name: "b", Kind: KindField, ReturnSym: intSym})
	found, ok := s.FindFnSymbol("pkg", []int64{paramB}, strSym)
	require.True(t, ok)
	assert.Equal(t, fn, found.ID)

	paramC := s.Symbols.CreateNewSymbolWith(Symbol{Name: "c", Kind: KindField, ReturnSym: strSym})
	_, ok = s.FindFnSymbol("pkg", []int64{paramC}, strSym)
	assert.False(t, ok, "different parameter return_sym should not match")
}

func TestStore_FindFnSymbol_UnwrapsTypedefOverFunctionType(t *testing.T) {
	t.Parallel()
	s := newTestStore()

	fn := s.Symbols.CreateNewSymbolWith(Symbol{Name: "#anon_1", Kind: KindFunctionType, ReturnSym: VoidSymID})
	td := s.Symbols.CreateNewSymbolWith(Symbol{Name: "Callback", Kind: KindTypedef, Parent: fn})
	s.Symbols.AddSymbolToModule("pkg", td)

	found, ok := s.FindFnSymbol("pkg", nil, VoidSymID)
	require.True(t, ok)
	assert.Equal(t, fn, found.ID)
}

func TestStore_HasDependents_AndDependencyDirs(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	s.AddDependency("app", "lib")

	assert.True(t, s.HasDependents("lib"))
	assert.False(t, s.HasDependents("app"))
	assert.Equal(t, []string{"lib"}, s.DependencyDirs("app"))
}

func TestStore_HasDependents_ExcludedDependentIsIgnored(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	s.AddDependency("app", "lib")

	assert.False(t, s.HasDependents("lib", "app"))
}

func TestStore_Delete_NoopWhenHeldByAutoImport(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	fileID := s.InsertFilePath("builtin/prim.go")
	s.RegisterAutoImport("builtin", "builtin")
	id, err := s.RegisterSymbol(Symbol{Name: "int", Kind: KindPlaceholder, FileID: fileID, FileVersion: -1, Range: testRangeAtRow(0)})
	require.NoError(t, err)

	s.Delete("builtin")

	assert.False(t, s.Symbols.GetInfo(id).IsVoid())
	assert.Contains(t, s.Symbols.ModuleSymbols("builtin"), id)
}

func TestStore_Delete_NoopWhenHasExternalDependents(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	fileID := s.InsertFilePath("lib/a.go")
	id, err := s.RegisterSymbol(Symbol{Name: "Foo", Kind: KindFunction, FileID: fileID, FileVersion: 1, Range: testRangeAtRow(1)})
	require.NoError(t, err)
	s.AddDependency("app", "lib")

	s.Delete("lib")

	assert.False(t, s.Symbols.GetInfo(id).IsVoid())
}

func TestStore_Delete_DependencyCycleTerminatesAsNoop(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	aFile := s.InsertFilePath("a/x.go")
	bFile := s.InsertFilePath("b/y.go")
	aID, err := s.RegisterSymbol(Symbol{Name: "A", Kind: KindStruct, FileID: aFile, FileVersion: 1, Range: testRangeAtRow(1)})
	require.NoError(t, err)
	bID, err := s.RegisterSymbol(Symbol{Name: "B", Kind: KindStruct, FileID: bFile, FileVersion: 1, Range: testRangeAtRow(1)})
	require.NoError(t, err)

	// a depends on b, b depends on a: a cycle that must terminate. b still
	// depends on a, so deleting a leaves both modules in place.
	s.AddDependency("a", "b")
	s.AddDependency("b", "a")

	s.Delete("a")

	assert.Contains(t, s.Symbols.ModuleSymbols("a"), aID)
	assert.Contains(t, s.Symbols.ModuleSymbols("b"), bID)
	_ = aID
	_ = bID
}

func TestStore_RegisterBindedSymbolAndBaseSymbolLocation(t *testing.T) {
	t.Parallel()
	s := newTestStore()

	s.RegisterBindedSymbol("C.size_t", "c/types")
	loc, ok := s.BindedSymbolLocation("C.size_t")
	require.True(t, ok)
	assert.Equal(t, "c/types", loc)

	s.RegisterBaseSymbolLocation("mod", "Result", KindResult, "builtin/result")
	loc, ok = s.BaseSymbolLocation("mod", "Result", KindResult)
	require.True(t, ok)
	assert.Equal(t, "builtin/result", loc)

	_, ok = s.BaseSymbolLocation("mod", "Result", KindOptional)
	assert.False(t, ok)
}

func TestStore_NextAnonName_IsSequentialStartingAtOne(t *testing.T) {
	t.Parallel()
	s := newTestStore()

	assert.Equal(t, "#anon_1", s.NextAnonName())
	assert.Equal(t, "#anon_2", s.NextAnonName())
}

func TestStore_IsModuleAndIsImported(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	fileID := s.InsertFilePath("lib/a.go")
	_, err := s.RegisterSymbol(Symbol{Name: "Foo", Kind: KindFunction, FileID: fileID, FileVersion: 1, Range: testRangeAtRow(1)})
	require.NoError(t, err)

	assert.True(t, s.IsModule("lib"))
	assert.False(t, s.IsModule("nowhere"))

	imp := importer.NewImport("lib", "lib")
	s.RegisterImport("app", imp)
	assert.True(t, s.IsImported("lib"))
	assert.False(t, s.IsImported("elsewhere"))
}

func TestRequestContext_RegisterSymbol_AutofillsFileAndVersion(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	fileID := s.InsertFilePath("pkg/a.go")
	rc := s.With(fileID, 7)

	id, err := rc.RegisterSymbol(Symbol{Name: "Foo", Kind: KindFunction, Range: testRangeAtRow(1)})
	require.NoError(t, err)

	got := s.Symbols.GetInfo(id)
	assert.Equal(t, fileID, got.FileID)
	assert.Equal(t, int64(7), got.FileVersion)
}

func TestRequestContext_RegisterSymbol_KeepsExplicitOverrides(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	fileID := s.InsertFilePath("pkg/a.go")
	otherFileID := s.InsertFilePath("pkg/b.go")
	rc := s.With(fileID, 7)

	id, err := rc.RegisterSymbol(Symbol{Name: "Foo", Kind: KindFunction, FileID: otherFileID, FileVersion: 9, Range: testRangeAtRow(1)})
	require.NoError(t, err)

	got := s.Symbols.GetInfo(id)
	assert.Equal(t, otherFileID, got.FileID)
	assert.Equal(t, int64(9), got.FileVersion)
}

func TestRequestContext_GetScope_OpensFileRootScope(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	fileID := s.InsertFilePath("pkg/a.go")
	rc := s.With(fileID, 1)
	root := ast.NewSynth("source_file", "").WithRange(testRangeBytes(0, 100))

	scopeID := rc.GetScope("pkg/a.go", root, true)

	got, ok := s.Scopes.RootScope(fileID)
	require.True(t, ok)
	assert.Equal(t, got, scopeID)
}

func TestRequestContext_FindSymbol_DelegatesToStore(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	s.BootstrapBuiltins()
	fileID := s.InsertFilePath("pkg/a.go")
	rc := s.With(fileID, 1)

	sym, err := rc.FindSymbol("pkg/a.go", "", "int")
	require.NoError(t, err)
	assert.Equal(t, "int", sym.Name)
}

func TestStore_GetSymbolsByFilePath_ReturnsOnlyThatFilesSymbols(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	aFile := s.InsertFilePath("pkg/a.go")
	bFile := s.InsertFilePath("pkg/b.go")

	idA, err := s.RegisterSymbol(Symbol{Name: "A", Kind: KindFunction, FileID: aFile, FileVersion: 1, Range: testRangeAtRow(1)})
	require.NoError(t, err)
	_, err = s.RegisterSymbol(Symbol{Name: "B", Kind: KindFunction, FileID: bFile, FileVersion: 1, Range: testRangeAtRow(1)})
	require.NoError(t, err)

	ids := s.GetSymbolsByFilePath("pkg/a.go")
	assert.Equal(t, []int64{idA}, ids)
}
