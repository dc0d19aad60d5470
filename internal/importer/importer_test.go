package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vlang-tools/semgraph/internal/ast"
)

type fakeStore struct {
	autoImports map[string]string
	imports     map[string]*Import // dir + "/" + module name -> last registered Import
}

func newFakeStore() *fakeStore {
	return &fakeStore{autoImports: map[string]string{}, imports: map[string]*Import{}}
}

func (f *fakeStore) RegisterAutoImport(moduleName, dir string) {
	f.autoImports[moduleName] = dir
}

func (f *fakeStore) RegisterImport(dir string, imp *Import) {
	f.imports[dir+"/"+imp.ModuleName] = imp
}

func TestImport_AddUse_RecordsRangeAliasAndSelectiveNames(t *testing.T) {
	t.Parallel()
	imp := NewImport("strings", "strings")

	imp.AddUse("a.go", ast.Range{StartByte: 0, EndByte: 10}, "str", "strings", []string{"Join", "Split"})

	assert.Len(t, imp.Ranges["a.go"], 1)
	assert.Equal(t, "strings", imp.Aliases["a.go"]["str"])
	_, hasJoin := imp.Symbols["a.go"]["Join"]
	_, hasSplit := imp.Symbols["a.go"]["Split"]
	assert.True(t, hasJoin)
	assert.True(t, hasSplit)
}

func TestImport_AddUse_NoAliasOrNamesLeavesThoseMapsEmptyForFile(t *testing.T) {
	t.Parallel()
	imp := NewImport("strings", "strings")

	imp.AddUse("a.go", ast.Range{}, "", "", nil)

	assert.Len(t, imp.Ranges["a.go"], 1)
	assert.Empty(t, imp.Aliases["a.go"])
	assert.Empty(t, imp.Symbols["a.go"])
}

func TestImport_AddUse_AccumulatesMultipleRangesAcrossCalls(t *testing.T) {
	t.Parallel()
	imp := NewImport("strings", "strings")

	imp.AddUse("a.go", ast.Range{StartByte: 0}, "", "", nil)
	imp.AddUse("a.go", ast.Range{StartByte: 20}, "", "", nil)

	assert.Len(t, imp.Ranges["a.go"], 2)
}

func TestRegisterBuiltin_RegistersBuiltinAliasedToEmptyPath(t *testing.T) {
	t.Parallel()
	store := newFakeStore()

	RegisterBuiltin(store)

	assert.Equal(t, "", store.autoImports["builtin"])
}

func TestRegistry_Use_GroupsByModuleNameAcrossFiles(t *testing.T) {
	t.Parallel()
	reg := NewRegistry("app/sub")

	reg.Use("a.go", "strings", "strings", ast.Range{}, "", "", nil)
	reg.Use("b.go", "strings", "strings", ast.Range{}, "s", "strings", []string{"Join"})

	imp, ok := reg.imports["strings"]
	assert.True(t, ok)
	assert.Equal(t, "strings", imp.Path)
	assert.Len(t, imp.Ranges, 2)
	assert.Equal(t, "strings", imp.Aliases["b.go"]["s"])
}

func TestRegistry_Flush_RegistersEveryAccumulatedImportUnderDeclaringDir(t *testing.T) {
	t.Parallel()
	reg := NewRegistry("app/sub")
	reg.Use("a.go", "strings", "strings", ast.Range{}, "", "", nil)
	reg.Use("a.go", "fmt", "fmt", ast.Range{}, "", "", nil)
	store := newFakeStore()

	reg.Flush(store)

	_, hasStrings := store.imports["app/sub/strings"]
	_, hasFmt := store.imports["app/sub/fmt"]
	assert.True(t, hasStrings)
	assert.True(t, hasFmt)
}
