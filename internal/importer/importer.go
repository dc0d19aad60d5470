// Package importer is the concrete shape of the "importer / dependency
// graph walker" external collaborator described in §6: it hands the Store
// Import records and module load order, but does not itself decide module
// resolution policy. Grounded on the teacher's engine.go IndexDirectory/
// IndexFiles pipeline, which plays the analogous "hands the store file
// records in load order" role for canopy, reworked here from a filesystem
// walk over source files into an import-statement registry.
package importer

import "github.com/vlang-tools/semgraph/internal/ast"

// Import mirrors §6's consumed Import contract exactly: one declared
// import, keyed by the module name it was imported under, recording per
// declaring-file aliases, selectively-imported symbol names, and the
// source ranges of the import statement(s) that brought it in.
type Import struct {
	ModuleName string
	Path       string
	Aliases    map[string]map[string]string      // file_name -> alias -> original
	Symbols    map[string]map[string]struct{}     // file_name -> set of selectively-imported names
	Ranges     map[string][]ast.Range             // file_name -> import-statement ranges
}

// NewImport returns an Import with its maps initialized.
func NewImport(moduleName, path string) *Import {
	return &Import{
		ModuleName: moduleName,
		Path:       path,
		Aliases:    make(map[string]map[string]string),
		Symbols:    make(map[string]map[string]struct{}),
		Ranges:     make(map[string][]ast.Range),
	}
}

// AddUse records that fileName imported this module at r, under the given
// alias (original == alias when unaliased) and, if names is non-empty,
// selectively importing exactly those symbol names.
func (im *Import) AddUse(fileName string, r ast.Range, alias, original string, names []string) {
	im.Ranges[fileName] = append(im.Ranges[fileName], r)
	if alias != "" {
		if im.Aliases[fileName] == nil {
			im.Aliases[fileName] = make(map[string]string)
		}
		im.Aliases[fileName][alias] = original
	}
	if len(names) > 0 {
		set := im.Symbols[fileName]
		if set == nil {
			set = make(map[string]struct{})
			im.Symbols[fileName] = set
		}
		for _, n := range names {
			set[n] = struct{}{}
		}
	}
}

// StoreTarget is the subset of Store's mutation surface the importer
// drives. Declared here instead of importing internal/graph, so importer
// has no dependency on graph and graph's import of importer.Import stays
// one-directional.
type StoreTarget interface {
	RegisterAutoImport(moduleName, dir string)
	RegisterImport(dir string, imp *Import)
}

// RegisterBuiltin calls RegisterAutoImport for the builtin module, as §6
// requires every importer implementation to do "at minimum" on bootstrap:
// "builtin" aliased to the empty path, so unqualified lookups for
// primitive types fall through to the workspace root module.
func RegisterBuiltin(store StoreTarget) {
	store.RegisterAutoImport("builtin", "")
}

// Registry accumulates Import records for one directory as its files are
// parsed, then hands them to the store in one batch via Flush — grounded
// on engine.go's per-directory indexing pass, which likewise collects
// before committing.
type Registry struct {
	dir     string
	imports map[string]*Import // module_name -> Import
}

// NewRegistry returns a Registry for the given declaring directory.
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir, imports: make(map[string]*Import)}
}

// Use records one import statement: fileName imported moduleName
// (resolved to modulePath) at range r, optionally aliased and/or
// selectively importing names.
func (reg *Registry) Use(fileName, moduleName, modulePath string, r ast.Range, alias, original string, names []string) {
	imp, ok := reg.imports[moduleName]
	if !ok {
		imp = NewImport(moduleName, modulePath)
		reg.imports[moduleName] = imp
	}
	imp.AddUse(fileName, r, alias, original, names)
}

// Flush registers every accumulated Import with store under the
// registry's declaring directory.
func (reg *Registry) Flush(store StoreTarget) {
	for _, imp := range reg.imports {
		store.RegisterImport(reg.dir, imp)
	}
}
