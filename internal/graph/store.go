package graph

import (
	"fmt"
	"path"
	"strings"

	"github.com/vlang-tools/semgraph/internal/ast"
	"github.com/vlang-tools/semgraph/internal/depgraph"
	"github.com/vlang-tools/semgraph/internal/importer"
	"github.com/vlang-tools/semgraph/internal/report"
)

// Store is the top-level coordinator: the file-path arena, the import
// tables, the binded/base symbol redirect tables, the module dependency
// tree, and the three managers (Symbols, Scopes, Resolver) they drive.
// Grounded on engine.go's Engine struct in the teacher repo — that type
// held a *store.Store plus a Risor runtime and indexing policy; this Store
// holds the in-memory managers directly and has no runtime to drive,
// since extraction here happens through Go code (the infer walker), not
// user scripts.
type Store struct {
	Symbols  *SymbolManager
	Scopes   *ScopeManager
	Resolver *Resolver

	filePaths    []string
	pathToFileID map[string]int

	imports     map[string][]*importer.Import // dir -> imports declared by files in dir
	autoImports map[string]string             // module_name -> dir

	bindedSymbolLocations map[string]string // binded name -> module path
	baseSymbolLocations   map[baseSymbolKey]string

	depGraph  *depgraph.Graph
	dirIDs    map[string]int64
	dirNames  map[int64]string
	nextDirID int64

	anonCounter int

	Sink report.Sink
}

type baseSymbolKey struct {
	ModuleName string
	SymbolName string
	ForKind    SymbolKind
}

// NewStore returns an empty store. sink receives diagnostics produced by
// the Resolver and by mutation methods that refuse to act; pass
// report.NewLogSink(nil) to get the teacher's plain log.Printf behavior.
func NewStore(sink report.Sink) *Store {
	return &Store{
		Symbols:               NewSymbolManager(),
		Scopes:                NewScopeManager(),
		Resolver:              NewResolver(),
		pathToFileID:          make(map[string]int),
		imports:               make(map[string][]*importer.Import),
		autoImports:           make(map[string]string),
		bindedSymbolLocations: make(map[string]string),
		baseSymbolLocations:   make(map[baseSymbolKey]string),
		depGraph:              depgraph.New(),
		dirIDs:                make(map[string]int64),
		dirNames:              make(map[int64]string),
		Sink:                  sink,
	}
}

// dirOf returns the directory component of a slash-separated path, using
// the stdlib's path package rather than path/filepath: paths here are
// virtual module paths, not OS filesystem paths, and must use "/" on every
// platform the language server runs on.
func dirOf(p string) string {
	return path.Dir(p)
}

// InsertFilePath appends path to the file-path arena, returning its
// file_id. Re-inserting an already-known path reuses its existing id
// rather than appending a duplicate ("Reuse is by value", §3).
func (s *Store) InsertFilePath(filePath string) int {
	if id, ok := s.pathToFileID[filePath]; ok {
		return id
	}
	id := len(s.filePaths)
	s.filePaths = append(s.filePaths, filePath)
	s.pathToFileID[filePath] = id
	return id
}

// FileCount returns one past the highest file_id ever inserted.
func (s *Store) FileCount() int {
	return len(s.filePaths)
}

// FilePath returns the path at file_id, or "" if invalid.
func (s *Store) FilePath(fileID int) string {
	if fileID < 0 || fileID >= len(s.filePaths) {
		return ""
	}
	return s.filePaths[fileID]
}

// HasFilePath reports whether filePath has been inserted into the arena.
func (s *Store) HasFilePath(filePath string) bool {
	_, ok := s.pathToFileID[filePath]
	return ok
}

// FileID returns the id of filePath and whether it has been inserted.
func (s *Store) FileID(filePath string) (int, bool) {
	id, ok := s.pathToFileID[filePath]
	return id, ok
}

// GetIdent computes the global identifier "${dir(file_path)}/${name}" used
// as the Resolver's key (§3 identifier-construction law).
func (s *Store) GetIdent(sym Symbol) string {
	return dirOf(s.FilePath(sym.FileID)) + "/" + sym.Name
}

// GetIdentOfSymbol is GetIdent for a symbol addressed by id.
func (s *Store) GetIdentOfSymbol(id int64) string {
	return s.GetIdent(s.Symbols.GetInfo(id))
}

// RegisterAutoImport records that module_name resolves, without an
// explicit import statement, to dir — the importer calls this for
// bootstrap modules, "at minimum builtin" (§6).
func (s *Store) RegisterAutoImport(moduleName, dir string) {
	s.autoImports[moduleName] = dir
}

// RegisterImport appends imp to the import list declared by files in dir.
func (s *Store) RegisterImport(dir string, imp *importer.Import) {
	s.imports[dir] = append(s.imports[dir], imp)
	s.AddDependency(dir, imp.Path)
}

// Imports returns the imports declared by files in dir.
func (s *Store) Imports(dir string) []*importer.Import {
	return s.imports[dir]
}

// IsModule reports whether dir has any registered symbols or imports —
// i.e. whether it behaves like a known module directory.
func (s *Store) IsModule(dir string) bool {
	return len(s.Symbols.ModuleSymbols(dir)) > 0 || len(s.imports[dir]) > 0
}

// IsImported reports whether any registered import's path equals dir.
func (s *Store) IsImported(dir string) bool {
	for _, imps := range s.imports {
		for _, imp := range imps {
			if imp.Path == dir {
				return true
			}
		}
	}
	return false
}

// RegisterBindedSymbol records that a foreign-language symbol (C.* / JS.*)
// lives in modulePath, per §3's binded_symbol_locations table.
func (s *Store) RegisterBindedSymbol(name, modulePath string) {
	s.bindedSymbolLocations[name] = modulePath
}

// BindedSymbolLocation looks up a previously-registered binded symbol.
func (s *Store) BindedSymbolLocation(name string) (string, bool) {
	p, ok := s.bindedSymbolLocations[name]
	return p, ok
}

// RegisterBaseSymbolLocation wires a derived-type redirect: lookups for
// (moduleName, symbolName) when constructing a symbol of forKind resolve
// through to modulePath's builtin base type instead (§3).
func (s *Store) RegisterBaseSymbolLocation(moduleName, symbolName string, forKind SymbolKind, modulePath string) {
	s.baseSymbolLocations[baseSymbolKey{moduleName, symbolName, forKind}] = modulePath
}

// BaseSymbolLocation looks up a redirect registered via RegisterBaseSymbolLocation.
func (s *Store) BaseSymbolLocation(moduleName, symbolName string, forKind SymbolKind) (string, bool) {
	p, ok := s.baseSymbolLocations[baseSymbolKey{moduleName, symbolName, forKind}]
	return p, ok
}

// baseSymbolNames is the canonical builtin symbol name BootstrapBuiltins
// registers for each derived kind base_symbol_locations redirects through
// (§3: []T -> array, map[K]V -> map, chan T -> chan, ?T -> IError).
var baseSymbolNames = map[SymbolKind]string{
	KindArray:    "array",
	KindMap:      "map",
	KindChan:     "chan",
	KindOptional: "IError",
}

// BaseSymbol resolves kind's base_symbol_locations redirect to the actual
// builtin placeholder symbol a field/method lookup should fall through to,
// e.g. an array-kind base redirects field lookups to the "array" symbol
// BootstrapBuiltins registered in builtinDir. Returns (VoidSym, false) for
// any kind with no registered redirect.
func (s *Store) BaseSymbol(forKind SymbolKind) (Symbol, bool) {
	name, ok := baseSymbolNames[forKind]
	if !ok {
		return VoidSym, false
	}
	modulePath, ok := s.BaseSymbolLocation("", "", forKind)
	if !ok {
		return VoidSym, false
	}
	sym := s.Symbols.GetInfoByName(modulePath, name)
	if sym.IsVoid() {
		return VoidSym, false
	}
	return sym, true
}

// NextAnonName returns the next "#anon_<n>" name for a synthesized
// anonymous function-type symbol, n starting at 1 (§6 "Special identifier
// conventions").
func (s *Store) NextAnonName() string {
	s.anonCounter++
	return fmt.Sprintf("#anon_%d", s.anonCounter)
}

// AddDependency records that the module at fromDir depends on toDir, for
// the dependency tree's has_dependents/GC walk (§3, §4.7).
func (s *Store) AddDependency(fromDir, toDir string) {
	s.depGraph.AddEdge(s.dirID(fromDir), s.dirID(toDir))
}

func (s *Store) dirID(dir string) int64 {
	if id, ok := s.dirIDs[dir]; ok {
		return id
	}
	id := s.nextDirID
	s.nextDirID++
	s.dirIDs[dir] = id
	s.dirNames[id] = dir
	return id
}

// HasDependents reports whether any module depends on dir, ignoring
// dependents listed in excluded (used to break cycles during deletion).
func (s *Store) HasDependents(dir string, excluded ...string) bool {
	id, ok := s.dirIDs[dir]
	if !ok {
		return false
	}
	skip := make(map[int64]bool, len(excluded))
	for _, e := range excluded {
		if eid, ok := s.dirIDs[e]; ok {
			skip[eid] = true
		}
	}
	for _, depID := range s.depGraph.Dependents(id) {
		if !skip[depID] {
			return true
		}
	}
	return false
}

// DependencyDirs returns the directories dir depends on.
func (s *Store) DependencyDirs(dir string) []string {
	id, ok := s.dirIDs[dir]
	if !ok {
		return nil
	}
	node := s.depGraph.GetNode(id)
	if node == nil {
		return nil
	}
	out := make([]string, 0, len(node.Dependencies()))
	for _, depID := range node.Dependencies() {
		out = append(out, s.dirNames[depID])
	}
	return out
}

func (s *Store) heldByAutoImports(dir string) bool {
	for _, d := range s.autoImports {
		if d == dir {
			return true
		}
	}
	return false
}

// Delete implements §4.7's deletion policy for module directory dir. It is
// a no-op if dir is held by auto_imports or still has dependents outside
// excluded; otherwise it recursively deletes dir's own dependencies
// (passing dir itself as newly excluded, so cycles terminate), then drops
// dir's dependency-tree node, module symbol index, and import records.
// Scope eviction for files under dir is the caller's responsibility (the
// editor-event handler), via ScopeManager.EvictFile.
func (s *Store) Delete(dir string, excluded ...string) {
	if s.heldByAutoImports(dir) {
		return
	}
	if s.HasDependents(dir, excluded...) {
		return
	}
	deps := s.DependencyDirs(dir)
	nextExcluded := make([]string, len(excluded)+1)
	copy(nextExcluded, excluded)
	nextExcluded[len(excluded)] = dir
	for _, d := range deps {
		s.Delete(d, nextExcluded...)
	}
	if id, ok := s.dirIDs[dir]; ok {
		s.depGraph.Delete(id)
		delete(s.dirIDs, dir)
		delete(s.dirNames, id)
	}
	delete(s.Symbols.moduleSymbols, dir)
	delete(s.imports, dir)
}

// FindSymbol implements §4.6's lookup resolution order.
func (s *Store) FindSymbol(filePath, moduleName, name string) (Symbol, error) {
	modulePath := s.resolveModulePath(filePath, moduleName)
	if sym := s.Symbols.GetInfoByName(modulePath, name); !sym.IsVoid() {
		return sym, nil
	}
	if moduleName == "" {
		// An unqualified reference checks every auto-imported directory
		// (at minimum builtin, §6) rather than one keyed by name, since
		// there is no module name here to key by.
		for _, dir := range s.autoImports {
			if sym := s.Symbols.GetInfoByName(dir, name); !sym.IsVoid() {
				return sym, nil
			}
		}
	} else if dir, ok := s.autoImports[moduleName]; ok {
		if sym := s.Symbols.GetInfoByName(dir, name); !sym.IsVoid() {
			return sym, nil
		}
	}
	if isBindedName(name) {
		if modPath, ok := s.bindedSymbolLocations[name]; ok {
			if sym := s.Symbols.GetInfoByName(modPath, name); !sym.IsVoid() {
				return sym, nil
			}
		}
	}
	fileDir := dirOf(filePath)
	fileName := path.Base(filePath)
	for _, imp := range s.imports[fileDir] {
		names, ok := imp.Symbols[fileName]
		if !ok {
			continue
		}
		if _, ok := names[name]; !ok {
			continue
		}
		if sym := s.Symbols.GetInfoByName(imp.Path, name); !sym.IsVoid() {
			return sym, nil
		}
	}
	return VoidSym, fmt.Errorf("symbol not found: %s", name)
}

func (s *Store) resolveModulePath(filePath, moduleName string) string {
	fileDir := dirOf(filePath)
	if moduleName != "" {
		for _, imp := range s.imports[fileDir] {
			if imp.ModuleName == moduleName {
				return imp.Path
			}
		}
	}
	return fileDir
}

func isBindedName(name string) bool {
	return strings.HasPrefix(name, "C.") || strings.HasPrefix(name, "JS.")
}

// FindFnSymbol dedups anonymous function-type symbols: it scans modulePath
// for a function_type symbol (unwrapping a typedef-over-function_type to
// the function_type it wraps) whose parameters and return type match
// params/retSym exactly (same arity, same return-sym ids, same parameter
// return-sym ids; names are not compared), per §4.6.
func (s *Store) FindFnSymbol(modulePath string, params []int64, retSym int64) (Symbol, bool) {
	for _, id := range s.Symbols.ModuleSymbols(modulePath) {
		sym := s.Symbols.GetInfo(id)
		if sym.Kind == KindTypedef {
			sym = s.Symbols.GetInfo(sym.Parent)
		}
		if sym.Kind != KindFunctionType {
			continue
		}
		if !s.sameSignature(sym, params, retSym) {
			continue
		}
		return sym, true
	}
	return VoidSym, false
}

func (s *Store) sameSignature(fn Symbol, params []int64, retSym int64) bool {
	if fn.ReturnSym != retSym {
		return false
	}
	if len(fn.Children) != len(params) {
		return false
	}
	for i, paramID := range fn.Children {
		param := s.Symbols.GetInfo(paramID)
		otherParam := s.Symbols.GetInfo(params[i])
		if param.ReturnSym != otherParam.ReturnSym {
			return false
		}
	}
	return true
}

// RegisterSymbol is the central entry point (§4.1).
func (s *Store) RegisterSymbol(info Symbol) (int64, error) {
	modulePath := dirOf(s.FilePath(info.FileID))

	candidate := s.Symbols.GetInfoByName(modulePath, info.Name)
	if candidate.IsVoid() && info.Kind != KindPlaceholder && !IsContainerKind(info.Kind) {
		if found, ok := s.Symbols.findByFileRow(modulePath, info.FileID, info.Range.StartPoint.Row); ok {
			candidate = found
		}
	}

	var id int64
	if !candidate.IsVoid() && info.Kind != KindTypedef && candidate.Kind != KindFunctionType {
		if err := s.Symbols.UpdateModuleSymbol(candidate.ID, info); err != nil {
			if s.Sink != nil {
				if ce, ok := err.(*ConflictError); ok {
					s.Sink.Report(report.Report{
						Kind:     report.KindError,
						Message:  ce.Error(),
						Range:    ce.Range,
						FilePath: s.FilePath(info.FileID),
					})
				}
			}
			return candidate.ID, err
		}
		id = candidate.ID
	} else {
		id = s.Symbols.CreateNewSymbolWith(info)
		s.Symbols.AddSymbolToModule(modulePath, id)
		if info.Language != LangTarget {
			s.RegisterBindedSymbol(info.Name, modulePath)
		}
	}

	final := s.Symbols.GetInfo(id)
	ident := s.GetIdent(final)
	s.Resolver.ResolveWith(s.Symbols, ident, id)
	return id, nil
}

// GetSymbolsByFilePath returns every symbol id registered under filePath.
func (s *Store) GetSymbolsByFilePath(filePath string) []int64 {
	fileID, ok := s.pathToFileID[filePath]
	if !ok {
		return nil
	}
	return s.Symbols.GetSymbolsByFileID(dirOf(filePath), fileID)
}

// GetScopeFromNode wraps ScopeManager.GetScopeFromNode for a node addressed
// by filePath, inserting filePath into the file-path arena if it is not
// there yet.
func (s *Store) GetScopeFromNode(filePath string, node ast.Node, isFileRoot bool) int64 {
	fileID := s.InsertFilePath(filePath)
	return s.Scopes.GetScopeFromNode(fileID, node.StartByte(), node.EndByte(), isFileRoot)
}

// With returns a RequestContext scoping subsequent calls to one file
// version — grounded on engine.go's practice of threading an indexing
// run's (file, hash) pair through every helper it calls.
func (s *Store) With(fileID int, fileVersion int64) *RequestContext {
	return &RequestContext{FileID: fileID, FileVersion: fileVersion, store: s}
}

// RequestContext is a per-request handle carrying the file being processed
// plus a back-reference to the owning Store (§6 "Produced / surface").
type RequestContext struct {
	FileID      int
	FileVersion int64
	store       *Store
}

// Store returns the owning Store.
func (rc *RequestContext) Store() *Store { return rc.store }

// RegisterSymbol registers info against the context's file/version when
// info doesn't already carry them, then delegates to Store.RegisterSymbol.
func (rc *RequestContext) RegisterSymbol(info Symbol) (int64, error) {
	if info.FileID == 0 && rc.FileID != 0 {
		info.FileID = rc.FileID
	}
	if info.FileVersion == 0 {
		info.FileVersion = rc.FileVersion
	}
	return rc.store.RegisterSymbol(info)
}

// GetScope opens or looks up node's scope against the owning Store, closing
// over rc the same way RegisterSymbol does — a thin pass-through kept on
// RequestContext so a walker holding only an rc never has to reach past it
// for this one call.
func (rc *RequestContext) GetScope(filePath string, node ast.Node, isFileRoot bool) int64 {
	return rc.store.GetScopeFromNode(filePath, node, isFileRoot)
}

// FindSymbol resolves name against the owning Store's §4.6 lookup order.
func (rc *RequestContext) FindSymbol(filePath, moduleName, name string) (Symbol, error) {
	return rc.store.FindSymbol(filePath, moduleName, name)
}
