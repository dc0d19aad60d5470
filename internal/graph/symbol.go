package graph

import (
	"fmt"

	"github.com/vlang-tools/semgraph/internal/ast"
)

// VoidSymID is the sentinel id denoting "no symbol" (§3: "Id -1 is the
// sentinel void_sym").
const VoidSymID int64 = -1

// EmptyScopeID is the sentinel scope id carried by top-level symbols, which
// have no owning lexical scope.
const EmptyScopeID int64 = -1

// Symbol is one semantic entity: a type, function, field, or variable.
// Its id is stable for the life of the Store — it is the symbol's index in
// the SymbolManager's arena, never reused even after the symbol becomes
// unreachable (§3 Ownership/Lifecycle).
//
// parent and return_sym are overloaded across kinds (§3 "Roles overloaded"):
// parent is the original type of a typedef, the receiver type of a method,
// or the inner type of ref/optional/result/chan; return_sym is the return
// type of a function or the declared type of a variable/field. children is
// similarly overloaded: type-parameters, function parameters, struct/
// interface members, enum variants, or multi-return components.
type Symbol struct {
	ID     int64
	Name   string
	Kind   SymbolKind
	Access AccessKind
	Range  ast.Range

	Language Language

	IsTopLevel            bool
	IsConst               bool
	GenericPlaceholderLen int
	InterfaceChildrenLen  int

	FileID      int
	FileVersion int64
	Scope       int64

	Docstrings []string

	Parent    int64 // symbol id, or VoidSymID
	ReturnSym int64 // symbol id, or VoidSymID
	Children  []int64
}

// VoidSym is the canonical absent-symbol value returned by lookups that miss.
var VoidSym = Symbol{ID: VoidSymID, Kind: KindVoid, Parent: VoidSymID, ReturnSym: VoidSymID, Scope: EmptyScopeID}

// IsVoid reports whether sym is the void sentinel (by kind, not only by id —
// a caller-constructed zero Symbol with Kind: KindVoid is void too).
func (s Symbol) IsVoid() bool { return s.Kind == KindVoid }

// SymbolLoader is the capability set §9 requires of anything that wants to
// render a Symbol or ScopeTree without reaching into the arena directly —
// "debug_str / get_children / get_return requiring get_info(id),
// get_infos(ids), find_symbol_by_name, get_symbol_name(s), get_symbol_range(id)".
// SymbolManager is the production implementation; tests may substitute a fake.
type SymbolLoader interface {
	GetInfo(id int64) Symbol
	GetInfos(ids []int64) []Symbol
	FindSymbolByName(ids []int64, name string) (Symbol, int, bool)
	SymbolName(id int64) string
	SymbolRange(id int64) ast.Range
}

// GetChildren resolves s.Children through loader, in declaration order.
func (s Symbol) GetChildren(loader SymbolLoader) []Symbol {
	return loader.GetInfos(s.Children)
}

// GetReturn resolves s.ReturnSym through loader — the return type of a
// function or the declared type of a variable/field, void if unset.
func (s Symbol) GetReturn(loader SymbolLoader) Symbol {
	return loader.GetInfo(s.ReturnSym)
}

// GetParent resolves s.Parent through loader — the original type of a
// typedef, the receiver type of a method, or the inner type of a ref/
// optional/result/chan, void if unset.
func (s Symbol) GetParent(loader SymbolLoader) Symbol {
	return loader.GetInfo(s.Parent)
}

// DebugString renders a one-line human-readable summary of s, resolving its
// parent/return type names through loader — grounded on cmd/canopy's
// format.go tabular symbol rendering, collapsed to a single line for hover
// text instead of a table row.
func (s Symbol) DebugString(loader SymbolLoader) string {
	if s.IsVoid() {
		return "<void>"
	}
	name := s.Name
	if name == "" {
		name = "<anonymous>"
	}
	desc := fmt.Sprintf("%s %s", s.Kind, name)
	if ret := s.GetReturn(loader); !ret.IsVoid() {
		desc += fmt.Sprintf(" -> %s", loader.SymbolName(ret.ID))
	}
	if parent := s.GetParent(loader); !parent.IsVoid() {
		desc += fmt.Sprintf(" (of %s)", loader.SymbolName(parent.ID))
	}
	return desc
}

// SymbolManager is the arena of every Symbol across every module in the
// workspace, plus the per-module name index used to resolve references.
// Grounded on internal/store's InsertSymbol/SymbolsByFile/SymbolsByName
// family in the teacher repo, collapsed from SQL rows onto a plain slice.
type SymbolManager struct {
	symbols       []Symbol
	moduleSymbols map[string][]int64
}

// NewSymbolManager returns an empty arena.
func NewSymbolManager() *SymbolManager {
	return &SymbolManager{moduleSymbols: make(map[string][]int64)}
}

// IsValidID reports whether id addresses a live arena slot.
func (m *SymbolManager) IsValidID(id int64) bool {
	return id >= 0 && id < int64(len(m.symbols))
}

// Count returns the number of symbols ever created (the arena never
// shrinks, so this is also one past the highest valid id).
func (m *SymbolManager) Count() int64 {
	return int64(len(m.symbols))
}

// GetInfo returns a copy of the symbol at id, or VoidSym if id is invalid.
func (m *SymbolManager) GetInfo(id int64) Symbol {
	if !m.IsValidID(id) {
		return VoidSym
	}
	return m.symbols[id]
}

// GetInfos returns copies of every symbol named by ids, skipping invalid ones.
func (m *SymbolManager) GetInfos(ids []int64) []Symbol {
	out := make([]Symbol, 0, len(ids))
	for _, id := range ids {
		if m.IsValidID(id) {
			out = append(out, m.symbols[id])
		}
	}
	return out
}

// SymbolName returns the name of the symbol at id, or "" if invalid.
func (m *SymbolManager) SymbolName(id int64) string {
	return m.GetInfo(id).Name
}

// SymbolRange returns the range of the symbol at id, or the zero Range.
func (m *SymbolManager) SymbolRange(id int64) ast.Range {
	return m.GetInfo(id).Range
}

// GetInfoByName linearly scans module_symbols[modulePath] for a symbol
// named name, returning VoidSym if none match.
func (m *SymbolManager) GetInfoByName(modulePath, name string) Symbol {
	for _, id := range m.moduleSymbols[modulePath] {
		if m.IsValidID(id) && m.symbols[id].Name == name {
			return m.symbols[id]
		}
	}
	return VoidSym
}

// FindSymbolByName scans the given id list for a symbol named name, skipping
// invalid ids. Returns the symbol, its position within ids, and whether a
// match was found.
func (m *SymbolManager) FindSymbolByName(ids []int64, name string) (Symbol, int, bool) {
	for i, id := range ids {
		if !m.IsValidID(id) {
			continue
		}
		if m.symbols[id].Name == name {
			return m.symbols[id], i, true
		}
	}
	return VoidSym, -1, false
}

// findByFileRow scans module_symbols[modulePath] for a symbol at the given
// file_id/start_row — used by register_symbol to detect identifier renames
// at the same source row (§4.1 step 3, §8 "Rename-at-same-row law").
func (m *SymbolManager) findByFileRow(modulePath string, fileID, startRow int) (Symbol, bool) {
	for _, id := range m.moduleSymbols[modulePath] {
		if !m.IsValidID(id) {
			continue
		}
		sym := m.symbols[id]
		if sym.FileID == fileID && sym.Range.StartPoint.Row == startRow {
			return sym, true
		}
	}
	return VoidSym, false
}

// GetSymbolsByFileID returns the ids of every top-level symbol in
// modulePath whose file_id matches fileID, plus every descendant reachable
// through children whose file_id also matches, de-duplicated by name at
// each level of the recursion (mirrors the teacher's filter_by_file_id
// walker referenced in §4.1).
func (m *SymbolManager) GetSymbolsByFileID(modulePath string, fileID int) []int64 {
	var out []int64
	seen := make(map[string]bool)
	for _, id := range m.moduleSymbols[modulePath] {
		if !m.IsValidID(id) || m.symbols[id].FileID != fileID {
			continue
		}
		if seen[m.symbols[id].Name] {
			continue
		}
		seen[m.symbols[id].Name] = true
		out = append(out, id)
		out = append(out, m.collectChildrenByFileID(id, fileID)...)
	}
	return out
}

func (m *SymbolManager) collectChildrenByFileID(id int64, fileID int) []int64 {
	var out []int64
	seen := make(map[string]bool)
	for _, childID := range m.GetInfo(id).Children {
		if !m.IsValidID(childID) || m.symbols[childID].FileID != fileID {
			continue
		}
		if seen[m.symbols[childID].Name] {
			continue
		}
		seen[m.symbols[childID].Name] = true
		out = append(out, childID)
		out = append(out, m.collectChildrenByFileID(childID, fileID)...)
	}
	return out
}

// CreateNewSymbolWith appends info to the arena and returns its new id; the
// stored copy's ID field is set to that id before returning.
func (m *SymbolManager) CreateNewSymbolWith(info Symbol) int64 {
	id := int64(len(m.symbols))
	info.ID = id
	m.symbols = append(m.symbols, info)
	return id
}

// AddSymbolToModule appends id to module_symbols[path] with no deduplication:
// callers that bypass the name-index path in RegisterSymbol are responsible
// for not double-adding.
func (m *SymbolManager) AddSymbolToModule(path string, id int64) {
	m.moduleSymbols[path] = append(m.moduleSymbols[path], id)
}

// ModuleSymbols returns the live id list for a module, for callers (Store,
// tests) that need direct access without copying.
func (m *SymbolManager) ModuleSymbols(path string) []int64 {
	return m.moduleSymbols[path]
}

// setChildren overwrites the children of id in place. Used by
// Store.removeChildByName to drop a deleted method from its parent's
// children list.
func (m *SymbolManager) setChildren(id int64, children []int64) {
	if m.IsValidID(id) {
		m.symbols[id].Children = children
	}
}

// AddChild appends childID to id's children, rejecting the append if a
// child with the same name already exists (§3 "children names are unique
// within a symbol unless registered via add_child_allow_duplicated").
func (m *SymbolManager) AddChild(id, childID int64) {
	if !m.IsValidID(id) || !m.IsValidID(childID) {
		return
	}
	name := m.symbols[childID].Name
	for _, c := range m.symbols[id].Children {
		if m.IsValidID(c) && m.symbols[c].Name == name {
			return
		}
	}
	m.symbols[id].Children = append(m.symbols[id].Children, childID)
}

// SetInterfaceChildrenLen records how many method signatures an interface
// symbol's body declared, for callers (the walker) that count them outside
// the arena and need to publish the count onto the symbol afterward.
func (m *SymbolManager) SetInterfaceChildrenLen(id int64, n int) {
	if m.IsValidID(id) {
		m.symbols[id].InterfaceChildrenLen = n
	}
}

// AddChildAllowDuplicated appends childID to id's children without the
// uniqueness check — used only for container type-params (§3).
func (m *SymbolManager) AddChildAllowDuplicated(id, childID int64) {
	if !m.IsValidID(id) || !m.IsValidID(childID) {
		return
	}
	m.symbols[id].Children = append(m.symbols[id].Children, childID)
}

// updateSymbol copies every field of info onto the existing symbol at id
// except id, IsTopLevel, and IsConst, which are preserved from the existing
// record (§4.2 "preserves id, is_top_level, is_const").
func (m *SymbolManager) updateSymbol(id int64, info Symbol) {
	if !m.IsValidID(id) {
		return
	}
	existing := m.symbols[id]
	info.ID = existing.ID
	info.IsTopLevel = existing.IsTopLevel
	info.IsConst = existing.IsConst
	m.symbols[id] = info
}

// UpdateModuleSymbol applies the module-level update policy (§4.2): it
// rejects the update with a *ConflictError when the existing symbol's kind
// is not placeholder AND either a same-file later-row redeclaration
// ("defined_latter") or a same-kind/same-file stale re-registration
// ("not_symbol_update") is detected. Otherwise it updates in place.
func (m *SymbolManager) UpdateModuleSymbol(id int64, info Symbol) error {
	if !m.IsValidID(id) {
		return nil
	}
	existing := m.symbols[id]
	if existing.Kind != KindPlaceholder {
		definedLatter := existing.FileID == info.FileID && info.Range.StartPoint.Row > existing.Range.StartPoint.Row
		notSymbolUpdate := existing.Kind == info.Kind && existing.FileID == info.FileID && existing.FileVersion >= info.FileVersion
		if definedLatter {
			return &ConflictError{Reason: "defined_latter", Range: info.Range, Existing: existing, Proposed: info}
		}
		if notSymbolUpdate {
			return &ConflictError{Reason: "not_symbol_update", Range: info.Range, Existing: existing, Proposed: info}
		}
	}
	m.updateSymbol(id, info)
	return nil
}

// updateLocalSymbolFields copies only the local subset of fields — name,
// access, range, file_id, file_version, return_sym — leaving kind, parent,
// children, and scope untouched, because local scope symbols never change
// those dimensions (§4.2).
func (m *SymbolManager) updateLocalSymbolFields(id int64, info Symbol) {
	existing := &m.symbols[id]
	existing.Name = info.Name
	existing.Access = info.Access
	existing.Range = info.Range
	existing.FileID = info.FileID
	existing.FileVersion = info.FileVersion
	existing.ReturnSym = info.ReturnSym
}

// UpdateLocalSymbol applies the local-symbol update policy (§4.2): rejects
// with a *ConflictError when the existing symbol's file_version is already
// at or ahead of info's (a stale re-registration), otherwise updates the
// local field subset in place.
func (m *SymbolManager) UpdateLocalSymbol(id int64, info Symbol) error {
	if !m.IsValidID(id) {
		return nil
	}
	existing := m.symbols[id]
	if existing.FileVersion >= info.FileVersion {
		return &ConflictError{Reason: "stale_local_update", Range: info.Range, Existing: existing, Proposed: info}
	}
	m.updateLocalSymbolFields(id, info)
	return nil
}
