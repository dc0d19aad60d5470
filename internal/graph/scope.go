package graph

import "fmt"

// ScopeTree is a byte-range lexical region. It owns an ordered list of
// child scope ids and an ordered list of locally-declared symbol ids.
// Grounded on internal/store's Scope/ScopeChain pair in the teacher repo,
// reworked from a parent_scope_id foreign key walk into an in-memory tree.
type ScopeTree struct {
	ID        int64
	ParentID  int64 // VoidSymID if this is a file root scope
	FileID    int
	Children  []int64
	Symbols   []int64
	StartByte int
	EndByte   int
}

// Contains reports whether byte position p falls within the scope's span.
func (s ScopeTree) Contains(p int) bool {
	return s.StartByte <= p && p <= s.EndByte
}

// ContainsRange reports whether [start, end] falls within the scope's span.
func (s ScopeTree) ContainsRange(start, end int) bool {
	return s.StartByte <= start && end <= s.EndByte
}

// voidScope is the sentinel empty ScopeTree returned by invalid lookups.
var voidScope = ScopeTree{ID: VoidSymID, ParentID: VoidSymID}

// GetLocals resolves s.Symbols through loader, in declaration order — the
// ScopeTree half of §9's "debug_str / get_children / get_return" loader
// abstraction, mirrored from Symbol.GetChildren.
func (s ScopeTree) GetLocals(loader SymbolLoader) []Symbol {
	return loader.GetInfos(s.Symbols)
}

// DebugString renders a one-line summary of s's span and local symbol
// count, resolving names through loader.
func (s ScopeTree) DebugString(loader SymbolLoader) string {
	if s.ID == VoidSymID {
		return "<void scope>"
	}
	locals := s.GetLocals(loader)
	names := make([]string, len(locals))
	for i, sym := range locals {
		names[i] = sym.Name
	}
	return fmt.Sprintf("scope[%d:%d] locals=%v", s.StartByte, s.EndByte, names)
}

// ScopeManager is the arena of every ScopeTree across every open file, plus
// the per-file root-scope index.
type ScopeManager struct {
	scopes    []ScopeTree
	fileRoots map[int]int64 // file_id -> root scope id
}

// NewScopeManager returns an empty arena.
func NewScopeManager() *ScopeManager {
	return &ScopeManager{fileRoots: make(map[int]int64)}
}

// IsValidID reports whether id addresses a live arena slot.
func (m *ScopeManager) IsValidID(id int64) bool {
	return id >= 0 && id < int64(len(m.scopes))
}

// Count returns the number of scopes ever created.
func (m *ScopeManager) Count() int64 {
	return int64(len(m.scopes))
}

// GetInfo returns a copy of the scope at id, or the void scope if invalid.
func (m *ScopeManager) GetInfo(id int64) ScopeTree {
	if !m.IsValidID(id) {
		return voidScope
	}
	return m.scopes[id]
}

// RootScope returns the root scope id for fileID and whether the file has
// been opened (has a root scope at all).
func (m *ScopeManager) RootScope(fileID int) (int64, bool) {
	id, ok := m.fileRoots[fileID]
	return id, ok
}

// createScope appends a new scope to the arena, wiring it as a child of
// parentID when parentID is valid.
func (m *ScopeManager) createScope(fileID int, parentID int64, startByte, endByte int) int64 {
	id := int64(len(m.scopes))
	m.scopes = append(m.scopes, ScopeTree{
		ID: id, ParentID: parentID, FileID: fileID,
		StartByte: startByte, EndByte: endByte,
	})
	if m.IsValidID(parentID) {
		m.scopes[parentID].Children = append(m.scopes[parentID].Children, id)
	}
	return id
}

// OpenFileRootScope creates or updates fileID's root scope to cover
// [startByte, endByte] — the file's whole source range. Idempotent: calling
// it again for the same file widens/narrows the existing root scope rather
// than creating a second one ("the root scope for a file exists iff the
// file has been opened", §3).
func (m *ScopeManager) OpenFileRootScope(fileID, startByte, endByte int) int64 {
	if id, ok := m.fileRoots[fileID]; ok {
		m.scopes[id].StartByte = startByte
		m.scopes[id].EndByte = endByte
		return id
	}
	id := m.createScope(fileID, VoidSymID, startByte, endByte)
	m.fileRoots[fileID] = id
	return id
}

// innermost walks from rootID down into whichever child's range contains
// [start, end], recursively, and returns the smallest (deepest) scope that
// does. rootID itself is returned when no child contains the range —
// callers are responsible for having verified rootID itself contains it
// (§4.3: "recursive descent into children ... returns the smallest; none
// if no child contains the range").
func (m *ScopeManager) innermost(rootID int64, start, end int) int64 {
	cur := rootID
	for {
		scope := m.GetInfo(cur)
		next := VoidSymID
		for _, childID := range scope.Children {
			child := m.GetInfo(childID)
			if child.ContainsRange(start, end) {
				next = childID
				break
			}
		}
		if next == VoidSymID {
			return cur
		}
		cur = next
	}
}

// Innermost is the public form of innermost anchored at a file's root
// scope; it reports ok=false if the file has no root scope yet or the root
// scope does not itself contain [start, end].
func (m *ScopeManager) Innermost(fileID, start, end int) (int64, bool) {
	root, ok := m.fileRoots[fileID]
	if !ok {
		return VoidSymID, false
	}
	if !m.GetInfo(root).ContainsRange(start, end) {
		return VoidSymID, false
	}
	return m.innermost(root, start, end), true
}

// GetScopeFromNode implements §4.3's scope-discovery rule. When isFileRoot
// is true, node is the file's top-level node and this call opens or
// resizes the file's root scope to node's range. Otherwise it walks from
// the file's existing root scope via innermost and either reuses the
// found scope (when its range does not strictly contain node's range — the
// node doesn't warrant its own scope) or creates a new child scope scoped
// exactly to node's range.
func (m *ScopeManager) GetScopeFromNode(fileID int, startByte, endByte int, isFileRoot bool) int64 {
	if isFileRoot {
		return m.OpenFileRootScope(fileID, startByte, endByte)
	}
	root, ok := m.fileRoots[fileID]
	if !ok {
		return m.OpenFileRootScope(fileID, startByte, endByte)
	}
	found := m.innermost(root, startByte, endByte)
	foundScope := m.GetInfo(found)
	if foundScope.StartByte < startByte || foundScope.EndByte > endByte {
		// foundScope strictly contains [startByte, endByte]: carve a child.
		return m.createScope(fileID, found, startByte, endByte)
	}
	return found
}

// RegisterSymbol implements §4.3's scope-local registration: if a symbol of
// the same name is already local to scopeID, it is updated via
// UpdateLocalSymbol; otherwise a new symbol is created and its id pushed
// into the scope's local symbol list. A scope grows leftward automatically
// when a newly registered local starts before the scope's current start.
func (m *ScopeManager) RegisterSymbol(symMgr *SymbolManager, scopeID int64, info Symbol) (int64, error) {
	if !m.IsValidID(scopeID) {
		return VoidSymID, nil
	}
	scope := &m.scopes[scopeID]
	if existing, idx, ok := symMgr.FindSymbolByName(scope.Symbols, info.Name); ok {
		_ = idx
		if err := symMgr.UpdateLocalSymbol(existing.ID, info); err != nil {
			return existing.ID, err
		}
		if info.Range.StartByte < scope.StartByte {
			scope.StartByte = info.Range.StartByte
		}
		return existing.ID, nil
	}
	info.Scope = scopeID
	id := symMgr.CreateNewSymbolWith(info)
	scope.Symbols = append(scope.Symbols, id)
	if info.Range.StartByte < scope.StartByte {
		scope.StartByte = info.Range.StartByte
	}
	return id, nil
}

// RemoveSymbolsByLine deletes local symbol ids from scopeID (and,
// recursively, its children in reverse order, so in-place deletion stays
// index-safe) whose range falls within [startLine, endLine]. A child scope
// that becomes fully empty (no symbols, no children) is unlinked from its
// parent. Returns true iff scopeID itself ends up with no symbols and no
// children.
func (m *ScopeManager) RemoveSymbolsByLine(symMgr *SymbolManager, scopeID int64, startLine, endLine int) bool {
	if !m.IsValidID(scopeID) {
		return true
	}
	scope := &m.scopes[scopeID]

	for i := len(scope.Children) - 1; i >= 0; i-- {
		childID := scope.Children[i]
		if m.RemoveSymbolsByLine(symMgr, childID, startLine, endLine) {
			scope.Children = append(scope.Children[:i], scope.Children[i+1:]...)
		}
	}

	kept := scope.Symbols[:0:0]
	for _, symID := range scope.Symbols {
		r := symMgr.SymbolRange(symID)
		if r.StartPoint.Row >= startLine && r.StartPoint.Row <= endLine {
			continue // removed
		}
		kept = append(kept, symID)
	}
	scope.Symbols = kept

	return len(scope.Symbols) == 0 && len(scope.Children) == 0
}

// GetSymbolsBefore starts at the innermost scope containing targetByte and
// walks up through parents to the file root, collecting every local symbol
// id whose range ends at or before targetByte.
func (m *ScopeManager) GetSymbolsBefore(symMgr *SymbolManager, fileID, targetByte int) []int64 {
	cur, ok := m.Innermost(fileID, targetByte, targetByte)
	if !ok {
		return nil
	}
	var out []int64
	for m.IsValidID(cur) {
		scope := m.GetInfo(cur)
		for _, symID := range scope.Symbols {
			if symMgr.SymbolRange(symID).EndByte <= targetByte {
				out = append(out, symID)
			}
		}
		cur = scope.ParentID
	}
	return out
}

// EvictFile drops fileID's root-scope index entry (used when a file is
// closed or its directory deleted). The arena slots themselves are left in
// place — dead, not reclaimed, matching the Symbol arena's own policy.
func (m *ScopeManager) EvictFile(fileID int) {
	delete(m.fileRoots, fileID)
}
