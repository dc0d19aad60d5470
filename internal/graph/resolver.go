package graph

import (
	"fmt"

	"github.com/vlang-tools/semgraph/internal/report"
)

// ResolutionInfo is one waiter blocked on an identifier becoming resolvable.
// index is this waiter's position in a tuple/multi-return it expects to
// project from; branch/branch_type describe the surrounding if/match/or for
// diagnostics (§4.4).
type ResolutionInfo struct {
	Index      int
	Branch     string
	BranchType string
	SymID      int64
	HasErr     bool
	ErrMsg     string
}

// Resolver maps an identifier key "${module_dir}/${symbol_name}" to the
// list of waiters blocked on it. Grounded on the teacher's deferred-wiring
// pattern of letting later inserts (InsertFile/InsertSymbol) settle foreign
// keys — reworked here into an explicit wake list instead of a database FK,
// since the target symbol may not exist yet when the waiter is registered.
type Resolver struct {
	waiters map[string][]ResolutionInfo
}

// NewResolver returns an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{waiters: make(map[string][]ResolutionInfo)}
}

// Register appends info as a new waiter under ident, unless a waiter with
// the same SymID is already registered under that key — in which case the
// caller should have updated the existing waiter, not registered a second
// one, and a *ResolverRegisterError is returned.
func (r *Resolver) Register(ident string, info ResolutionInfo) error {
	for _, w := range r.waiters[ident] {
		if w.SymID == info.SymID {
			return &ResolverRegisterError{Ident: ident, SymID: info.SymID}
		}
	}
	r.waiters[ident] = append(r.waiters[ident], info)
	return nil
}

// Waiters returns the current waiter list for ident (read-only use in tests).
func (r *Resolver) Waiters(ident string) []ResolutionInfo {
	return r.waiters[ident]
}

// ResolveWith wakes every waiter registered under ident now that depended
// has been (re)registered as the symbol that identifier denotes (§4.4).
// depended is first dereferenced through its return_sym when it is a
// returnable kind (variable/field/function) — a forward-referenced
// variable whose declared type is itself still pending resolves through to
// that type, not to the variable. Resolution is a no-op if the dereferenced
// symbol is void or never.
//
// For each non-errored waiter: if the waiter already has a return_sym set
// and it differs from depended, the waiter is marked as a type mismatch
// with a message naming its return-value position and branch; if depended
// is a multi_return, the waiter's index-th child is projected (an
// out-of-range index is itself a type-mismatch error); otherwise the
// waiter's return_sym is set to depended's id. Every waiter that resolves
// successfully is dropped from the list — only errored waiters remain, so a
// later compatible registration can recover them via Recover.
func (r *Resolver) ResolveWith(mgr *SymbolManager, ident string, dependedID int64) {
	depended := mgr.GetInfo(dependedID)
	if IsReturnable(depended.Kind) {
		depended = mgr.GetInfo(depended.ReturnSym)
	}
	if depended.Kind == KindVoid || depended.Kind == KindNever {
		return
	}

	waiters := r.waiters[ident]
	if len(waiters) == 0 {
		return
	}

	remaining := waiters[:0:0]
	for _, w := range waiters {
		if w.HasErr {
			remaining = append(remaining, w)
			continue
		}
		waiterSym := mgr.GetInfo(w.SymID)
		if waiterSym.ReturnSym != VoidSymID && waiterSym.ReturnSym != depended.ID {
			w.HasErr = true
			w.ErrMsg = fmt.Sprintf("type mismatch at return value #%d (%s %s): expected %s, got %s",
				w.Index+1, w.BranchType, w.Branch, mgr.SymbolName(waiterSym.ReturnSym), depended.Name)
			remaining = append(remaining, w)
			continue
		}
		if depended.Kind == KindMultiReturn {
			if w.Index < 0 || w.Index >= len(depended.Children) {
				w.HasErr = true
				w.ErrMsg = (&MultiReturnIndexError{Ident: ident, Index: w.Index, Len: len(depended.Children)}).Error()
				remaining = append(remaining, w)
				continue
			}
			waiterSym.ReturnSym = depended.Children[w.Index]
		} else {
			waiterSym.ReturnSym = depended.ID
		}
		mgr.updateSymbol(waiterSym.ID, waiterSym)
		// resolved: drop from remaining.
	}
	if len(remaining) == 0 {
		delete(r.waiters, ident)
	} else {
		r.waiters[ident] = remaining
	}
}

// Recover clears the error flag on every waiter under ident, making them
// eligible for resolution again on the next ResolveWith call.
func (r *Resolver) Recover(ident string) {
	ws := r.waiters[ident]
	for i := range ws {
		ws[i].HasErr = false
		ws[i].ErrMsg = ""
	}
}

// Report emits a diagnostic for every waiter whose symbol lives in fileID:
// its stored error if it has one, otherwise an unresolved-symbol notice if
// its return_sym is still void.
func (r *Resolver) Report(loader SymbolLoader, sink report.Sink, fileID int, path string) {
	for _, waiters := range r.waiters {
		for _, w := range waiters {
			sym := loader.GetInfo(w.SymID)
			if sym.FileID != fileID {
				continue
			}
			if w.HasErr {
				sink.Report(report.Report{
					Kind:     report.KindError,
					Message:  w.ErrMsg,
					Range:    sym.Range,
					FilePath: path,
				})
				continue
			}
			if sym.ReturnSym == VoidSymID {
				sink.Report(report.Report{
					Kind:     report.KindError,
					Message:  fmt.Sprintf("unresolved symbol %s", sym.Name),
					Range:    sym.Range,
					FilePath: path,
				})
			}
		}
	}
}
