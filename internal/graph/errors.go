package graph

import (
	"fmt"

	"github.com/vlang-tools/semgraph/internal/ast"
)

// ConflictError is the data-conflict error (§7) raised when the update
// policy in §4.2 refuses to overwrite an existing symbol.
type ConflictError struct {
	Reason   string
	Range    ast.Range
	Existing Symbol
	Proposed Symbol
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("data conflict registering %q: %s", e.Proposed.Name, e.Reason)
}

// ResolverRegisterError is returned by Resolver.Register when a waiter with
// the same sym_id already exists under ident — the caller should have
// called ResolveWith/update instead of registering a second waiter (§4.4).
type ResolverRegisterError struct {
	Ident string
	SymID int64
}

func (e *ResolverRegisterError) Error() string {
	return fmt.Sprintf("resolver: waiter for symbol %d already registered under %q", e.SymID, e.Ident)
}

// MultiReturnIndexError is the Resolver's type-mismatch-by-index error when
// a waiter's index falls outside the depended multi_return's children.
type MultiReturnIndexError struct {
	Ident string
	Index int
	Len   int
}

func (e *MultiReturnIndexError) Error() string {
	return fmt.Sprintf("resolver: index %d out of range for multi_return %q with %d members", e.Index, e.Ident, e.Len)
}
