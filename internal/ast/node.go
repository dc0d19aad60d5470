// Package ast defines the contract this module expects from a parser. The
// concrete parser (tree-sitter, for the language this server targets) is an
// external collaborator per the design's scope: this package only fixes the
// shape of the nodes the walker and scope manager consume, plus two
// concrete implementations used to exercise that shape — sitterNode, a thin
// adapter over a real github.com/smacker/go-tree-sitter parse, and SynthNode,
// a hand-built tree for constructs the bundled grammars have no node for.
package ast

// Point is a (row, column) source position, zero-based like tree-sitter's.
type Point struct {
	Row    int
	Column int
}

// Range is a byte-range-plus-points span in a source file.
type Range struct {
	StartByte  int
	EndByte    int
	StartPoint Point
	EndPoint   Point
}

// Contains reports whether bytePos falls within the range, inclusive on both ends.
func (r Range) Contains(bytePos int) bool {
	return r.StartByte <= bytePos && bytePos <= r.EndByte
}

// ContainsRange reports whether other's byte span lies fully inside r's,
// inclusive on both ends, so equal spans count as contained. See
// StrictlyContains for the variant that excludes equal ranges.
func (r Range) ContainsRange(other Range) bool {
	return r.StartByte <= other.StartByte && other.EndByte <= r.EndByte
}

// StrictlyContains reports whether r contains other but is not equal to it.
func (r Range) StrictlyContains(other Range) bool {
	return r.ContainsRange(other) && r != other
}

// SourceText is the file content a Node's Text method reads from.
type SourceText interface {
	Len() int
	Bytes() []byte
}

// Source adapts a plain []byte into a SourceText.
type Source []byte

func (s Source) Len() int       { return len(s) }
func (s Source) Bytes() []byte  { return s }

// Node is the parser-produced AST node contract consumed by the
// type-inference walker, the scope manager, and symbol deletion. The closed
// set of TypeName() values this module dispatches on is documented next to
// each switch (see internal/infer/typenode.go and Store.DeleteSymbolAtNode).
type Node interface {
	IsNull() bool
	TypeName() string
	StartByte() int
	EndByte() int
	Range() Range
	NamedChild(i int) Node
	NamedChildCount() int
	ChildByFieldName(name string) Node
	Text(src SourceText) string
	Parent() Node
}

// Null is the canonical null Node, returned whenever a lookup (field, child
// index, parent) has nothing to offer. Every Node method on Null returns a
// zero-ish value; IsNull reports true.
var Null Node = nullNode{}

type nullNode struct{}

func (nullNode) IsNull() bool                        { return true }
func (nullNode) TypeName() string                     { return "" }
func (nullNode) StartByte() int                       { return 0 }
func (nullNode) EndByte() int                         { return 0 }
func (nullNode) Range() Range                         { return Range{} }
func (nullNode) NamedChild(i int) Node                { return Null }
func (nullNode) NamedChildCount() int                 { return 0 }
func (nullNode) ChildByFieldName(name string) Node    { return Null }
func (nullNode) Text(src SourceText) string           { return "" }
func (nullNode) Parent() Node                         { return Null }
