package ast

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// sitterNode adapts a *sitter.Node from a real tree-sitter parse to the Node
// contract. Grounded on internal/runtime/languages.go's use of
// github.com/smacker/go-tree-sitter in the teacher repo: there the grammars
// back a Risor-scripted extraction step; here they back this package's own
// Go-typed walker directly, with no scripting layer in between.
type sitterNode struct {
	n *sitter.Node
}

// WrapSitterNode adapts a non-nil *sitter.Node into the Node contract.
// A nil node or one that reports ts.IsNull() adapts to ast.Null.
func WrapSitterNode(n *sitter.Node) Node {
	if n == nil || n.IsNull() {
		return Null
	}
	return sitterNode{n: n}
}

func (s sitterNode) IsNull() bool { return s.n == nil || s.n.IsNull() }

func (s sitterNode) TypeName() string { return s.n.Type() }

func (s sitterNode) StartByte() int { return int(s.n.StartByte()) }

func (s sitterNode) EndByte() int { return int(s.n.EndByte()) }

func (s sitterNode) Range() Range {
	sp := s.n.StartPoint()
	ep := s.n.EndPoint()
	return Range{
		StartByte:  int(s.n.StartByte()),
		EndByte:    int(s.n.EndByte()),
		StartPoint: Point{Row: int(sp.Row), Column: int(sp.Column)},
		EndPoint:   Point{Row: int(ep.Row), Column: int(ep.Column)},
	}
}

func (s sitterNode) NamedChild(i int) Node {
	if i < 0 || i >= int(s.n.NamedChildCount()) {
		return Null
	}
	return WrapSitterNode(s.n.NamedChild(i))
}

func (s sitterNode) NamedChildCount() int { return int(s.n.NamedChildCount()) }

func (s sitterNode) ChildByFieldName(name string) Node {
	return WrapSitterNode(s.n.ChildByFieldName(name))
}

func (s sitterNode) Text(src SourceText) string {
	return s.n.Content(src.Bytes())
}

func (s sitterNode) Parent() Node {
	return WrapSitterNode(s.n.Parent())
}
