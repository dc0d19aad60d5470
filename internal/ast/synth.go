package ast

// SynthNode is a hand-built Node used by tests to exercise AST shapes the
// bundled tree-sitter grammars have no node for — this target language's
// option_type (?T), result_type (!T), variadic_type (...T), and
// multi_return_type, none of which exist in Go's grammar. Unlike sitterNode
// it carries no real parser underneath; it is assembled directly in Go.
type SynthNode struct {
	Kind        string
	SourceSpan  Range
	NamedKids   []*SynthNode
	FieldKids   map[string]*SynthNode
	RawText     string
	ParentNode  *SynthNode
}

// NewSynth builds a childless SynthNode of the given kind with the given
// text. Children attached later through AddNamedChild or SetField get their
// parent pointer wired so Parent() works.
func NewSynth(kind, text string) *SynthNode {
	return &SynthNode{Kind: kind, RawText: text, FieldKids: map[string]*SynthNode{}}
}

// WithRange sets the node's span and returns the node for chaining.
func (n *SynthNode) WithRange(r Range) *SynthNode {
	n.SourceSpan = r
	return n
}

// AddNamedChild appends a named child and wires its parent pointer.
func (n *SynthNode) AddNamedChild(c *SynthNode) *SynthNode {
	c.ParentNode = n
	n.NamedKids = append(n.NamedKids, c)
	return n
}

// SetField attaches c under the given field name and wires its parent pointer.
func (n *SynthNode) SetField(name string, c *SynthNode) *SynthNode {
	if n.FieldKids == nil {
		n.FieldKids = map[string]*SynthNode{}
	}
	c.ParentNode = n
	n.FieldKids[name] = c
	return n
}

func (n *SynthNode) IsNull() bool { return n == nil }

func (n *SynthNode) TypeName() string {
	if n == nil {
		return ""
	}
	return n.Kind
}

func (n *SynthNode) StartByte() int { return n.Range().StartByte }

func (n *SynthNode) EndByte() int { return n.Range().EndByte }

func (n *SynthNode) Range() Range {
	if n == nil {
		return Range{}
	}
	return n.SourceSpan
}

func (n *SynthNode) NamedChild(i int) Node {
	if n == nil || i < 0 || i >= len(n.NamedKids) {
		return Null
	}
	return asNode(n.NamedKids[i])
}

func (n *SynthNode) NamedChildCount() int {
	if n == nil {
		return 0
	}
	return len(n.NamedKids)
}

func (n *SynthNode) ChildByFieldName(name string) Node {
	if n == nil {
		return Null
	}
	c, ok := n.FieldKids[name]
	if !ok {
		return Null
	}
	return asNode(c)
}

func (n *SynthNode) Text(src SourceText) string {
	if n == nil {
		return ""
	}
	return n.RawText
}

func (n *SynthNode) Parent() Node {
	if n == nil {
		return Null
	}
	return asNode(n.ParentNode)
}

// asNode converts a possibly-nil *SynthNode into the Node interface,
// mapping nil to the shared Null sentinel rather than a non-nil interface
// wrapping a nil pointer.
func asNode(n *SynthNode) Node {
	if n == nil {
		return Null
	}
	return n
}
