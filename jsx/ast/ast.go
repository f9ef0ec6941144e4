// Package ast is the markup front end for the sketch dialect: a restricted
// JSX-like language of element trees with attributes, text and fragments.
// It knows nothing about the tree model built on top of it; Parse produces a
// generic AST and leaves all semantic filtering (which attribute value shapes
// are supported, which expressions are kept) to the consumer. This keeps the
// grammar engine swappable behind a narrow surface: Parse and the Node types.
package ast

// Node is a node of the generic markup AST.
type Node interface {
	node()
}

// Text is a run of literal character data between tags. The value is raw:
// surrounding whitespace is preserved for the consumer to trim.
type Text struct {
	Value string
}

func (*Text) node() {}

// Expr is a brace-delimited expression. Src is the raw source between the
// braces, with no interpretation applied.
type Expr struct {
	Src string
}

func (*Expr) node() {}

// AttrKind discriminates how an attribute value was written in the source.
type AttrKind int

const (
	// AttrBool is a bare attribute with no value: <input disabled />.
	AttrBool AttrKind = iota
	// AttrString is a quoted string value: class="box".
	AttrString
	// AttrExpr is a brace-delimited expression value: width={12}.
	AttrExpr
)

// Attr is a single attribute of an element. For AttrString the Value holds
// the unescaped string literal; for AttrExpr it holds the raw expression
// source between the braces; for AttrBool it is empty.
type Attr struct {
	Key   string
	Kind  AttrKind
	Value string
}

// Element is a tagged node with attributes and children.
type Element struct {
	Tag         string
	Attrs       []Attr
	Children    []Node
	SelfClosing bool
}

func (*Element) node() {}

// Fragment is a tagless grouping node: <>...</>.
type Fragment struct {
	Children []Node
}

func (*Fragment) node() {}
