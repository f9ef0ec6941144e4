// Package jsx implements the canonical tree model for the sketch dialect:
// parsing markup into an immutable node tree, serializing the tree back to
// markup, and pure id-addressed mutations over it.
package jsx

import (
	"github.com/google/uuid"
)

// Kind discriminates between element and text nodes.
type Kind int

const (
	KindElement Kind = iota
	KindText
)

// FragmentTag is the synthetic tag assigned to fragment nodes. Fragments
// serialize without a wrapping tag.
const FragmentTag = "Fragment"

// Node is a single node of a parsed markup document. Nodes are treated as
// immutable values after construction: mutation functions return a new tree
// that shares all untouched subtrees with the old one, so holders of an old
// root never observe a partial edit.
type Node struct {
	// ID is an opaque identifier, unique within the tree, assigned at
	// creation and never changed. It is the sole addressing mechanism for
	// selection and mutation.
	ID string

	Kind Kind

	// Tag is the element tag name. Empty for text nodes.
	Tag string

	// Attrs is the ordered attribute list. The permitted value types are
	// string, float64, bool, and *Object; anything else is treated as an
	// opaque structured value by the serializer.
	Attrs []Attr

	// Children is the ordered child list. Always empty for text nodes.
	Children []*Node

	// Text is the content of a text node. Empty for elements.
	Text string
}

// Attr is a single element attribute.
type Attr struct {
	Key string
	Val any
}

// NewElement returns a fresh element node with a new id.
func NewElement(tag string) *Node {
	return &Node{ID: newID(), Kind: KindElement, Tag: tag}
}

// NewText returns a fresh text node with a new id.
func NewText(text string) *Node {
	return &Node{ID: newID(), Kind: KindText, Text: text}
}

func newID() string {
	return uuid.NewString()
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(key string) (any, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return nil, false
}

// ClassList returns the node's space-separated utility-class string. Both
// className and class spellings are accepted; className wins if both exist.
func (n *Node) ClassList() string {
	for _, key := range []string{"className", "class"} {
		if v, ok := n.Attr(key); ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

// StyleObject returns the node's inline style mapping, or nil.
func (n *Node) StyleObject() *Object {
	if v, ok := n.Attr("style"); ok {
		if o, ok := v.(*Object); ok {
			return o
		}
	}
	return nil
}

// SingleTextChild returns the node's only child if it is a text node. This
// is the shape that qualifies for inline text editing and for the compact
// one-line serialization.
func (n *Node) SingleTextChild() *Node {
	if n.Kind == KindElement && len(n.Children) == 1 && n.Children[0].Kind == KindText {
		return n.Children[0]
	}
	return nil
}

// FirstTextChild returns the first direct text child, or nil. The property
// panel uses it to surface editable text for a selected element.
func (n *Node) FirstTextChild() *Node {
	for _, c := range n.Children {
		if c.Kind == KindText {
			return c
		}
	}
	return nil
}

// FindByID returns the node with the given id, or nil.
func FindByID(root *Node, id string) *Node {
	if root == nil || id == "" {
		return nil
	}
	var found *Node
	Walk(root, func(n *Node) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Walk visits root and its descendants in document order. The visitor
// returns false to stop the walk.
func Walk(root *Node, visit func(*Node) bool) {
	if root == nil {
		return
	}
	walk(root, visit)
}

func walk(n *Node, visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, c := range n.Children {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

// CollectIDs returns all node ids in document order.
func CollectIDs(root *Node) []string {
	var ids []string
	Walk(root, func(n *Node) bool {
		ids = append(ids, n.ID)
		return true
	})
	return ids
}
