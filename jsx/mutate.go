package jsx

import "sort"

// Mutations are pure and id-addressed: each returns a new root in which the
// path from root to the target has been rebuilt and every other subtree is
// shared by reference with the input. A target id that is not in the tree
// makes the mutation a no-op returning the input root unchanged; mutations
// never panic. Touched nodes keep their ids: they are assigned at creation
// and never reissued by an edit.

// UpdateText replaces the content of the text node with the given id.
func UpdateText(root *Node, id, text string) *Node {
	return replaceByID(root, id, func(n *Node) *Node {
		if n.Kind != KindText || n.Text == text {
			return n
		}
		c := shallowClone(n)
		c.Text = text
		return c
	})
}

// UpdateStyle merges declarations into the element's inline style object.
// An empty declaration map leaves the tree untouched. An empty value removes
// the property. New properties are appended in sorted order so the
// serialized output is deterministic.
func UpdateStyle(root *Node, id string, decls map[string]string) *Node {
	if len(decls) == 0 {
		return root
	}
	return replaceByID(root, id, func(n *Node) *Node {
		if n.Kind != KindElement {
			return n
		}
		style := n.StyleObject().Clone()
		keys := make([]string, 0, len(decls))
		for k := range decls {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if decls[k] == "" {
				style.Delete(k)
			} else {
				style.Set(k, decls[k])
			}
		}
		if style.Len() == 0 {
			if n.StyleObject() == nil {
				return n
			}
			return removeAttrNode(n, "style")
		}
		return setAttrNode(n, "style", style)
	})
}

// UpdateAttr sets or replaces an attribute, keeping its position when it
// already exists and appending otherwise.
func UpdateAttr(root *Node, id, key string, val any) *Node {
	return replaceByID(root, id, func(n *Node) *Node {
		if n.Kind != KindElement {
			return n
		}
		return setAttrNode(n, key, val)
	})
}

// RemoveAttr deletes an attribute.
func RemoveAttr(root *Node, id, key string) *Node {
	return replaceByID(root, id, func(n *Node) *Node {
		if n.Kind != KindElement {
			return n
		}
		if _, ok := n.Attr(key); !ok {
			return n
		}
		return removeAttrNode(n, key)
	})
}

// UpdateClassList sets the node's utility-class string, reusing whichever
// spelling (className or class) the node already carries.
func UpdateClassList(root *Node, id, classes string) *Node {
	return replaceByID(root, id, func(n *Node) *Node {
		if n.Kind != KindElement {
			return n
		}
		key := "className"
		if _, ok := n.Attr("className"); !ok {
			if _, ok := n.Attr("class"); ok {
				key = "class"
			}
		}
		return setAttrNode(n, key, classes)
	})
}

// replaceByID rebuilds the path from root to the node with the given id,
// applying fn to that node. fn must return its argument unchanged to signal
// a no-op, or a fresh node; it must never modify the argument in place.
func replaceByID(root *Node, id string, fn func(*Node) *Node) *Node {
	if root == nil || id == "" {
		return root
	}
	if root.ID == id {
		return fn(root)
	}
	if root.Kind != KindElement {
		return root
	}
	for i, child := range root.Children {
		replaced := replaceByID(child, id, fn)
		if replaced == child {
			continue
		}
		clone := shallowClone(root)
		clone.Children = make([]*Node, len(root.Children))
		copy(clone.Children, root.Children)
		clone.Children[i] = replaced
		return clone
	}
	return root
}

// shallowClone copies the node itself, keeping its id and sharing children
// by reference. Attrs are copied so the clone's list can be edited.
func shallowClone(n *Node) *Node {
	c := &Node{
		ID:       n.ID,
		Kind:     n.Kind,
		Tag:      n.Tag,
		Children: n.Children,
		Text:     n.Text,
	}
	if len(n.Attrs) > 0 {
		c.Attrs = make([]Attr, len(n.Attrs))
		copy(c.Attrs, n.Attrs)
	}
	return c
}

func setAttrNode(n *Node, key string, val any) *Node {
	c := shallowClone(n)
	for i, a := range c.Attrs {
		if a.Key == key {
			c.Attrs[i].Val = val
			return c
		}
	}
	c.Attrs = append(c.Attrs, Attr{Key: key, Val: val})
	return c
}

func removeAttrNode(n *Node, key string) *Node {
	c := shallowClone(n)
	for i, a := range c.Attrs {
		if a.Key == key {
			c.Attrs = append(c.Attrs[:i:i], c.Attrs[i+1:]...)
			return c
		}
	}
	return c
}
