// Package editor implements the interactive side of the pipeline: rendering
// a tree to a clickable preview and running the editing session that turns
// user interactions into tree mutations and debounced markup emissions.
package editor

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dpotapov/go-sketch/jsx"
	"github.com/dpotapov/go-sketch/style"
)

// State carries the interaction state the renderer needs: which node is
// selected and which text node is being edited in place.
type State struct {
	SelectedID string
	EditingID  string
}

// tagWhitelist maps recognized tag names to the HTML primitives they render
// as. Anything off this list renders as a generic container and is never
// passed through verbatim, which keeps unsupported or unsafe tags out of
// the preview.
var tagWhitelist = map[string]atom.Atom{
	"div":     atom.Div,
	"span":    atom.Span,
	"p":       atom.P,
	"h1":      atom.H1,
	"h2":      atom.H2,
	"h3":      atom.H3,
	"h4":      atom.H4,
	"h5":      atom.H5,
	"h6":      atom.H6,
	"a":       atom.A,
	"button":  atom.Button,
	"img":     atom.Img,
	"input":   atom.Input,
	"label":   atom.Label,
	"ul":      atom.Ul,
	"ol":      atom.Ol,
	"li":      atom.Li,
	"section": atom.Section,
	"header":  atom.Header,
	"footer":  atom.Footer,
	"nav":     atom.Nav,
	"main":    atom.Main,
	"b":       atom.B,
	"strong":  atom.Strong,
	"i":       atom.I,
	"em":      atom.Em,
	"pre":     atom.Pre,
	"code":    atom.Code,
}

// passAttrs are the presentational string attributes copied into the
// preview. Everything else (event handlers in particular) is dropped.
var passAttrs = map[string]bool{
	"alt":         true,
	"href":        true,
	"placeholder": true,
	"src":         true,
	"title":       true,
	"type":        true,
	"value":       true,
}

// selectionOutline is merged into the selected node's rendered style; the
// underlying tree is never touched for selection treatment.
const selectionOutline = "outline: 2px solid #3b82f6; outline-offset: 2px"

// Render produces the preview document for the tree. Every element carries
// its node id in a data-node-id attribute so pointer events on the client
// map back to tree nodes.
func Render(tree *jsx.Node, st State) *html.Node {
	root := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Div,
		Data:     "div",
		Attr:     []html.Attribute{{Key: "data-sketch-root", Val: "true"}},
	}
	if tree != nil {
		root.AppendChild(renderNode(tree, st))
	}
	return root
}

// RenderHTML is Render followed by html.Render.
func RenderHTML(tree *jsx.Node, st State) string {
	var b strings.Builder
	_ = html.Render(&b, Render(tree, st))
	return b.String()
}

func renderNode(n *jsx.Node, st State) *html.Node {
	if n.Kind == jsx.KindText {
		return renderText(n, st)
	}

	tag := strings.ToLower(n.Tag)
	a, ok := tagWhitelist[tag]
	if !ok {
		a, tag = atom.Div, "div"
	}

	el := &html.Node{Type: html.ElementNode, DataAtom: a, Data: tag}
	el.Attr = append(el.Attr, html.Attribute{Key: "data-node-id", Val: n.ID})

	for _, attr := range n.Attrs {
		if !passAttrs[attr.Key] {
			continue
		}
		if s, isStr := attr.Val.(string); isStr {
			el.Attr = append(el.Attr, html.Attribute{Key: attr.Key, Val: s})
		}
	}

	if css := styleFor(n, st); css != "" {
		el.Attr = append(el.Attr, html.Attribute{Key: "style", Val: css})
	}

	for _, c := range n.Children {
		el.AppendChild(renderNode(c, st))
	}
	return el
}

// renderText renders a text node as plain content, or as an in-place input
// seeded with the current text when the node is being edited. The client
// autofocuses and selects the field and keeps its events from bubbling into
// selection handling.
func renderText(n *jsx.Node, st State) *html.Node {
	if n.ID != st.EditingID {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Input,
		Data:     "input",
		Attr: []html.Attribute{
			{Key: "type", Val: "text"},
			{Key: "value", Val: n.Text},
			{Key: "data-node-id", Val: n.ID},
			{Key: "data-editing", Val: "true"},
			{Key: "autofocus", Val: ""},
		},
	}
}

func styleFor(n *jsx.Node, st State) string {
	css := style.Resolve(n).CSS()
	if n.ID != st.SelectedID {
		return css
	}
	if css == "" {
		return selectionOutline
	}
	return css + "; " + selectionOutline
}
