package jsx

import (
	"fmt"
	"strconv"
	"strings"
)

const indentStep = "  "

// Serialize renders the tree back to markup. It is the inverse of Parse for
// every tree Parse can itself produce, not a general pretty-printer: ids are
// not emitted (they are regenerated identity tokens, not content), attribute
// order follows the node's insertion order, and formatting is canonical.
// Serialization has no error path; any tree built through the documented
// construction paths is serializable.
func Serialize(root *Node) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	writeNode(&b, root, 0)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat(indentStep, depth)
	switch {
	case n.Kind == KindText:
		b.WriteString(indent)
		b.WriteString(textLiteral(n.Text))
	case n.Tag == FragmentTag:
		b.WriteString(indent)
		b.WriteString("<>\n")
		for _, c := range n.Children {
			writeNode(b, c, depth+1)
			b.WriteString("\n")
		}
		b.WriteString(indent)
		b.WriteString("</>")
	default:
		writeElement(b, n, depth)
	}
}

func writeElement(b *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat(indentStep, depth)
	b.WriteString(indent)
	b.WriteString("<")
	b.WriteString(n.Tag)
	writeAttrs(b, n.Attrs)

	switch {
	case len(n.Children) == 0:
		b.WriteString(" />")
	case n.SingleTextChild() != nil:
		// Compaction rule: a lone text child stays on one line.
		b.WriteString(">")
		b.WriteString(textLiteral(n.Children[0].Text))
		b.WriteString("</")
		b.WriteString(n.Tag)
		b.WriteString(">")
	default:
		b.WriteString(">\n")
		for _, c := range n.Children {
			writeNode(b, c, depth+1)
			b.WriteString("\n")
		}
		b.WriteString(indent)
		b.WriteString("</")
		b.WriteString(n.Tag)
		b.WriteString(">")
	}
}

func writeAttrs(b *strings.Builder, attrs []Attr) {
	for _, a := range attrs {
		switch v := a.Val.(type) {
		case bool:
			// true serializes as a bare attribute; false is omitted.
			if v {
				b.WriteString(" ")
				b.WriteString(a.Key)
			}
		case string:
			b.WriteString(" ")
			b.WriteString(a.Key)
			b.WriteString(`="`)
			b.WriteString(escapeString(v))
			b.WriteString(`"`)
		case float64:
			b.WriteString(" ")
			b.WriteString(a.Key)
			b.WriteString("={")
			b.WriteString(formatNumber(v))
			b.WriteString("}")
		case *Object:
			b.WriteString(" ")
			b.WriteString(a.Key)
			b.WriteString("={")
			b.WriteString(objectLiteral(v))
			b.WriteString("}")
		case nil:
			// omitted entirely
		default:
			// Opaque structured value: embed its literal encoding.
			b.WriteString(" ")
			b.WriteString(a.Key)
			b.WriteString("={")
			fmt.Fprintf(b, "%v", v)
			b.WriteString("}")
		}
	}
}

// objectLiteral renders an object attribute as an embedded object literal.
// Empty string members are skipped: a style property cleared by an edit
// disappears from the output instead of serializing as key: "".
func objectLiteral(o *Object) string {
	var b strings.Builder
	b.WriteString("{")
	first := true
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(k)
		b.WriteString(": ")
		switch vv := v.(type) {
		case string:
			b.WriteString(`"`)
			b.WriteString(escapeString(vv))
			b.WriteString(`"`)
		case float64:
			b.WriteString(formatNumber(vv))
		case bool:
			b.WriteString(strconv.FormatBool(vv))
		default:
			fmt.Fprintf(&b, "%v", vv)
		}
	}
	b.WriteString("}")
	return b.String()
}

// textLiteral emits text content. Plain text is used where it survives a
// reparse; content that would lex as markup (angle brackets, braces) or that
// carries significant edge whitespace is wrapped in a string expression.
func textLiteral(s string) string {
	if strings.ContainsAny(s, "<>{}") || s != strings.TrimSpace(s) || s == "" {
		return `{"` + escapeString(s) + `"}`
	}
	return s
}

func escapeString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// formatNumber renders a float without a decimal point when it is integral.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
