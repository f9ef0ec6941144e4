package jsx

import (
	"strings"

	exprast "github.com/expr-lang/expr/ast"
	exprparser "github.com/expr-lang/expr/parser"

	"github.com/dpotapov/go-sketch/jsx/ast"
)

// Parse converts markup source into a node tree.
//
// Input that does not begin with '<' after trimming is not markup: Parse
// returns (nil, nil) so the caller can show "nothing to preview" instead of
// an error. Grammar failures return a *ParseError and no tree. Recognized
// but unsupported constructs (identifiers, calls, conditionals, logic of any
// kind) are silently dropped per node: the dialect has no semantics for
// them, and dropping keeps the tool usable on almost-conformant snippets.
//
// Only the first top-level element or fragment is converted; later siblings
// are ignored. Every parse builds the tree from scratch with fresh ids.
func Parse(src string) (*Node, error) {
	trimmed := strings.TrimSpace(src)
	if !strings.HasPrefix(trimmed, "<") {
		return nil, nil
	}

	nodes, err := ast.Parse(trimmed)
	if err != nil {
		return nil, newParseError(trimmed, err)
	}

	for _, n := range nodes {
		switch v := n.(type) {
		case *ast.Element:
			return convertElement(v), nil
		case *ast.Fragment:
			return convertFragment(v), nil
		}
	}
	return nil, nil
}

func convertElement(el *ast.Element) *Node {
	n := NewElement(el.Tag)
	for _, a := range el.Attrs {
		if val, ok := attrValue(a); ok {
			n.Attrs = append(n.Attrs, Attr{Key: a.Key, Val: val})
		}
	}
	n.Children = convertChildren(el.Children)
	return n
}

func convertFragment(f *ast.Fragment) *Node {
	n := NewElement(FragmentTag)
	n.Children = convertChildren(f.Children)
	return n
}

func convertChildren(children []ast.Node) []*Node {
	var out []*Node
	for _, c := range children {
		switch v := c.(type) {
		case *ast.Element:
			out = append(out, convertElement(v))
		case *ast.Fragment:
			out = append(out, convertFragment(v))
		case *ast.Text:
			if s := strings.TrimSpace(v.Value); s != "" {
				out = append(out, NewText(s))
			}
		case *ast.Expr:
			// Only string-valued expressions become text; everything else
			// (identifiers, calls, conditionals) is dropped.
			if s, ok := stringExprValue(v.Src); ok && s != "" {
				out = append(out, NewText(s))
			}
		}
	}
	return out
}

// attrValue extracts a native value from an attribute, in priority order:
// bare attribute, quoted string, embedded scalar literal, embedded plain
// object literal, embedded template literal. Unsupported shapes report
// ok=false and the attribute is omitted.
func attrValue(a ast.Attr) (any, bool) {
	switch a.Kind {
	case ast.AttrBool:
		return true, true
	case ast.AttrString:
		return a.Value, true
	case ast.AttrExpr:
		v, ok := exprValue(a.Value)
		if !ok {
			return nil, false
		}
		if a.Key == "style" {
			if o, isObj := v.(*Object); isObj {
				return stringifyObject(o), true
			}
			return nil, false
		}
		return v, true
	}
	return nil, false
}

// exprValue interprets a raw expression source as a constant value. The
// dialect carries no logic, so only literals are meaningful: scalars, a
// shallow object of scalars, or a template literal collapsed to its static
// segments. The expr-lang parser supplies the grammar for everything except
// templates, which it does not lex.
func exprValue(src string) (any, bool) {
	trimmed := strings.TrimSpace(src)
	if strings.HasPrefix(trimmed, "`") {
		return collapseTemplate(trimmed)
	}
	tree, err := exprparser.Parse(trimmed)
	if err != nil {
		return nil, false
	}
	return literalValue(tree.Node, true)
}

// stringExprValue is exprValue restricted to string results, for
// expression-as-child positions.
func stringExprValue(src string) (string, bool) {
	v, ok := exprValue(src)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// literalValue walks an expr-lang AST node and extracts a constant. Object
// literals are accepted only at the top level and only with scalar members;
// nested objects and non-constant members are dropped, not errors.
func literalValue(n exprast.Node, allowObject bool) (any, bool) {
	switch v := n.(type) {
	case *exprast.StringNode:
		return v.Value, true
	case *exprast.IntegerNode:
		return float64(v.Value), true
	case *exprast.FloatNode:
		return v.Value, true
	case *exprast.BoolNode:
		return v.Value, true
	case *exprast.UnaryNode:
		if v.Operator != "-" {
			return nil, false
		}
		inner, ok := literalValue(v.Node, false)
		if !ok {
			return nil, false
		}
		if f, isNum := inner.(float64); isNum {
			return -f, true
		}
		return nil, false
	case *exprast.MapNode:
		if !allowObject {
			return nil, false
		}
		obj := NewObject()
		for _, pair := range v.Pairs {
			p, ok := pair.(*exprast.PairNode)
			if !ok {
				continue
			}
			key, ok := pairKey(p.Key)
			if !ok {
				continue
			}
			if val, ok := literalValue(p.Value, false); ok {
				obj.Set(key, val)
			}
		}
		return obj, true
	}
	return nil, false
}

func pairKey(n exprast.Node) (string, bool) {
	switch k := n.(type) {
	case *exprast.StringNode:
		return k.Value, true
	case *exprast.IdentifierNode:
		return k.Value, true
	}
	return "", false
}

// collapseTemplate concatenates the static text segments of a template
// literal, dropping ${...} spans entirely. Losing the dynamic parts is a
// deliberate fidelity limitation of the dialect, not a bug.
func collapseTemplate(src string) (string, bool) {
	if len(src) < 2 || src[0] != '`' || src[len(src)-1] != '`' {
		return "", false
	}
	body := src[1 : len(src)-1]
	var b strings.Builder
	for i := 0; i < len(body); {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			b.WriteByte(body[i+1])
			i += 2
		case c == '$' && i+1 < len(body) && body[i+1] == '{':
			depth := 1
			i += 2
			for i < len(body) && depth > 0 {
				switch body[i] {
				case '{':
					depth++
				case '}':
					depth--
				}
				i++
			}
			if depth != 0 {
				return "", false
			}
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), true
}

// stringifyObject coerces object members to strings, which is the declared
// value type for style mappings.
func stringifyObject(o *Object) *Object {
	out := NewObject()
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		switch s := v.(type) {
		case string:
			out.Set(k, s)
		case float64:
			out.Set(k, formatNumber(s))
		case bool:
			if s {
				out.Set(k, "true")
			} else {
				out.Set(k, "false")
			}
		}
	}
	return out
}
