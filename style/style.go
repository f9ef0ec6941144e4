// Package style resolves the visual properties of a tree node from its
// utility-class list and inline style mapping. It implements a practical
// subset of the utility-class grammar; unrecognized tokens are ignored
// without error.
package style

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dpotapov/go-sketch/jsx"
)

// Map is a resolved mapping of style-property name (camelCase) to value.
type Map map[string]string

// Resolve combines two independent sources for the node's attributes: a
// mapping derived from the class-list tokens and the inline style object.
// Inline styles are applied last, so they win on key collision.
func Resolve(n *jsx.Node) Map {
	m := ResolveClasses(n.ClassList())
	if style := n.StyleObject(); style != nil {
		for _, k := range style.Keys() {
			if v := style.GetString(k); v != "" {
				m[k] = v
			}
		}
	}
	return m
}

// ResolveClasses derives style properties from a space-separated token
// string. Each rule is independent; several may match one class list.
func ResolveClasses(classList string) Map {
	m := Map{}
	for _, tok := range strings.Fields(classList) {
		applyToken(m, tok)
	}
	return m
}

func applyToken(m Map, tok string) {
	switch tok {
	case "flex":
		m["display"] = "flex"
		return
	case "flex-col":
		m["flexDirection"] = "column"
		return
	case "items-center":
		m["alignItems"] = "center"
		return
	case "justify-center":
		m["justifyContent"] = "center"
		return
	case "gap-2":
		m["gap"] = "8px"
		return
	case "gap-4":
		m["gap"] = "16px"
		return
	case "rounded":
		m["borderRadius"] = "4px"
		return
	case "rounded-lg":
		m["borderRadius"] = "8px"
		return
	case "rounded-full":
		m["borderRadius"] = "9999px"
		return
	}

	if rest, ok := strings.CutPrefix(tok, "text-"); ok {
		if size, isSize := fontSizes[rest]; isSize {
			m["fontSize"] = size
		} else if c, isColor := palette[rest]; isColor {
			m["color"] = c
		}
		return
	}
	if rest, ok := strings.CutPrefix(tok, "font-"); ok {
		if w, isWeight := fontWeights[rest]; isWeight {
			m["fontWeight"] = w
		}
		return
	}
	if rest, ok := strings.CutPrefix(tok, "bg-"); ok {
		if c, isColor := palette[rest]; isColor {
			m["backgroundColor"] = c
		}
		return
	}

	for _, sp := range spacingProps {
		if rest, ok := strings.CutPrefix(tok, sp.prefix); ok {
			if px, valid := spacingValue(rest); valid {
				for _, p := range sp.props {
					m[p] = px
				}
			}
			return
		}
	}
}

// spacingValue maps a numeric suffix n to n*4 pixels.
func spacingValue(s string) (string, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return "", false
	}
	return strconv.Itoa(n*4) + "px", true
}

// Axis prefixes come before the bare ones so "px-2" is not consumed by "p-".
var spacingProps = []struct {
	prefix string
	props  []string
}{
	{"px-", []string{"paddingLeft", "paddingRight"}},
	{"py-", []string{"paddingTop", "paddingBottom"}},
	{"p-", []string{"padding"}},
	{"mx-", []string{"marginLeft", "marginRight"}},
	{"my-", []string{"marginTop", "marginBottom"}},
	{"m-", []string{"margin"}},
}

var fontSizes = map[string]string{
	"xs":   "12px",
	"sm":   "14px",
	"base": "16px",
	"lg":   "18px",
	"xl":   "20px",
	"2xl":  "24px",
	"3xl":  "30px",
	"4xl":  "36px",
	"5xl":  "48px",
	"6xl":  "60px",
}

var fontWeights = map[string]string{
	"bold":     "bold",
	"semibold": "600",
	"medium":   "500",
	"normal":   "normal",
	"light":    "300",
}

// CSS renders the map as a CSS declaration string for the preview renderer,
// converting camelCase property names to kebab-case. Keys are sorted so the
// output is deterministic.
func (m Map) CSS() string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(kebabCase(k))
		b.WriteString(": ")
		b.WriteString(m[k])
	}
	return b.String()
}

func kebabCase(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			b.WriteByte('-')
			b.WriteByte(c + ('a' - 'A'))
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}
