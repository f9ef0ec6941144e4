package style

import (
	"regexp"
	"strings"
)

// gradientRE matches a two-color linear gradient with the fixed three-group
// pattern the property panel understands: direction, from-color, to-color.
var gradientRE = regexp.MustCompile(`^linear-gradient\(\s*([^,]+?)\s*,\s*([^,]+?)\s*,\s*([^,)]+?)\s*\)$`)

// Gradient is a decomposed two-stop linear gradient.
type Gradient struct {
	Direction string
	From      string
	To        string
}

// ParseGradient extracts a two-color linear gradient from a backgroundImage
// value. Malformed or more elaborate gradients fail extraction silently
// (ok=false): the panel then treats the background as solid.
func ParseGradient(v string) (Gradient, bool) {
	m := gradientRE.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return Gradient{}, false
	}
	return Gradient{Direction: m[1], From: m[2], To: m[3]}, true
}
