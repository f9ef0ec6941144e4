package jsx

import (
	"errors"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/dpotapov/go-sketch/jsx/ast"
)

// contextRadius is the number of source lines shown on each side of the
// failing line in an error context snippet.
const contextRadius = 2

// ParseError is a grammar-level failure. It is distinct from the "input is
// not markup" case, which Parse reports as a nil tree with a nil error. The
// previously valid tree is the caller's to keep; Parse never installs a
// partial tree on error.
type ParseError struct {
	// Line and Col locate the failure in the trimmed source, 1-based.
	Line int
	Col  int

	err error
	doc *etree.Document
}

func newParseError(src string, err error) *ParseError {
	pe := &ParseError{Line: 1, Col: 1, err: err}
	var ae *ast.Error
	if errors.As(err, &ae) {
		pe.Line, pe.Col = ae.Line, ae.Col
	}
	pe.doc = buildErrorContext(src, pe.Line)
	return pe
}

func (e *ParseError) Error() string {
	return "parse markup: " + e.err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.err
}

// Context returns a small XML snippet of the source lines around the
// failure, with the failing line flagged. The editor's error panel renders
// it next to the message.
func (e *ParseError) Context() string {
	if e.doc == nil {
		return ""
	}
	e.doc.Indent(2)
	s, err := e.doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}

func buildErrorContext(src string, errLine int) *etree.Document {
	lines := strings.Split(src, "\n")

	lo := errLine - 1 - contextRadius
	if lo < 0 {
		lo = 0
	}
	hi := errLine + contextRadius
	if hi > len(lines) {
		hi = len(lines)
	}

	doc := etree.NewDocument()
	root := doc.CreateElement("context")
	for i := lo; i < hi; i++ {
		el := root.CreateElement("line")
		el.CreateAttr("n", strconv.Itoa(i+1))
		if i+1 == errLine {
			el.CreateAttr("error", "true")
		}
		el.SetText(lines[i])
	}
	return doc
}
