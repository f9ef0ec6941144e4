package ast

import (
	"fmt"
	"strings"
)

// Error is a grammar-level parse error with a 1-based source position.
type Error struct {
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Parse reads the full source and returns the sequence of top-level nodes.
// A stock HTML tokenizer cannot lex this dialect (brace-delimited attribute
// values contain spaces and nested braces), so the scanner is hand-rolled.
// Any grammar failure aborts the parse and returns an *Error; no partial AST
// is returned.
func Parse(src string) ([]Node, error) {
	p := &parser{src: src}
	var nodes []Node
	for !p.eof() {
		if p.peek() == '<' {
			if strings.HasPrefix(p.src[p.pos:], "</") {
				return nil, p.errf("unexpected closing tag")
			}
			n, err := p.parseElement()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		} else if p.peek() == '{' {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, e)
		} else {
			nodes = append(nodes, p.parseText())
		}
	}
	return nodes, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

// errf reports an error at the current scan position.
func (p *parser) errf(format string, args ...any) *Error {
	consumed := p.src[:p.pos]
	line := 1 + strings.Count(consumed, "\n")
	col := p.pos - strings.LastIndexByte(consumed, '\n')
	return &Error{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// parseText consumes character data up to the next tag or expression.
func (p *parser) parseText() *Text {
	start := p.pos
	for !p.eof() && p.peek() != '<' && p.peek() != '{' {
		p.pos++
	}
	return &Text{Value: p.src[start:p.pos]}
}

// parseElement is called with the scanner on '<'. It handles both regular
// elements and fragments ("<>").
func (p *parser) parseElement() (Node, error) {
	p.pos++ // consume '<'

	if p.peek() == '>' {
		p.pos++
		children, err := p.parseChildren("")
		if err != nil {
			return nil, err
		}
		return &Fragment{Children: children}, nil
	}

	tag := p.readName()
	if tag == "" {
		return nil, p.errf("expected tag name")
	}

	el := &Element{Tag: tag}

	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errf("unexpected end of input in <%s>", tag)
		}
		switch p.peek() {
		case '/':
			p.pos++
			if p.peek() != '>' {
				return nil, p.errf("expected '>' after '/' in <%s>", tag)
			}
			p.pos++
			el.SelfClosing = true
			return el, nil
		case '>':
			p.pos++
			children, err := p.parseChildren(tag)
			if err != nil {
				return nil, err
			}
			el.Children = children
			return el, nil
		default:
			attr, err := p.parseAttr(tag)
			if err != nil {
				return nil, err
			}
			el.Attrs = append(el.Attrs, attr)
		}
	}
}

func (p *parser) parseAttr(tag string) (Attr, error) {
	key := p.readName()
	if key == "" {
		return Attr{}, p.errf("expected attribute name in <%s>", tag)
	}
	p.skipSpace()
	if p.peek() != '=' {
		return Attr{Key: key, Kind: AttrBool}, nil
	}
	p.pos++ // consume '='
	p.skipSpace()
	switch p.peek() {
	case '"', '\'':
		val, err := p.readQuoted()
		if err != nil {
			return Attr{}, err
		}
		return Attr{Key: key, Kind: AttrString, Value: val}, nil
	case '{':
		e, err := p.parseExpr()
		if err != nil {
			return Attr{}, err
		}
		return Attr{Key: key, Kind: AttrExpr, Value: e.Src}, nil
	default:
		return Attr{}, p.errf("attribute %q value must be quoted or braced", key)
	}
}

// parseChildren consumes child nodes until the matching closing tag.
// closeTag is empty for fragments.
func (p *parser) parseChildren(closeTag string) ([]Node, error) {
	var out []Node
	for {
		if p.eof() {
			if closeTag == "" {
				return nil, p.errf("missing closing tag </>")
			}
			return nil, p.errf("missing closing tag </%s>", closeTag)
		}
		switch {
		case strings.HasPrefix(p.src[p.pos:], "</"):
			p.pos += 2
			p.skipSpace()
			name := p.readName()
			p.skipSpace()
			if p.peek() != '>' {
				return nil, p.errf("malformed closing tag")
			}
			p.pos++
			if name != closeTag {
				if closeTag == "" {
					return nil, p.errf("unexpected closing tag </%s> in fragment", name)
				}
				return nil, p.errf("closing tag </%s> does not match <%s>", name, closeTag)
			}
			return out, nil
		case p.peek() == '<':
			n, err := p.parseElement()
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		case p.peek() == '{':
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		default:
			out = append(out, p.parseText())
		}
	}
}

// parseExpr is called with the scanner on '{'. It consumes a balanced
// brace-delimited span, honoring string and template literals so that braces
// inside quotes do not affect the balance. Template ${...} spans are inside
// backticks and therefore skipped along with the rest of the literal.
func (p *parser) parseExpr() (*Expr, error) {
	start := p.pos
	p.pos++ // consume '{'
	depth := 1
	var quote byte
	for !p.eof() {
		c := p.src[p.pos]
		if quote != 0 {
			if c == '\\' && p.pos+1 < len(p.src) {
				p.pos += 2
				continue
			}
			if c == quote {
				quote = 0
			}
			p.pos++
			continue
		}
		switch c {
		case '"', '\'', '`':
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				src := p.src[start+1 : p.pos]
				p.pos++
				return &Expr{Src: src}, nil
			}
		}
		p.pos++
	}
	p.pos = start
	return nil, p.errf("unterminated expression")
}

// readName reads a tag or attribute name. Names start with a letter and may
// contain letters, digits, and the separators used by component-style tags.
func (p *parser) readName() string {
	start := p.pos
	if p.eof() || !isNameStart(p.src[p.pos]) {
		return ""
	}
	p.pos++
	for !p.eof() && isNameByte(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

// readQuoted reads a quoted string literal, resolving backslash escapes for
// the quote character, backslash, and \n.
func (p *parser) readQuoted() (string, error) {
	quote := p.src[p.pos]
	p.pos++
	var b strings.Builder
	for !p.eof() {
		c := p.src[p.pos]
		switch c {
		case quote:
			p.pos++
			return b.String(), nil
		case '\\':
			if p.pos+1 >= len(p.src) {
				return "", p.errf("unterminated string literal")
			}
			p.pos++
			switch esc := p.src[p.pos]; esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(esc)
			}
			p.pos++
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", p.errf("unterminated string literal")
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isNameByte(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9' || c == '-' || c == '.' || c == ':'
}
