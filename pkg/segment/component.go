package segment

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

// Component is a named element embedded in a line as
// {{{JSX:<Name prop="v" />}}}.
//
// Prop values are string, float64, bool, nil, []any, map[string]any, or Expr
// for a braced expression that is not a literal.
type Component struct {
	Name     string
	Props    map[string]any
	Children []*Component
}

// Expr is the raw text of a braced prop value that is neither a keyword, a
// number, nor JSON.
type Expr string

// ParseError describes a component body that could not be read.
type ParseError struct {
	// Offset is the byte offset into the component body.
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
}

// ParseComponent reads a component tag with its children.
//
// Nesting is tracked with an explicit stack, so deeply nested input cannot
// exhaust the goroutine stack.
func ParseComponent(src string) (*Component, error) {
	p := &tagReader{src: src}
	var (
		stack []*Component
		root  *Component
	)

	attach := func(c *Component) {
		if len(stack) == 0 {
			root = c
			return
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, c)
	}

	p.skipSpace()
	for {
		if root != nil {
			p.skipSpace()
			if !p.eof() {
				return nil, p.errorf("unexpected content after </%s>", root.Name)
			}
			return root, nil
		}

		if len(stack) > 0 {
			// Text between child tags is not part of the component value.
			p.skipUntil('<')
		}
		if p.eof() {
			if len(stack) == 0 {
				return nil, p.errorf("expected '<'")
			}
			return nil, p.errorf("missing closing tag </%s>", stack[len(stack)-1].Name)
		}
		if !p.consume("<") {
			return nil, p.errorf("expected '<'")
		}

		if p.consume("/") {
			name, err := p.closeTag()
			if err != nil {
				return nil, err
			}
			if len(stack) == 0 {
				return nil, p.errorf("unexpected closing tag </%s>", name)
			}
			top := stack[len(stack)-1]
			if name != top.Name {
				return nil, p.errorf("mismatched closing tag </%s>, expected </%s>", name, top.Name)
			}
			stack = stack[:len(stack)-1]
			attach(top)
			continue
		}

		comp, selfClosing, err := p.openTag()
		if err != nil {
			return nil, err
		}
		if selfClosing {
			attach(comp)
		} else {
			stack = append(stack, comp)
		}
	}
}

// tagReader is a cursor over a component body.
type tagReader struct {
	src string
	pos int
}

func (p *tagReader) eof() bool { return p.pos >= len(p.src) }

func (p *tagReader) errorf(format string, args ...any) error {
	return &ParseError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *tagReader) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *tagReader) consume(s string) bool {
	if strings.HasPrefix(p.src[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *tagReader) skipSpace() {
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

func (p *tagReader) skipUntil(b byte) {
	if i := strings.IndexByte(p.src[p.pos:], b); i >= 0 {
		p.pos += i
		return
	}
	p.pos = len(p.src)
}

func isNameByte(b byte, first bool) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b == '_':
		return true
	case first:
		return false
	default:
		return b >= '0' && b <= '9' || b == '-' || b == '.' || b == ':'
	}
}

func (p *tagReader) name() string {
	start := p.pos
	for !p.eof() && isNameByte(p.src[p.pos], p.pos == start) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *tagReader) componentName() (string, error) {
	name := p.name()
	if name == "" {
		return "", p.errorf("expected component name")
	}
	if name[0] < 'A' || name[0] > 'Z' {
		return "", &ParseError{Offset: p.pos - len(name), Msg: fmt.Sprintf("component name %q must start with an uppercase letter", name)}
	}
	return name, nil
}

// openTag reads "Name props... >" or "Name props... />" after the '<'.
func (p *tagReader) openTag() (*Component, bool, error) {
	name, err := p.componentName()
	if err != nil {
		return nil, false, err
	}
	comp := &Component{Name: name, Props: map[string]any{}}

	for {
		p.skipSpace()
		switch {
		case p.eof():
			return nil, false, p.errorf("unterminated tag <%s", name)
		case p.consume("/>"):
			return comp, true, nil
		case p.consume(">"):
			return comp, false, nil
		}

		prop := p.name()
		if prop == "" {
			return nil, false, p.errorf("unexpected %q in <%s>", p.peek(), name)
		}
		p.skipSpace()
		if !p.consume("=") {
			comp.Props[prop] = true
			continue
		}
		p.skipSpace()
		value, err := p.propValue(prop)
		if err != nil {
			return nil, false, err
		}
		comp.Props[prop] = value
	}
}

func (p *tagReader) closeTag() (string, error) {
	name, err := p.componentName()
	if err != nil {
		return "", err
	}
	p.skipSpace()
	if !p.consume(">") {
		return "", p.errorf("expected '>' after </%s", name)
	}
	return name, nil
}

func (p *tagReader) propValue(prop string) (any, error) {
	switch quote := p.peek(); quote {
	case '"', '\'':
		p.pos++
		end := strings.IndexByte(p.src[p.pos:], quote)
		if end < 0 {
			return nil, p.errorf("unterminated string for prop %q", prop)
		}
		value := p.src[p.pos : p.pos+end]
		p.pos += end + 1
		return value, nil
	case '{':
		raw, err := p.braced(prop)
		if err != nil {
			return nil, err
		}
		return exprValue(raw), nil
	default:
		return nil, p.errorf("expected value for prop %q", prop)
	}
}

// braced reads a balanced {...} expression, skipping braces inside quoted
// strings, and returns its trimmed contents.
func (p *tagReader) braced(prop string) (string, error) {
	start := p.pos
	depth := 0
	var quote byte
	for ; !p.eof(); p.pos++ {
		c := p.src[p.pos]
		switch {
		case quote != 0:
			if c == '\\' {
				p.pos++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				p.pos++
				return strings.TrimSpace(p.src[start+1 : p.pos-1]), nil
			}
		}
	}
	return "", &ParseError{Offset: start, Msg: fmt.Sprintf("unterminated expression for prop %q", prop)}
}

// exprValue interprets the contents of a braced prop value.
func exprValue(raw string) any {
	if raw == "undefined" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	if isNumeric(raw) {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	}
	return Expr(raw)
}

// isNumeric accepts decimal literals JSON rejects, such as ".5" or "+1".
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		c := s[i]
		if (c < '0' || c > '9') && c != '.' && c != '-' && c != '+' && c != 'e' && c != 'E' {
			return false
		}
	}
	return true
}

// String serialises c back to tag syntax. Props are written in name order:
// true as a bare name, strings quoted, everything else as {JSON}.
func (c *Component) String() string {
	var b strings.Builder
	c.write(&b)
	return b.String()
}

func (c *Component) write(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(c.Name)

	keys := make([]string, 0, len(c.Props))
	for k := range c.Props {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		writeProp(b, c.Props[k])
	}

	if len(c.Children) == 0 {
		b.WriteString(" />")
		return
	}
	b.WriteByte('>')
	for _, child := range c.Children {
		child.write(b)
	}
	b.WriteString("</")
	b.WriteString(c.Name)
	b.WriteByte('>')
}

func writeProp(b *strings.Builder, v any) {
	switch val := v.(type) {
	case bool:
		if val {
			return
		}
	case string:
		switch {
		case !strings.Contains(val, `"`):
			b.WriteString(`="` + val + `"`)
			return
		case !strings.Contains(val, "'"):
			b.WriteString(`='` + val + `'`)
			return
		}
	case Expr:
		b.WriteString("={" + string(val) + "}")
		return
	case nil:
		b.WriteString("={null}")
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		b.WriteString("={" + fmt.Sprint(v) + "}")
		return
	}
	b.WriteString("={" + string(data) + "}")
}

// Block wraps c in the inline block delimiters.
func (c *Component) Block() string {
	return "{{{JSX:" + c.String() + "}}}"
}
