package sceneforge

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the parse value union.
type ValueKind uint8

const (
	SymbolValue ValueKind = iota
	NumberValue
	ListValue
)

// Value is one node of a parsed scene tree: a symbol/string atom, a numeric
// atom, or an ordered list of child values. Values are immutable once the
// parser returns them.
type Value struct {
	Kind ValueKind
	Sym  string
	Num  Real
	List []Value
}

func Symbol(s string) Value  { return Value{Kind: SymbolValue, Sym: s} }
func Number(n Real) Value    { return Value{Kind: NumberValue, Num: n} }
func List(vs ...Value) Value { return Value{Kind: ListValue, List: vs} }

// Head returns the leading symbol of a list value, or "" when the value is
// not a list or its first element is not a symbol.
func (v Value) Head() string {
	if v.Kind != ListValue || len(v.List) == 0 {
		return ""
	}
	if h := v.List[0]; h.Kind == SymbolValue {
		return h.Sym
	}
	return ""
}

// Equal compares two values structurally.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case SymbolValue:
		return v.Sym == o.Sym
	case NumberValue:
		return v.Num == o.Num
	default:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(o.List[i]) {
				return false
			}
		}
		return true
	}
}

// String renders the value back into scene-language text. Parsing the result
// yields a structurally equal tree.
func (v Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v Value) write(b *strings.Builder) {
	switch v.Kind {
	case NumberValue:
		b.WriteString(strconv.FormatFloat(v.Num, 'f', -1, 64))
	case SymbolValue:
		if symbolNeedsQuotes(v.Sym) {
			b.WriteByte('"')
			b.WriteString(v.Sym)
			b.WriteByte('"')
		} else {
			b.WriteString(v.Sym)
		}
	default:
		b.WriteByte('(')
		for i := range v.List {
			if i > 0 {
				b.WriteByte(' ')
			}
			v.List[i].write(b)
		}
		b.WriteByte(')')
	}
}

func symbolNeedsQuotes(s string) bool {
	if s == "" || isNumericToken(s) {
		return true
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '(', ')', ';', '"':
			return true
		}
	}
	return false
}

// SyntaxError reports a malformed token stream. The whole load aborts on it.
type SyntaxError struct {
	Msg string
	Pos int // byte offset into the source
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

// Parse tokenizes and parses source text into its top-level values. The
// parser holds no state beyond the scan position and produces no side
// effects.
func Parse(src string) ([]Value, error) {
	p := &sexprParser{src: src}
	var out []Value
	for {
		p.skipSpace()
		if p.eof() {
			return out, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

type sexprParser struct {
	src string
	pos int
}

func (p *sexprParser) eof() bool { return p.pos >= len(p.src) }

// skipSpace advances over whitespace and ';' line comments.
func (p *sexprParser) skipSpace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		case ';':
			for !p.eof() && p.src[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *sexprParser) value() (Value, error) {
	switch c := p.src[p.pos]; c {
	case '(':
		return p.list()
	case ')':
		return Value{}, &SyntaxError{Msg: "unmatched ')'", Pos: p.pos}
	case '"':
		return p.stringAtom()
	default:
		return p.atom(), nil
	}
}

func (p *sexprParser) list() (Value, error) {
	open := p.pos
	p.pos++ // consume '('
	var kids []Value
	for {
		p.skipSpace()
		if p.eof() {
			return Value{}, &SyntaxError{Msg: "unexpected end of input inside list", Pos: open}
		}
		if p.src[p.pos] == ')' {
			p.pos++
			return Value{Kind: ListValue, List: kids}, nil
		}
		v, err := p.value()
		if err != nil {
			return Value{}, err
		}
		kids = append(kids, v)
	}
}

func (p *sexprParser) stringAtom() (Value, error) {
	open := p.pos
	p.pos++ // consume '"'
	start := p.pos
	for !p.eof() {
		if p.src[p.pos] == '"' {
			s := p.src[start:p.pos]
			p.pos++
			return Value{Kind: SymbolValue, Sym: s}, nil
		}
		p.pos++
	}
	return Value{}, &SyntaxError{Msg: "unterminated string", Pos: open}
}

func (p *sexprParser) atom() Value {
	start := p.pos
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r', '(', ')', ';', '"':
			goto done
		}
		p.pos++
	}
done:
	tok := p.src[start:p.pos]
	if isNumericToken(tok) {
		// Locale-independent; the token shape guarantees ParseFloat accepts it.
		n, _ := strconv.ParseFloat(tok, 64)
		return Value{Kind: NumberValue, Num: n}
	}
	return Value{Kind: SymbolValue, Sym: tok}
}

// isNumericToken accepts an optional leading '-', digits, and at most one
// decimal point with digits on both sides. Exponent notation is not a number
// in the scene language.
func isNumericToken(tok string) bool {
	i := 0
	if i < len(tok) && tok[i] == '-' {
		i++
	}
	digits := 0
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		i++
		digits++
	}
	if digits == 0 {
		return false
	}
	if i < len(tok) && tok[i] == '.' {
		i++
		frac := 0
		for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
			i++
			frac++
		}
		if frac == 0 {
			return false
		}
	}
	return i == len(tok)
}
