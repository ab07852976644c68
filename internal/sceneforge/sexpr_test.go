package sceneforge

import (
	"errors"
	"testing"
)

func TestParse_Basics(t *testing.T) {
	vs, err := Parse(`(sphere (at 0 1.5 -2) (r 0.5))`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(vs) != 1 {
		t.Fatalf("want 1 top-level form, got %d", len(vs))
	}
	v := vs[0]
	if v.Head() != "sphere" {
		t.Fatalf("head got %q", v.Head())
	}
	at, ok := formProp(v, "at")
	if !ok {
		t.Fatalf("at property missing")
	}
	ns := formNums(at)
	if len(ns) != 3 || ns[0] != 0 || ns[1] != 1.5 || ns[2] != -2 {
		t.Fatalf("at numbers wrong: %v", ns)
	}
}

func TestParse_CommentsAndWhitespace(t *testing.T) {
	src := `
; leading comment
(a 1) ; trailing comment
; (commented-out 2)
(b 3)
`
	vs, err := Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(vs) != 2 || vs[0].Head() != "a" || vs[1].Head() != "b" {
		t.Fatalf("comments not skipped: %v", vs)
	}
}

func TestParse_QuotedStrings(t *testing.T) {
	vs, err := Parse(`(material "red paint" (albedo 1 0 0))`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if vs[0].List[1].Kind != SymbolValue || vs[0].List[1].Sym != "red paint" {
		t.Fatalf("quoted string wrong: %+v", vs[0].List[1])
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	for _, src := range []string{`)`, `(a (b)`, `(a "unterminated`} {
		_, err := Parse(src)
		if err == nil {
			t.Fatalf("expected syntax error for %q", src)
		}
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Fatalf("want *SyntaxError for %q, got %T", src, err)
		}
	}
}

func TestNumberClassification(t *testing.T) {
	cases := []struct {
		tok string
		num bool
	}{
		{"0", true},
		{"-5", true},
		{"1.5", true},
		{"-0.25", true},
		{"-", false},
		{"5.", false},
		{".5", false},
		{"1.2.3", false},
		{"1e5", false},
		{"abc", false},
		{"-x", false},
	}
	for _, c := range cases {
		vs, err := Parse(c.tok)
		if err != nil {
			t.Fatalf("parse %q: %v", c.tok, err)
		}
		got := vs[0].Kind == NumberValue
		if got != c.num {
			t.Fatalf("%q: number=%v want %v", c.tok, got, c.num)
		}
	}
}

func TestValueString_RoundTrip(t *testing.T) {
	forms := []string{
		`(shape (union (sphere (at 0 0 0) (r 1)) (box (at 2 0 0) (size 1 1 1))) steel)`,
		`(material "two words" (albedo 0.5 0.5 0.5))`,
		`(nums -1 0.25 100)`,
	}
	for _, src := range forms {
		a, err := Parse(src)
		if err != nil {
			t.Fatalf("parse %q: %v", src, err)
		}
		b, err := Parse(a[0].String())
		if err != nil {
			t.Fatalf("reparse %q: %v", a[0].String(), err)
		}
		if !a[0].Equal(b[0]) {
			t.Fatalf("round trip changed structure:\n in: %s\nout: %s", src, b[0])
		}
	}
}

func TestValueString_QuotesWhenNeeded(t *testing.T) {
	// a symbol that looks numeric must be quoted or it reparses as a number
	v := List(Symbol("name"), Symbol("42"))
	b, err := Parse(v.String())
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !v.Equal(b[0]) {
		t.Fatalf("numeric-looking symbol lost: %s -> %s", v, b[0])
	}
}

func TestHead_NonList(t *testing.T) {
	if Symbol("x").Head() != "" || Number(1).Head() != "" || List().Head() != "" {
		t.Fatalf("head of non-forms should be empty")
	}
	if List(Number(1), Symbol("a")).Head() != "" {
		t.Fatalf("list with numeric first element has no head")
	}
}
