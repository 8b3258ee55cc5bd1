package ast

import (
	"testing"

	"mum/internal/token"
)

func TestBinaryOpClass(t *testing.T) {
	cases := map[string]OpClass{
		"+": ClassArithmetic, "^": ClassArithmetic, "%": ClassArithmetic,
		"<": ClassRelational, "!=": ClassRelational,
		"&&": ClassLogical, "||": ClassLogical,
	}
	for lexeme, want := range cases {
		op, err := ParseBinaryOp(lexeme)
		if err != nil {
			t.Fatalf("ParseBinaryOp(%q): %v", lexeme, err)
		}
		if op.String() != lexeme {
			t.Fatalf("round trip: got %q want %q", op.String(), lexeme)
		}
		if op.Class() != want {
			t.Fatalf("%s: class %v, want %v", lexeme, op.Class(), want)
		}
	}
	if _, err := ParseBinaryOp("<<"); err == nil {
		t.Fatalf("expected error for unknown operator")
	}
}

func TestInstrArity(t *testing.T) {
	want := map[string]int{"mov": 2, "neg": 2, "add": 3, "sub": 3, "mul": 3, "div": 3, "cmp": 3}
	for name, arity := range want {
		op, err := ParseInstrOp(name)
		if err != nil {
			t.Fatalf("ParseInstrOp(%q): %v", name, err)
		}
		if op.Arity() != arity {
			t.Fatalf("%s: arity %d, want %d", name, op.Arity(), arity)
		}
	}
	if InstrCmp.IsArithmetic() || InstrMov.IsArithmetic() {
		t.Fatalf("cmp and mov are not arithmetic")
	}
}

func TestLiteralValue(t *testing.T) {
	cases := []struct {
		tok  token.Token
		want any
	}{
		{token.Token{Kind: token.IntLit, Text: "42"}, int64(42)},
		{token.Token{Kind: token.FloatLit, Text: "2.5"}, 2.5},
		{token.Token{Kind: token.StringLit, Text: "hi"}, "hi"},
		{token.Token{Kind: token.StringLit, Text: `"a\nb"`}, "a\nb"},
		{token.Token{Kind: token.BoolLit, Text: "false"}, false},
		{token.Token{Kind: token.BinaryLit, Text: "0b1011"}, uint64(11)},
	}
	for _, tc := range cases {
		got, err := LiteralValue(tc.tok)
		if err != nil {
			t.Fatalf("LiteralValue(%v): %v", tc.tok, err)
		}
		if got != tc.want {
			t.Fatalf("LiteralValue(%v) = %#v, want %#v", tc.tok, got, tc.want)
		}
	}
	if _, err := LiteralValue(token.Token{Kind: token.IntLit, Text: "x1"}); err == nil {
		t.Fatalf("expected error for malformed int")
	}
	if _, err := LiteralValue(token.Token{Kind: token.Ident, Text: "x"}); err == nil {
		t.Fatalf("identifiers are not literals")
	}
}

func TestFormatValue(t *testing.T) {
	cases := map[string]any{
		"3":          int64(3),
		"2.0":        2.0,
		`"s"`:        "s",
		"true":       true,
		"0b101":      uint64(5),
		"[1, 2]":     []any{int64(1), int64(2)},
		"<unknown>":  nil,
	}
	for want, v := range cases {
		if got := FormatValue(v); got != want {
			t.Fatalf("FormatValue(%#v) = %q, want %q", v, got, want)
		}
	}
}

func TestInspectVisitsNestedNodes(t *testing.T) {
	prog := &Program{Stmts: []Stmt{
		&FuncDecl{Name: "f", Body: []Stmt{
			&While{
				Cond: &Literal{Token: token.Token{Kind: token.BoolLit, Text: "true"}},
				Body: []Stmt{&Print{Arg: &Binary{Op: BinaryAdd, Left: &Ident{Name: "a"}, Right: &Ident{Name: "b"}}}, &Break{}},
			},
		}},
	}}
	var idents []string
	count := 0
	Inspect(prog, func(n Node) bool {
		count++
		if id, ok := n.(*Ident); ok {
			idents = append(idents, id.Name)
		}
		return true
	})
	if len(idents) != 2 || idents[0] != "a" || idents[1] != "b" {
		t.Fatalf("unexpected idents %v", idents)
	}
	// program, func, while, literal, print, binary, a, b, break
	if count != 9 {
		t.Fatalf("expected 9 nodes, got %d", count)
	}
}
