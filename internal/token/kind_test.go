package token_test

import (
	"testing"

	"mum/internal/token"
)

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{token.IntLit, token.FloatLit, token.StringLit, token.BoolLit, token.BinaryLit}
	for _, k := range lits {
		if !(token.Token{Kind: k}).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.Symbol, token.Invalid} {
		if (token.Token{Kind: k}).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range []token.Kind{token.Ident, token.IntLit, token.FloatLit, token.StringLit, token.BoolLit, token.BinaryLit, token.Symbol} {
		got, err := token.ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", k.String(), err)
		}
		if got != k {
			t.Fatalf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if _, err := token.ParseKind("Invalid"); err == nil {
		t.Fatalf("Invalid must not be accepted as a category")
	}
}
