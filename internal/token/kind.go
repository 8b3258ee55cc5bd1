package token

import "fmt"

// Kind represents the category of a leaf token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// Ident represents an identifier token.
	Ident
	// IntLit is a decimal integer literal.
	IntLit
	// FloatLit is a floating-point literal.
	FloatLit
	// StringLit is a string literal.
	StringLit
	// BoolLit is `true` or `false`.
	BoolLit
	// BinaryLit is a binary literal such as 0b1011.
	BinaryLit
	// Symbol is an operator or punctuation lexeme.
	Symbol
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	Ident:     "Id",
	IntLit:    "Int",
	FloatLit:  "Float",
	StringLit: "Str",
	BoolLit:   "Bool",
	BinaryLit: "Bin",
	Symbol:    "Sym",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind maps the parser's category labels (Id, Int, Float, Str, Bool,
// Bin, Sym) back to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if k != int(Invalid) && name == s {
			return Kind(k), nil
		}
	}
	return Invalid, fmt.Errorf("unknown token category %q", s)
}
