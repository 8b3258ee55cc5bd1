package ast

import (
	"mum/internal/source"
	"mum/internal/symbols"
	"mum/internal/token"
)

// Ident is a reference to a named entity.
type Ident struct {
	typed
	Span source.Span
	Name string

	// Decoration: the entity and its value snapshot at resolution time.
	Entity symbols.Entity
	Value  any
	Known  bool
}

// Literal is a constant typed by its token category.
type Literal struct {
	typed
	Token token.Token
	Value any
}

// Binary is `Left Op Right`.
type Binary struct {
	typed
	Span  source.Span
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// Unary is `Op X`.
type Unary struct {
	typed
	Span source.Span
	Op   UnaryOp
	X    Expr
}

// Call invokes a function by name. Guard, when present, must be boolean.
type Call struct {
	typed
	Span     source.Span
	Name     string
	NameSpan source.Span
	Args     []Expr
	Guard    Expr

	Entity *symbols.Function
}

// List is a list literal `[a, b, c]`.
type List struct {
	typed
	Span  source.Span
	Elems []Expr
}

func (e *Ident) Pos() source.Span   { return e.Span }
func (e *Literal) Pos() source.Span { return e.Token.Span }
func (e *Binary) Pos() source.Span  { return e.Span }
func (e *Unary) Pos() source.Span   { return e.Span }
func (e *Call) Pos() source.Span    { return e.Span }
func (e *List) Pos() source.Span    { return e.Span }

// Variable returns the resolved variable, if the identifier names one.
func (e *Ident) Variable() (*symbols.Variable, bool) {
	v, ok := e.Entity.(*symbols.Variable)
	return v, ok
}
