package ast

import "mum/internal/source"

// NamedType refers to a type by name (`int`, `str`, ...).
type NamedType struct {
	Span source.Span
	Name string
}

// ListType is `[Elem]`.
type ListType struct {
	Span source.Span
	Elem TypeExpr
}

func (t *NamedType) Pos() source.Span { return t.Span }
func (t *ListType) Pos() source.Span  { return t.Span }

func (*NamedType) typeExprNode() {}
func (*ListType) typeExprNode()  {}

func (t *NamedType) String() string { return t.Name }
func (t *ListType) String() string  { return "[" + t.Elem.String() + "]" }
