// Package ast defines the syntax tree handed over by the parser.
// The tree is a closed set of node variants behind the sealed Stmt, Expr
// and TypeExpr interfaces. The analyzer decorates nodes in place:
// every Expr gets a type, identifiers get their entity and a value snapshot,
// declarations and instructions get the entity they bind.
package ast

import (
	"mum/internal/source"
	"mum/internal/types"
)

// Node is implemented by every tree node.
type Node interface {
	Pos() source.Span
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
	// Type returns the resolved type, nil before analysis.
	Type() *types.Type
	SetType(t *types.Type)
}

// TypeExpr is a type annotation as written in source.
type TypeExpr interface {
	Node
	typeExprNode()
	String() string
}

// Program is the root of a parsed file.
type Program struct {
	Span  source.Span
	Stmts []Stmt
}

func (p *Program) Pos() source.Span { return p.Span }

// typed carries the decoration shared by all expressions.
type typed struct {
	typ *types.Type
}

func (e *typed) Type() *types.Type     { return e.typ }
func (e *typed) SetType(t *types.Type) { e.typ = t }
func (*typed) exprNode()               {}
