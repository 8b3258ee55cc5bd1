package ast

import (
	"mum/internal/source"
	"mum/internal/symbols"
)

// VarDecl is `T name = Init`.
type VarDecl struct {
	Span     source.Span
	Name     string
	NameSpan source.Span
	Type     TypeExpr
	Init     Expr

	Entity *symbols.Variable
}

// VarAssign is `Target = Value`.
type VarAssign struct {
	Span   source.Span
	Target *Ident
	Value  Expr
}

// Param is a declared function parameter.
type Param struct {
	Span source.Span
	Name string
	Type TypeExpr
}

// FuncDecl declares a function. A nil Result means void.
type FuncDecl struct {
	Span     source.Span
	Name     string
	NameSpan source.Span
	Params   []*Param
	Result   TypeExpr
	Body     []Stmt

	Entity *symbols.Function
}

// CallStmt is a call evaluated for its effect.
type CallStmt struct {
	Call *Call
}

// If is a conditional. Else may hold a single nested *If.
type If struct {
	Span source.Span
	Cond Expr
	Then []Stmt
	Else []Stmt
}

// While is a conditional loop.
type While struct {
	Span source.Span
	Cond Expr
	Body []Stmt
}

// Break leaves the innermost loop.
type Break struct {
	Span source.Span
}

// Return leaves the enclosing function. Value is nil for a bare return.
type Return struct {
	Span  source.Span
	Value Expr
}

// Print writes its argument.
type Print struct {
	Span source.Span
	Arg  Expr
}

// Instruction is a fixed-arity primitive operation `op result, a[, b]`.
// Operands[0] is the result slot.
type Instruction struct {
	Span     source.Span
	Op       InstrOp
	Operands []Expr

	// Entity is the result variable; Declares is set when the instruction
	// introduced it.
	Entity   *symbols.Variable
	Declares bool
}

func (s *VarDecl) Pos() source.Span     { return s.Span }
func (s *VarAssign) Pos() source.Span   { return s.Span }
func (s *Param) Pos() source.Span       { return s.Span }
func (s *FuncDecl) Pos() source.Span    { return s.Span }
func (s *CallStmt) Pos() source.Span    { return s.Call.Span }
func (s *If) Pos() source.Span          { return s.Span }
func (s *While) Pos() source.Span       { return s.Span }
func (s *Break) Pos() source.Span       { return s.Span }
func (s *Return) Pos() source.Span      { return s.Span }
func (s *Print) Pos() source.Span       { return s.Span }
func (s *Instruction) Pos() source.Span { return s.Span }

func (*VarDecl) stmtNode()     {}
func (*VarAssign) stmtNode()   {}
func (*FuncDecl) stmtNode()    {}
func (*CallStmt) stmtNode()    {}
func (*If) stmtNode()          {}
func (*While) stmtNode()       {}
func (*Break) stmtNode()       {}
func (*Return) stmtNode()      {}
func (*Print) stmtNode()       {}
func (*Instruction) stmtNode() {}
