// Package opt simplifies an analyzed tree before code generation.
//
// The pass folds operators over literal operands, applies algebraic
// identities and drops branches whose condition is a literal. Identifiers
// are never replaced by their values: a variable may be reassigned after
// its declaration, so only literals count as constants here.
package opt

import (
	"strconv"

	"mum/internal/ast"
	"mum/internal/diag"
	"mum/internal/trace"
)

// Options configure an optimization pass.
type Options struct {
	// Reporter receives OPT warnings; nil drops them.
	Reporter   diag.Reporter
	Tracer     trace.Tracer
	ParentSpan uint64
}

// Optimize rewrites prog in place and returns it. prog must have passed
// semantic analysis: folding relies on the resolved expression types.
func Optimize(prog *ast.Program, opts Options) *ast.Program {
	if prog == nil {
		return nil
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	span := trace.Begin(tracer, trace.ScopePass, "opt", opts.ParentSpan)

	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	o := &optimizer{reporter: reporter}
	prog.Stmts = o.block(prog.Stmts)

	span.WithExtra("folded", strconv.Itoa(o.folded)).
		WithExtra("removed", strconv.Itoa(o.removed)).
		End("")
	return prog
}

type optimizer struct {
	reporter diag.Reporter
	folded   int // expressions replaced by a literal or an operand
	removed  int // statements dropped or spliced
}

// block optimizes a statement list. A statement may expand into several
// (a collapsed if) or into none (a dead loop).
func (o *optimizer) block(stmts []ast.Stmt) []ast.Stmt {
	if len(stmts) == 0 {
		return stmts
	}
	out := make([]ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, o.stmt(s)...)
	}
	return out
}

func (o *optimizer) stmt(s ast.Stmt) []ast.Stmt {
	switch s := s.(type) {
	case *ast.VarDecl:
		if s.Init != nil {
			s.Init = o.expr(s.Init)
		}
	case *ast.VarAssign:
		s.Value = o.expr(s.Value)
	case *ast.FuncDecl:
		s.Body = o.block(s.Body)
	case *ast.CallStmt:
		o.call(s.Call)
	case *ast.If:
		return o.ifStmt(s)
	case *ast.While:
		s.Cond = o.expr(s.Cond)
		if v, ok := boolLiteral(s.Cond); ok && !v {
			o.removed++
			diag.ReportInfo(o.reporter, diag.OptDeadBranch, s.Span, "loop condition is always false; loop removed").
				WithFix("remove the loop", diag.FixEdit{Span: s.Span}).
				Emit()
			return nil
		}
		s.Body = o.block(s.Body)
	case *ast.Return:
		if s.Value != nil {
			s.Value = o.expr(s.Value)
		}
	case *ast.Print:
		s.Arg = o.expr(s.Arg)
	case *ast.Instruction:
		// the result slot is written, never folded
		for i := 1; i < len(s.Operands); i++ {
			s.Operands[i] = o.expr(s.Operands[i])
		}
	case *ast.Break:
	}
	return []ast.Stmt{s}
}

func (o *optimizer) ifStmt(s *ast.If) []ast.Stmt {
	s.Cond = o.expr(s.Cond)
	s.Then = o.block(s.Then)
	s.Else = o.block(s.Else)

	v, ok := boolLiteral(s.Cond)
	if !ok {
		return []ast.Stmt{s}
	}
	o.removed++
	if v {
		if len(s.Else) > 0 {
			diag.ReportInfo(o.reporter, diag.OptDeadBranch, s.Span, "condition is always true; else branch removed").Emit()
		}
		return s.Then
	}
	diag.ReportInfo(o.reporter, diag.OptDeadBranch, s.Span, "condition is always false; then branch removed").Emit()
	return s.Else
}

func (o *optimizer) call(c *ast.Call) {
	for i, arg := range c.Args {
		c.Args[i] = o.expr(arg)
	}
	if c.Guard != nil {
		c.Guard = o.expr(c.Guard)
	}
}

func (o *optimizer) expr(e ast.Expr) ast.Expr {
	switch e := e.(type) {
	case *ast.Binary:
		e.Left = o.expr(e.Left)
		e.Right = o.expr(e.Right)
		return o.binary(e)
	case *ast.Unary:
		e.X = o.expr(e.X)
		return o.unary(e)
	case *ast.Call:
		o.call(e)
	case *ast.List:
		for i, el := range e.Elems {
			e.Elems[i] = o.expr(el)
		}
	}
	return e
}

func (o *optimizer) binary(b *ast.Binary) ast.Expr {
	if (b.Op == ast.BinaryDiv || b.Op == ast.BinaryMod) && isZero(b.Right) {
		diag.ReportWarning(o.reporter, diag.OptDivisionByZero, b.Span, "division by constant zero").
			WithNote(b.Right.Pos(), "divisor is zero").
			Emit()
		return b
	}
	l, lok := b.Left.(*ast.Literal)
	r, rok := b.Right.(*ast.Literal)
	if lok && rok {
		if v, ok := foldBinary(b.Op, l.Value, r.Value); ok {
			o.folded++
			return makeLiteral(v, b.Type(), b.Span)
		}
	}
	if repl := simplify(b); repl != nil {
		o.folded++
		return repl
	}
	return b
}

func (o *optimizer) unary(u *ast.Unary) ast.Expr {
	x, ok := u.X.(*ast.Literal)
	if !ok {
		return u
	}
	if v, ok := foldUnary(u.Op, x.Value); ok {
		o.folded++
		return makeLiteral(v, u.Type(), u.Span)
	}
	return u
}
