package sema

import (
	"errors"
	"strconv"
	"testing"

	"mum/internal/ast"
	"mum/internal/diag"
	"mum/internal/source"
	"mum/internal/token"
)

var spanSeq uint32

// nextSpan hands out distinct spans so notes can be told apart.
func nextSpan() source.Span {
	spanSeq += 10
	return source.Span{File: 0, Start: spanSeq, End: spanSeq + 5}
}

func ident(name string) *ast.Ident { return &ast.Ident{Span: nextSpan(), Name: name} }

func lit(kind token.Kind, text string) *ast.Literal {
	return &ast.Literal{Token: token.Token{Kind: kind, Span: nextSpan(), Text: text}}
}

func intLit(v int64) *ast.Literal   { return lit(token.IntLit, strconv.FormatInt(v, 10)) }
func floatLit(v string) *ast.Literal { return lit(token.FloatLit, v) }
func strLit(v string) *ast.Literal   { return lit(token.StringLit, strconv.Quote(v)) }
func boolLit(v bool) *ast.Literal    { return lit(token.BoolLit, strconv.FormatBool(v)) }

func named(name string) *ast.NamedType        { return &ast.NamedType{Span: nextSpan(), Name: name} }
func listOf(elem ast.TypeExpr) *ast.ListType { return &ast.ListType{Span: nextSpan(), Elem: elem} }

func list(elems ...ast.Expr) *ast.List { return &ast.List{Span: nextSpan(), Elems: elems} }

func bin(op ast.BinaryOp, l, r ast.Expr) *ast.Binary {
	return &ast.Binary{Span: nextSpan(), Op: op, Left: l, Right: r}
}

func unary(op ast.UnaryOp, x ast.Expr) *ast.Unary { return &ast.Unary{Span: nextSpan(), Op: op, X: x} }

func call(name string, args ...ast.Expr) *ast.Call {
	return &ast.Call{Span: nextSpan(), Name: name, NameSpan: nextSpan(), Args: args}
}

func decl(typ ast.TypeExpr, name string, init ast.Expr) *ast.VarDecl {
	return &ast.VarDecl{Span: nextSpan(), Name: name, NameSpan: nextSpan(), Type: typ, Init: init}
}

func assign(name string, value ast.Expr) *ast.VarAssign {
	return &ast.VarAssign{Span: nextSpan(), Target: ident(name), Value: value}
}

func param(typ ast.TypeExpr, name string) *ast.Param {
	return &ast.Param{Span: nextSpan(), Name: name, Type: typ}
}

func fn(name string, params []*ast.Param, result ast.TypeExpr, body ...ast.Stmt) *ast.FuncDecl {
	return &ast.FuncDecl{Span: nextSpan(), Name: name, NameSpan: nextSpan(), Params: params, Result: result, Body: body}
}

func callStmt(name string, args ...ast.Expr) *ast.CallStmt { return &ast.CallStmt{Call: call(name, args...)} }

func ifStmt(cond ast.Expr, then []ast.Stmt, els []ast.Stmt) *ast.If {
	return &ast.If{Span: nextSpan(), Cond: cond, Then: then, Else: els}
}

func while(cond ast.Expr, body ...ast.Stmt) *ast.While {
	return &ast.While{Span: nextSpan(), Cond: cond, Body: body}
}

func ret(value ast.Expr) *ast.Return    { return &ast.Return{Span: nextSpan(), Value: value} }
func brk() *ast.Break                   { return &ast.Break{Span: nextSpan()} }
func printStmt(arg ast.Expr) *ast.Print { return &ast.Print{Span: nextSpan(), Arg: arg} }

func instr(op ast.InstrOp, operands ...ast.Expr) *ast.Instruction {
	return &ast.Instruction{Span: nextSpan(), Op: op, Operands: operands}
}

func stmts(s ...ast.Stmt) []ast.Stmt { return s }

func analyze(t *testing.T, s ...ast.Stmt) (*ast.Program, error) {
	t.Helper()
	return Analyze(&ast.Program{Stmts: s}, Options{})
}

func mustAnalyze(t *testing.T, s ...ast.Stmt) *ast.Program {
	t.Helper()
	prog, err := analyze(t, s...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return prog
}

func expectCode(t *testing.T, err error, code diag.Code) *Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got success", code.ID())
	}
	var serr *Error
	if !errors.As(err, &serr) {
		t.Fatalf("expected *sema.Error, got %T: %v", err, err)
	}
	if serr.Code != code {
		t.Fatalf("expected %s, got %s: %s", code.ID(), serr.Code.ID(), serr.Message)
	}
	return serr
}
