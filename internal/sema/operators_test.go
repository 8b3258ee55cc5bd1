package sema

import (
	"fmt"
	"testing"

	"mum/internal/ast"
	"mum/internal/diag"
	"mum/internal/types"
)

type operandKind struct {
	name string
	typ  *types.Type
	make func() ast.Expr
}

var operandKinds = []operandKind{
	{"int", types.Int, func() ast.Expr { return intLit(2) }},
	{"float", types.Float, func() ast.Expr { return floatLit("2.5") }},
	{"str", types.String, func() ast.Expr { return strLit("s") }},
	{"bool", types.Bool, func() ast.Expr { return boolLit(true) }},
}

// binaryExpectation returns the result type of `T op T`, nil when unsupported.
func binaryExpectation(op ast.BinaryOp, t *types.Type) *types.Type {
	numeric := types.IsNumeric(t)
	switch op {
	case ast.BinaryAdd:
		if numeric || t == types.String {
			return t
		}
	case ast.BinarySub, ast.BinaryMul, ast.BinaryDiv, ast.BinaryMod, ast.BinaryPow:
		if numeric {
			return t
		}
	case ast.BinaryLess, ast.BinaryLessEq, ast.BinaryGreater, ast.BinaryGreaterEq:
		if numeric {
			return types.Bool
		}
	case ast.BinaryEq, ast.BinaryNotEq:
		return types.Bool
	case ast.BinaryAnd, ast.BinaryOr:
		if t == types.Bool {
			return types.Bool
		}
	}
	return nil
}

var allBinaryOps = []ast.BinaryOp{
	ast.BinaryAdd, ast.BinarySub, ast.BinaryMul, ast.BinaryDiv, ast.BinaryMod, ast.BinaryPow,
	ast.BinaryLess, ast.BinaryLessEq, ast.BinaryGreater, ast.BinaryGreaterEq, ast.BinaryEq, ast.BinaryNotEq,
	ast.BinaryAnd, ast.BinaryOr,
}

func TestBinaryOperatorMatrix(t *testing.T) {
	for _, op := range allBinaryOps {
		for _, k := range operandKinds {
			t.Run(fmt.Sprintf("%s %s %s", k.name, op, k.name), func(t *testing.T) {
				e := bin(op, k.make(), k.make())
				_, err := analyze(t, printStmt(e))
				want := binaryExpectation(op, k.typ)
				if want == nil {
					expectCode(t, err, diag.SemaUnsupportedOperation)
					return
				}
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !types.Equivalent(e.Type(), want) {
					t.Fatalf("result type %s, want %s", e.Type(), want)
				}
			})
		}
	}
}

func TestMismatchedOperands(t *testing.T) {
	for _, op := range allBinaryOps {
		for _, l := range operandKinds {
			for _, r := range operandKinds {
				if l.typ == r.typ {
					continue
				}
				t.Run(fmt.Sprintf("%s %s %s", l.name, op, r.name), func(t *testing.T) {
					_, err := analyze(t, printStmt(bin(op, l.make(), r.make())))
					expectCode(t, err, diag.SemaIncompatibleOperands)
				})
			}
		}
	}
}

func TestListEquality(t *testing.T) {
	e := bin(ast.BinaryEq, list(intLit(1)), list(intLit(2)))
	mustAnalyze(t, printStmt(e))
	if !types.Equivalent(e.Type(), types.Bool) {
		t.Fatalf("list equality must be bool, got %s", e.Type())
	}

	_, err := analyze(t, printStmt(bin(ast.BinaryAdd, list(intLit(1)), list(intLit(2)))))
	expectCode(t, err, diag.SemaUnsupportedOperation)

	_, err = analyze(t, printStmt(bin(ast.BinaryEq, list(intLit(1)), list(strLit("a")))))
	expectCode(t, err, diag.SemaIncompatibleOperands)
}

func TestUnaryOperators(t *testing.T) {
	tests := []struct {
		op   ast.UnaryOp
		x    func() ast.Expr
		want *types.Type
	}{
		{ast.UnaryNeg, func() ast.Expr { return intLit(1) }, types.Int},
		{ast.UnaryNeg, func() ast.Expr { return floatLit("1.5") }, types.Float},
		{ast.UnaryNeg, func() ast.Expr { return boolLit(true) }, nil},
		{ast.UnaryNeg, func() ast.Expr { return strLit("a") }, nil},
		{ast.UnaryNot, func() ast.Expr { return boolLit(true) }, types.Bool},
		{ast.UnaryNot, func() ast.Expr { return intLit(1) }, nil},
	}
	for _, tt := range tests {
		e := unary(tt.op, tt.x())
		_, err := analyze(t, printStmt(e))
		if tt.want == nil {
			expectCode(t, err, diag.SemaTypeMismatch)
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.op, err)
		}
		if !types.Equivalent(e.Type(), tt.want) {
			t.Fatalf("%s: result type %s, want %s", tt.op, e.Type(), tt.want)
		}
	}
}

func TestNestedExpressionTypes(t *testing.T) {
	// (1 + 2) * 3 < 10 && !false
	arith := bin(ast.BinaryMul, bin(ast.BinaryAdd, intLit(1), intLit(2)), intLit(3))
	rel := bin(ast.BinaryLess, arith, intLit(10))
	e := bin(ast.BinaryAnd, rel, unary(ast.UnaryNot, boolLit(false)))
	mustAnalyze(t, decl(named("bool"), "ok", e))

	if !types.Equivalent(arith.Type(), types.Int) || !types.Equivalent(rel.Type(), types.Bool) {
		t.Fatalf("inner types: %s, %s", arith.Type(), rel.Type())
	}
}
