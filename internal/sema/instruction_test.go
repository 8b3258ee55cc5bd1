package sema

import (
	"testing"

	"mum/internal/ast"
	"mum/internal/diag"
	"mum/internal/types"
)

func TestInstructionDeclaresResult(t *testing.T) {
	in := instr(ast.InstrAdd, ident("r"), intLit(1), intLit(2))
	mustAnalyze(t, in)

	if !in.Declares || in.Entity == nil {
		t.Fatalf("instruction must declare r")
	}
	if !types.Equivalent(in.Entity.Type, types.Int) {
		t.Fatalf("r: expected int, got %s", in.Entity.Type)
	}
	if in.Entity.Known {
		t.Fatalf("instruction results are computed later")
	}
	d := in.Entity.Deferred
	if d == nil || d.Op != "add" || len(d.Operands) != 2 {
		t.Fatalf("unexpected deferred computation: %+v", d)
	}
	if d.Operands[0].Value != int64(1) || d.Operands[1].Value != int64(2) {
		t.Fatalf("literal operands must carry values: %+v", d.Operands)
	}
}

func TestInstructionReusesResult(t *testing.T) {
	x := decl(named("int"), "x", intLit(1))
	src := ident("x")
	in := instr(ast.InstrMul, ident("x"), src, intLit(3))
	mustAnalyze(t, x, in)

	if in.Declares || in.Entity != x.Entity {
		t.Fatalf("instruction must store into the existing x")
	}
	if x.Entity.Known {
		t.Fatalf("overwritten variable must lose its value")
	}
	if in.Entity.Deferred.Operands[0].Var != x.Entity {
		t.Fatalf("variable operand must reference x")
	}
}

func TestCmpYieldsBool(t *testing.T) {
	in := instr(ast.InstrCmp, ident("c"), floatLit("1.0"), floatLit("2.0"))
	mustAnalyze(t, in, ifStmt(ident("c"), nil, nil))
	if !types.Equivalent(in.Entity.Type, types.Bool) {
		t.Fatalf("cmp result must be bool, got %s", in.Entity.Type)
	}

	mustAnalyze(t, instr(ast.InstrCmp, ident("c"), strLit("a"), strLit("b")))
}

func TestMovAndNeg(t *testing.T) {
	mov := instr(ast.InstrMov, ident("s"), strLit("hi"))
	neg := instr(ast.InstrNeg, ident("n"), floatLit("2.0"))
	mustAnalyze(t, mov, neg)
	if !types.Equivalent(mov.Entity.Type, types.String) || !types.Equivalent(neg.Entity.Type, types.Float) {
		t.Fatalf("unexpected result types %s, %s", mov.Entity.Type, neg.Entity.Type)
	}
}

func TestInstructionErrors(t *testing.T) {
	tests := []struct {
		name  string
		stmts []ast.Stmt
		code  diag.Code
	}{
		{"add with two operands", stmts(instr(ast.InstrAdd, ident("r"), intLit(1))), diag.SemaArityMismatch},
		{"mov with three operands", stmts(instr(ast.InstrMov, ident("r"), intLit(1), intLit(2))), diag.SemaArityMismatch},
		{"result is a literal", stmts(instr(ast.InstrMov, intLit(3), intLit(4))), diag.SemaUnsupportedOperation},
		{"undeclared operand", stmts(instr(ast.InstrAdd, ident("r"), ident("a"), intLit(1))), diag.SemaUndeclaredIdentifier},
		{"mixed operand types", stmts(instr(ast.InstrAdd, ident("r"), intLit(1), floatLit("2.0"))), diag.SemaIncompatibleOperands},
		{"arithmetic on strings", stmts(instr(ast.InstrSub, ident("r"), strLit("a"), strLit("b"))), diag.SemaUnsupportedOperation},
		{"neg of bool", stmts(instr(ast.InstrNeg, ident("r"), boolLit(true))), diag.SemaUnsupportedOperation},
		{"result type mismatch", stmts(decl(named("str"), "s", strLit("a")), instr(ast.InstrAdd, ident("s"), intLit(1), intLit(2))), diag.SemaResultTypeMismatch},
		{"cmp into int", stmts(decl(named("int"), "c", nil), instr(ast.InstrCmp, ident("c"), intLit(1), intLit(2))), diag.SemaResultTypeMismatch},
		{"store into constant", stmts(instr(ast.InstrMov, ident("pi"), floatLit("3.0"))), diag.SemaUnsupportedOperation},
		{"store into type name", stmts(instr(ast.InstrMov, ident("int"), intLit(3))), diag.SemaTypeMismatch},
		{"void operand", stmts(fn("v", nil, nil), instr(ast.InstrMov, ident("r"), call("v"))), diag.SemaUnsupportedOperation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyze(t, tt.stmts...)
			expectCode(t, err, tt.code)
		})
	}
}

func TestInstructionResultVisibleAfterwards(t *testing.T) {
	ref := ident("r")
	mustAnalyze(t,
		instr(ast.InstrDiv, ident("r"), intLit(8), intLit(2)),
		decl(named("int"), "q", ref),
	)
	if ref.Known {
		t.Fatalf("deferred result must not be known at resolution")
	}
}

func TestInstructionInBlockDoesNotLeak(t *testing.T) {
	_, err := analyze(t,
		ifStmt(boolLit(true), stmts(instr(ast.InstrMov, ident("r"), intLit(1))), nil),
		printStmt(ident("r")),
	)
	expectCode(t, err, diag.SemaUndeclaredIdentifier)
}
