package sema

import (
	"testing"

	"mum/internal/ast"
	"mum/internal/diag"
	"mum/internal/types"
)

func TestHomogeneousList(t *testing.T) {
	l := list(intLit(1), intLit(2), intLit(3))
	d := decl(listOf(named("int")), "xs", l)
	mustAnalyze(t, d)

	if got := l.Type().String(); got != "[int]" {
		t.Fatalf("list type %q", got)
	}
	vals, ok := d.Entity.Value.([]any)
	if !d.Entity.Known || !ok || len(vals) != 3 || vals[2] != int64(3) {
		t.Fatalf("constant list value lost: %#v", d.Entity.Value)
	}
}

func TestHeterogeneousList(t *testing.T) {
	_, err := analyze(t, printStmt(list(intLit(1), strLit("a"))))
	expectCode(t, err, diag.SemaHeterogeneousCollection)

	_, err = analyze(t, printStmt(list(list(intLit(1)), list(floatLit("1.0")))))
	expectCode(t, err, diag.SemaHeterogeneousCollection)
}

func TestEmptyListTyping(t *testing.T) {
	typed := list()
	loose := list()
	nested := list(list(), list(intLit(1)))
	mustAnalyze(t,
		decl(listOf(named("str")), "names", typed),
		printStmt(loose),
		decl(listOf(listOf(named("int"))), "grid", nested),
	)

	if got := typed.Type().String(); got != "[str]" {
		t.Fatalf("expected empty literal to adopt [str], got %s", got)
	}
	if got := loose.Type().String(); got != "[any]" {
		t.Fatalf("unconstrained empty literal: %s", got)
	}
	if got := nested.Type().String(); got != "[[int]]" {
		t.Fatalf("nested literal: %s", got)
	}
}

func TestEmptyListWithoutContextIsAny(t *testing.T) {
	// without an expected type, [] is [any] and does not match [int]
	_, err := analyze(t, printStmt(list(list(), list(intLit(1)))))
	expectCode(t, err, diag.SemaHeterogeneousCollection)
}

func TestListElementRules(t *testing.T) {
	_, err := analyze(t, decl(listOf(named("str")), "s", list(intLit(1))))
	expectCode(t, err, diag.SemaTypeMismatch)

	_, err = analyze(t, fn("v", nil, nil), printStmt(list(call("v"))))
	expectCode(t, err, diag.SemaTypeMismatch)
}

func TestListArgumentsAndReturns(t *testing.T) {
	mustAnalyze(t,
		fn("sum", []*ast.Param{param(listOf(named("float")), "xs")}, named("float"), ret(floatLit("0.0"))),
		decl(named("float"), "a", call("sum", list())),
		decl(named("float"), "b", call("sum", list(floatLit("1.0")))),
		fn("none", nil, listOf(named("int")), ret(list())),
	)

	_, err := analyze(t,
		fn("sum", []*ast.Param{param(listOf(named("float")), "xs")}, named("float"), ret(floatLit("0.0"))),
		callStmt("sum", list(intLit(1))),
	)
	expectCode(t, err, diag.SemaTypeMismatch)
}

func TestListOfVariablesIsNotConstant(t *testing.T) {
	x := decl(named("int"), "x", nil)
	d := decl(listOf(named("int")), "xs", list(ident("x")))
	mustAnalyze(t, x, d)
	if d.Entity.Known {
		t.Fatalf("list with unknown elements cannot be constant")
	}
	if !types.Equivalent(d.Entity.Type, types.MakeList(types.Int)) {
		t.Fatalf("unexpected type %s", d.Entity.Type)
	}
}
