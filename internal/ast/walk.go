package ast

import "fmt"

// Inspect traverses the tree in depth-first order. It calls f(n) for each
// node; if f returns true, Inspect visits the children of n.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch n := n.(type) {
	case *Program:
		inspectStmts(n.Stmts, f)
	case *VarDecl:
		if n.Type != nil {
			Inspect(n.Type, f)
		}
		inspectExpr(n.Init, f)
	case *VarAssign:
		Inspect(n.Target, f)
		inspectExpr(n.Value, f)
	case *FuncDecl:
		for _, p := range n.Params {
			Inspect(p, f)
		}
		if n.Result != nil {
			Inspect(n.Result, f)
		}
		inspectStmts(n.Body, f)
	case *Param:
		if n.Type != nil {
			Inspect(n.Type, f)
		}
	case *CallStmt:
		Inspect(n.Call, f)
	case *If:
		inspectExpr(n.Cond, f)
		inspectStmts(n.Then, f)
		inspectStmts(n.Else, f)
	case *While:
		inspectExpr(n.Cond, f)
		inspectStmts(n.Body, f)
	case *Break:
	case *Return:
		inspectExpr(n.Value, f)
	case *Print:
		inspectExpr(n.Arg, f)
	case *Instruction:
		for _, op := range n.Operands {
			inspectExpr(op, f)
		}
	case *Ident, *Literal:
	case *Binary:
		inspectExpr(n.Left, f)
		inspectExpr(n.Right, f)
	case *Unary:
		inspectExpr(n.X, f)
	case *Call:
		for _, a := range n.Args {
			inspectExpr(a, f)
		}
		inspectExpr(n.Guard, f)
	case *List:
		for _, el := range n.Elems {
			inspectExpr(el, f)
		}
	case *NamedType:
	case *ListType:
		Inspect(n.Elem, f)
	default:
		panic(fmt.Sprintf("ast.Inspect: unexpected node %T", n))
	}
}

func inspectStmts(list []Stmt, f func(Node) bool) {
	for _, s := range list {
		Inspect(s, f)
	}
}

// inspectExpr skips nil expressions so optional children need no checks.
func inspectExpr(e Expr, f func(Node) bool) {
	if e != nil {
		Inspect(e, f)
	}
}
