package sema

import (
	"mum/internal/ast"
	"mum/internal/diag"
	"mum/internal/source"
	"mum/internal/symbols"
	"mum/internal/token"
	"mum/internal/types"
)

// exprExpect analyzes e where a value of type want is expected. The
// expectation only types empty list literals; all checks stay with the caller.
func (a *analyzer) exprExpect(scope *symbols.Scope, e ast.Expr, want *types.Type) (*types.Type, error) {
	if l, ok := e.(*ast.List); ok {
		return a.list(scope, l, want)
	}
	return a.expr(scope, e)
}

func (a *analyzer) expr(scope *symbols.Scope, e ast.Expr) (*types.Type, error) {
	var (
		t   *types.Type
		err error
	)
	switch e := e.(type) {
	case *ast.Literal:
		t, err = a.literal(e)
	case *ast.Ident:
		t, err = a.ident(scope, e)
	case *ast.Binary:
		t, err = a.binary(scope, e)
	case *ast.Unary:
		t, err = a.unary(scope, e)
	case *ast.Call:
		t, err = a.call(scope, e)
	case *ast.List:
		t, err = a.list(scope, e, nil)
	case nil:
		return nil, errorf(diag.SemaError, source.Span{}, "", "missing expression")
	default:
		return nil, errorf(diag.SemaError, e.Pos(), "", "unexpected expression %T", e)
	}
	if err != nil {
		return nil, err
	}
	e.SetType(t)
	return t, nil
}

func (a *analyzer) literal(l *ast.Literal) (*types.Type, error) {
	var t *types.Type
	switch l.Token.Kind {
	case token.IntLit:
		t = types.Int
	case token.FloatLit:
		t = types.Float
	case token.StringLit:
		t = types.String
	case token.BoolLit:
		t = types.Bool
	case token.BinaryLit:
		t = types.Binary
	default:
		return nil, errorf(diag.SemaError, l.Token.Span, l.Token.Text, "token %s is not a literal", l.Token)
	}
	if l.Value == nil {
		v, err := ast.LiteralValue(l.Token)
		if err != nil {
			return nil, errorf(diag.SemaError, l.Token.Span, l.Token.Text, "%v", err)
		}
		l.Value = v
	}
	return t, nil
}

func (a *analyzer) ident(scope *symbols.Scope, id *ast.Ident) (*types.Type, error) {
	ent, err := scope.Resolve(symbols.NSValue, id.Name)
	if err != nil {
		return nil, errorf(diag.SemaUndeclaredIdentifier, id.Span, id.Name, "identifier %q is not declared", id.Name)
	}
	switch ent := ent.(type) {
	case *symbols.Variable:
		id.Entity = ent
		id.Value, id.Known = ent.Value, ent.Known
		return ent.Type, nil
	case *symbols.TypeName:
		return nil, errorf(diag.SemaTypeMismatch, id.Span, id.Name, "type %q cannot be used as a value", id.Name)
	default:
		return nil, errorf(diag.SemaTypeMismatch, id.Span, id.Name, "%s %q cannot be used as a value", symbols.EntityKind(ent), id.Name)
	}
}

func (a *analyzer) binary(scope *symbols.Scope, b *ast.Binary) (*types.Type, error) {
	lt, err := a.expr(scope, b.Left)
	if err != nil {
		return nil, err
	}
	rt, err := a.expr(scope, b.Right)
	if err != nil {
		return nil, err
	}
	op := b.Op.String()
	if !types.Equivalent(lt, rt) {
		return nil, errorf(diag.SemaIncompatibleOperands, b.Span, op,
			"operands of %q have incompatible types %s and %s", op, lt, rt)
	}
	res, ok := binaryResultType(b.Op, lt)
	if !ok {
		return nil, errorf(diag.SemaUnsupportedOperation, b.Span, op,
			"%s operator %q is not supported for %s", b.Op.Class(), op, lt)
	}
	return res, nil
}

func (a *analyzer) unary(scope *symbols.Scope, u *ast.Unary) (*types.Type, error) {
	xt, err := a.expr(scope, u.X)
	if err != nil {
		return nil, err
	}
	res, ok := unaryResultType(u.Op, xt)
	if !ok {
		op := u.Op.String()
		return nil, errorf(diag.SemaTypeMismatch, u.Span, op, "operator %q cannot be applied to %s", op, xt)
	}
	return res, nil
}

func (a *analyzer) call(scope *symbols.Scope, c *ast.Call) (*types.Type, error) {
	ent, err := scope.Resolve(symbols.NSFunction, c.Name)
	if err != nil {
		return nil, errorf(diag.SemaUndeclaredFunction, c.NameSpan, c.Name, "function %q is not declared", c.Name)
	}
	fn := ent.(*symbols.Function)
	if len(c.Args) != len(fn.Params) {
		return nil, errorf(diag.SemaArityMismatch, c.Span, c.Name,
			"function %q expects %d argument(s), got %d", c.Name, len(fn.Params), len(c.Args))
	}
	for i, arg := range c.Args {
		want := fn.Params[i].Type
		got, err := a.exprExpect(scope, arg, want)
		if err != nil {
			return nil, err
		}
		if !types.Assignable(got, want) {
			return nil, errorf(diag.SemaTypeMismatch, arg.Pos(), c.Name,
				"argument %d of %q must be %s, got %s", i+1, c.Name, want, got)
		}
	}
	if c.Guard != nil {
		gt, err := a.expr(scope, c.Guard)
		if err != nil {
			return nil, err
		}
		if !types.Equivalent(gt, types.Bool) {
			return nil, errorf(diag.SemaTypeMismatch, c.Guard.Pos(), c.Name,
				"guard of call to %q must be bool, got %s", c.Name, gt)
		}
	}
	c.Entity = fn
	c.SetType(fn.Result)
	return fn.Result, nil
}

// list checks a list literal. Lists are homogeneous. want, when it is a list
// type, gives empty literals (including nested ones) their type.
func (a *analyzer) list(scope *symbols.Scope, l *ast.List, want *types.Type) (*types.Type, error) {
	var hint *types.Type
	if want != nil && want.Kind == types.KindList {
		hint = want.Elem
	}
	if len(l.Elems) == 0 {
		t := want
		if hint == nil {
			t = types.MakeList(types.Any)
		}
		l.SetType(t)
		return t, nil
	}
	var elem *types.Type
	for _, el := range l.Elems {
		expect := hint
		if expect == nil {
			expect = elem
		}
		t, err := a.exprExpect(scope, el, expect)
		if err != nil {
			return nil, err
		}
		if types.IsVoid(t) {
			return nil, errorf(diag.SemaTypeMismatch, el.Pos(), "void", "list elements cannot be void")
		}
		if elem == nil {
			elem = t
			continue
		}
		if !types.Equivalent(t, elem) {
			return nil, errorf(diag.SemaHeterogeneousCollection, el.Pos(), t.String(),
				"list elements must share one type: %s and %s", elem, t)
		}
	}
	t := types.MakeList(elem)
	l.SetType(t)
	return t, nil
}
