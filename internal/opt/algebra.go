package opt

import (
	"mum/internal/ast"
	"mum/internal/types"
)

// simplify applies algebraic identities to a binary expression with at
// least one non-literal side. It returns nil when no rule matches.
// An operand is only discarded when evaluating it has no effect.
func simplify(b *ast.Binary) ast.Expr {
	l, r := b.Left, b.Right
	switch b.Op {
	case ast.BinaryAdd:
		// -0.0 + 0.0 is +0.0
		if types.Equivalent(b.Type(), types.Float) {
			break
		}
		if isZero(r) {
			return l
		}
		if isZero(l) {
			return r
		}
	case ast.BinarySub:
		if isZero(r) {
			return l
		}
		if isZero(l) && types.Equivalent(r.Type(), types.Int) {
			neg := &ast.Unary{Span: b.Span, Op: ast.UnaryNeg, X: r}
			neg.SetType(b.Type())
			return neg
		}
	case ast.BinaryMul:
		if isOne(r) {
			return l
		}
		if isOne(l) {
			return r
		}
		if types.Equivalent(b.Type(), types.Int) {
			if isZero(r) && pure(l) {
				return makeLiteral(int64(0), b.Type(), b.Span)
			}
			if isZero(l) && pure(r) {
				return makeLiteral(int64(0), b.Type(), b.Span)
			}
		}
	case ast.BinaryDiv:
		if isOne(r) {
			return l
		}
	case ast.BinaryPow:
		if (isZero(r) && pure(l)) || (isOne(l) && pure(r)) {
			return makeLiteral(one(b.Type()), b.Type(), b.Span)
		}
	case ast.BinaryAnd:
		if v, ok := boolLiteral(l); ok && v {
			return r
		}
		if v, ok := boolLiteral(r); ok && v {
			return l
		}
	case ast.BinaryOr:
		if v, ok := boolLiteral(l); ok && !v {
			return r
		}
		if v, ok := boolLiteral(r); ok && !v {
			return l
		}
	}
	return nil
}

func literalValue(e ast.Expr) (any, bool) {
	lit, ok := e.(*ast.Literal)
	if !ok {
		return nil, false
	}
	return lit.Value, lit.Value != nil
}

func boolLiteral(e ast.Expr) (value, ok bool) {
	v, ok := literalValue(e)
	if !ok {
		return false, false
	}
	value, ok = v.(bool)
	return value, ok
}

func isZero(e ast.Expr) bool {
	v, _ := literalValue(e)
	switch v := v.(type) {
	case int64:
		return v == 0
	case float64:
		return v == 0
	case uint64:
		return v == 0
	}
	return false
}

func isOne(e ast.Expr) bool {
	v, _ := literalValue(e)
	switch v := v.(type) {
	case int64:
		return v == 1
	case float64:
		return v == 1
	case uint64:
		return v == 1
	}
	return false
}

func one(t *types.Type) any {
	switch {
	case types.Equivalent(t, types.Float):
		return float64(1)
	case types.Equivalent(t, types.Binary):
		return uint64(1)
	default:
		return int64(1)
	}
}

// pure reports whether evaluating e cannot have side effects.
func pure(e ast.Expr) bool {
	ok := true
	ast.Inspect(e, func(n ast.Node) bool {
		if _, isCall := n.(*ast.Call); isCall {
			ok = false
		}
		return ok
	})
	return ok
}
