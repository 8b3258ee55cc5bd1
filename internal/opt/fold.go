package opt

import (
	"math"

	"fortio.org/safecast"

	"mum/internal/ast"
	"mum/internal/source"
	"mum/internal/token"
	"mum/internal/types"
)

// foldBinary evaluates `l op r` over literal values of the same Go type.
// It refuses whatever the generated program would compute differently:
// division by zero, negative exponents, non-finite floats, integers past
// the exact range of a JavaScript number and unsigned underflow.
func foldBinary(op ast.BinaryOp, l, r any) (any, bool) {
	switch l := l.(type) {
	case int64:
		r, ok := r.(int64)
		if !ok {
			return nil, false
		}
		return foldInt(op, l, r)
	case float64:
		r, ok := r.(float64)
		if !ok {
			return nil, false
		}
		return foldFloat(op, l, r)
	case uint64:
		r, ok := r.(uint64)
		if !ok {
			return nil, false
		}
		return foldBinaryDigits(op, l, r)
	case string:
		r, ok := r.(string)
		if !ok {
			return nil, false
		}
		switch op {
		case ast.BinaryAdd:
			return l + r, true
		case ast.BinaryEq:
			return l == r, true
		case ast.BinaryNotEq:
			return l != r, true
		}
	case bool:
		r, ok := r.(bool)
		if !ok {
			return nil, false
		}
		switch op {
		case ast.BinaryEq:
			return l == r, true
		case ast.BinaryNotEq:
			return l != r, true
		case ast.BinaryAnd:
			return l && r, true
		case ast.BinaryOr:
			return l || r, true
		}
	}
	return nil, false
}

// maxExactInt is the largest integer a JavaScript number holds exactly.
const maxExactInt = 1<<53 - 1

func exactInt(v int64) bool { return v >= -maxExactInt && v <= maxExactInt }

// foldInt folds only when operands and result are exact JavaScript numbers;
// past that range the generated program computes in rounded doubles.
func foldInt(op ast.BinaryOp, l, r int64) (any, bool) {
	if !exactInt(l) || !exactInt(r) {
		return nil, false
	}
	var (
		v  int64
		ok = true
	)
	switch op {
	case ast.BinaryAdd:
		v = l + r
	case ast.BinarySub:
		v = l - r
	case ast.BinaryMul:
		v, ok = mulInt(l, r)
	case ast.BinaryDiv:
		if r == 0 {
			return nil, false
		}
		// Go truncates toward zero like Math.trunc
		v = l / r
	case ast.BinaryMod:
		if r == 0 {
			return nil, false
		}
		v = l % r
	case ast.BinaryPow:
		if r < 0 {
			return nil, false
		}
		v, ok = intPow(l, r)
	default:
		return compare(op, l, r)
	}
	if !ok || !exactInt(v) {
		return nil, false
	}
	return v, true
}

// mulInt multiplies exact integers and reports whether the product is exact.
func mulInt(l, r int64) (int64, bool) {
	if l == 0 || r == 0 {
		return 0, true
	}
	p := l * r
	if p/r != l || !exactInt(p) {
		return 0, false
	}
	return p, true
}

func intPow(base, exp int64) (int64, bool) {
	result := int64(1)
	for exp > 0 {
		var ok bool
		if exp&1 == 1 {
			if result, ok = mulInt(result, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			if base, ok = mulInt(base, base); !ok {
				return 0, false
			}
		}
	}
	return result, true
}

func foldFloat(op ast.BinaryOp, l, r float64) (any, bool) {
	var v float64
	switch op {
	case ast.BinaryAdd:
		v = l + r
	case ast.BinarySub:
		v = l - r
	case ast.BinaryMul:
		v = l * r
	case ast.BinaryDiv:
		if r == 0 {
			return nil, false
		}
		v = l / r
	case ast.BinaryMod:
		if r == 0 {
			return nil, false
		}
		v = math.Mod(l, r)
	case ast.BinaryPow:
		v = math.Pow(l, r)
	default:
		return compare(op, l, r)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return v, true
}

// foldBinaryDigits folds binary literals through signed arithmetic and
// keeps the result only when it is representable as an unsigned value again.
func foldBinaryDigits(op ast.BinaryOp, l, r uint64) (any, bool) {
	if op.Class() == ast.ClassRelational {
		return compare(op, l, r)
	}
	sl, err := safecast.Conv[int64](l)
	if err != nil {
		return nil, false
	}
	sr, err := safecast.Conv[int64](r)
	if err != nil {
		return nil, false
	}
	v, ok := foldInt(op, sl, sr)
	if !ok {
		return nil, false
	}
	n, ok := v.(int64)
	if !ok {
		return nil, false
	}
	u, err := safecast.Conv[uint64](n)
	if err != nil {
		return nil, false
	}
	return u, true
}

func compare[T int64 | uint64 | float64](op ast.BinaryOp, l, r T) (any, bool) {
	switch op {
	case ast.BinaryLess:
		return l < r, true
	case ast.BinaryLessEq:
		return l <= r, true
	case ast.BinaryGreater:
		return l > r, true
	case ast.BinaryGreaterEq:
		return l >= r, true
	case ast.BinaryEq:
		return l == r, true
	case ast.BinaryNotEq:
		return l != r, true
	}
	return nil, false
}

func foldUnary(op ast.UnaryOp, x any) (any, bool) {
	switch op {
	case ast.UnaryNeg:
		switch x := x.(type) {
		case int64:
			if !exactInt(x) {
				return nil, false
			}
			return -x, true
		case float64:
			return -x, true
		}
	case ast.UnaryNot:
		if b, ok := x.(bool); ok {
			return !b, true
		}
	}
	return nil, false
}

// makeLiteral builds a decorated literal whose lexeme is the source form of v.
func makeLiteral(v any, t *types.Type, span source.Span) *ast.Literal {
	var kind token.Kind
	switch v.(type) {
	case int64:
		kind = token.IntLit
	case float64:
		kind = token.FloatLit
	case string:
		kind = token.StringLit
	case bool:
		kind = token.BoolLit
	case uint64:
		kind = token.BinaryLit
	}
	lit := &ast.Literal{
		Token: token.Token{Kind: kind, Span: span, Text: ast.FormatValue(v)},
		Value: v,
	}
	lit.SetType(t)
	return lit
}
