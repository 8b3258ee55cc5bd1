package codegen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"mum/internal/ast"
	"mum/internal/symbols"
	"mum/internal/types"
)

// builtinFuncs maps standard library functions to JavaScript callees.
var builtinFuncs = map[string]string{
	"print":  "console.log",
	"mumble": "console.log",
	"sqrt":   "Math.sqrt",
	"abs":    "Math.abs",
}

var builtinConsts = map[string]string{
	"pi": "Math.PI",
	"e":  "Math.E",
}

var binaryOps = map[ast.BinaryOp]string{
	ast.BinaryEq:    "===",
	ast.BinaryNotEq: "!==",
	ast.BinaryPow:   "**",
}

func (e *Emitter) emitExpr(x ast.Expr) (string, error) {
	switch x := x.(type) {
	case *ast.Literal:
		return literal(x.Value)
	case *ast.Ident:
		return e.emitIdent(x)
	case *ast.Binary:
		l, err := e.emitExpr(x.Left)
		if err != nil {
			return "", err
		}
		r, err := e.emitExpr(x.Right)
		if err != nil {
			return "", err
		}
		return binary(x.Op, x.Left.Type(), l, r), nil
	case *ast.Unary:
		operand, err := e.emitExpr(x.X)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s(%s)", x.Op, operand), nil
	case *ast.Call:
		callee, args, err := e.callParts(x)
		if err != nil {
			return "", err
		}
		if x.Guard == nil {
			return fmt.Sprintf("%s(%s)", callee, args), nil
		}
		guard, err := e.emitExpr(x.Guard)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s ? %s(%s) : undefined)", guard, callee, args), nil
	case *ast.List:
		elems := make([]string, 0, len(x.Elems))
		for _, el := range x.Elems {
			s, err := e.emitExpr(el)
			if err != nil {
				return "", err
			}
			elems = append(elems, s)
		}
		return "[" + joinArgs(elems) + "]", nil
	default:
		return "", fmt.Errorf("unexpected expression %T", x)
	}
}

func (e *Emitter) emitIdent(id *ast.Ident) (string, error) {
	v, ok := id.Entity.(*symbols.Variable)
	if !ok || v == nil {
		return "", fmt.Errorf("identifier %q is not resolved", id.Name)
	}
	if v.Builtin {
		if js, ok := builtinConsts[v.Name]; ok {
			return js, nil
		}
	}
	return e.targetName(v)
}

func (e *Emitter) callParts(c *ast.Call) (callee, args string, err error) {
	if c.Entity == nil {
		return "", "", fmt.Errorf("call of %q is not resolved", c.Name)
	}
	if c.Entity.Builtin {
		js, ok := builtinFuncs[c.Entity.Name]
		if !ok {
			return "", "", fmt.Errorf("built-in %q has no JavaScript form", c.Entity.Name)
		}
		callee = js
	} else if callee, err = e.targetName(c.Entity); err != nil {
		return "", "", err
	}
	parts := make([]string, 0, len(c.Args))
	for _, arg := range c.Args {
		s, err := e.emitExpr(arg)
		if err != nil {
			return "", "", err
		}
		parts = append(parts, s)
	}
	return callee, joinArgs(parts), nil
}

// binary renders `l op r`. operand is the type of both sides.
func binary(op ast.BinaryOp, operand *types.Type, l, r string) string {
	if op.IsEquality() && operand != nil && operand.Kind == types.KindList {
		// lists compare by contents
		l, r = "JSON.stringify("+l+")", "JSON.stringify("+r+")"
	}
	js, ok := binaryOps[op]
	if !ok {
		js = op.String()
	}
	expr := fmt.Sprintf("(%s %s %s)", l, js, r)
	if (op == ast.BinaryDiv || op == ast.BinaryPow) && isIntegral(operand) {
		return "Math.trunc" + expr
	}
	return expr
}

func isIntegral(t *types.Type) bool {
	return t != nil && (t.Kind == types.KindInt || t.Kind == types.KindBinary)
}

func literal(v any) (string, error) {
	switch v := v.(type) {
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case string:
		return jsString(v)
	case bool:
		return strconv.FormatBool(v), nil
	case uint64:
		return "0b" + strconv.FormatUint(v, 2), nil
	default:
		return "", fmt.Errorf("unsupported literal %T", v)
	}
}

// jsString quotes s as a JavaScript string literal. JSON strings are valid
// JavaScript, so the JSON encoder does the escaping.
func jsString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func joinArgs(parts []string) string { return strings.Join(parts, ", ") }
