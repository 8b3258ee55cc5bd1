package sema

import (
	"mum/internal/ast"
	"mum/internal/diag"
	"mum/internal/symbols"
	"mum/internal/types"
)

// instruction checks `op result, a[, b]`. The result slot is written, not
// read: it is either declared here or must already hold the result type.
func (a *analyzer) instruction(scope *symbols.Scope, in *ast.Instruction) error {
	name := in.Op.String()
	arity := in.Op.Arity()
	if arity == 0 {
		return errorf(diag.SemaUnsupportedOperation, in.Span, name, "unknown instruction %q", name)
	}
	if len(in.Operands) != arity {
		return errorf(diag.SemaArityMismatch, in.Span, name,
			"instruction %q takes exactly %d operands, got %d", name, arity, len(in.Operands))
	}
	slot, ok := in.Operands[0].(*ast.Ident)
	if !ok {
		return errorf(diag.SemaUnsupportedOperation, in.Operands[0].Pos(), name,
			"result of %q must be an identifier", name)
	}

	var (
		operandType *types.Type
		operands    = make([]symbols.Operand, 0, arity-1)
	)
	for _, op := range in.Operands[1:] {
		t, err := a.expr(scope, op)
		if err != nil {
			return err
		}
		if operandType == nil {
			operandType = t
		} else if !types.Equivalent(t, operandType) {
			return errorf(diag.SemaIncompatibleOperands, op.Pos(), name,
				"operands of %q have incompatible types %s and %s", name, operandType, t)
		}
		operands = append(operands, instrOperand(op, t))
	}
	if types.IsVoid(operandType) {
		return errorf(diag.SemaUnsupportedOperation, in.Span, name, "instruction %q cannot operate on void", name)
	}
	if in.Op.IsArithmetic() && !types.IsNumeric(operandType) {
		return errorf(diag.SemaUnsupportedOperation, in.Span, name,
			"instruction %q requires numeric operands, got %s", name, operandType)
	}

	result := operandType
	if in.Op == ast.InstrCmp {
		result = types.Bool
	}
	deferred := &symbols.Deferred{Op: name, Operands: operands}

	if ent, exists := scope.Lookup(symbols.NSValue, slot.Name); exists {
		v, ok := ent.(*symbols.Variable)
		if !ok {
			return errorf(diag.SemaTypeMismatch, slot.Span, slot.Name, "cannot store into %s %q", symbols.EntityKind(ent), slot.Name)
		}
		if v.Builtin {
			return errorf(diag.SemaUnsupportedOperation, slot.Span, slot.Name, "cannot store into built-in constant %q", slot.Name)
		}
		if !types.Equivalent(v.Type, result) {
			return errorf(diag.SemaResultTypeMismatch, slot.Span, slot.Name,
				"result %q has type %s but %q produces %s", slot.Name, v.Type, name, result)
		}
		v.Forget()
		v.Deferred = deferred
		in.Entity = v
	} else {
		v := &symbols.Variable{Name: slot.Name, Type: result, Span: slot.Span, Deferred: deferred}
		if err := scope.Declare(slot.Name, v); err != nil {
			return declError(err, slot.Span)
		}
		in.Entity = v
		in.Declares = true
	}
	slot.Entity = in.Entity
	slot.SetType(result)
	return nil
}

func instrOperand(e ast.Expr, t *types.Type) symbols.Operand {
	op := symbols.Operand{Type: t}
	switch e := e.(type) {
	case *ast.Ident:
		if v, ok := e.Variable(); ok {
			op.Var = v
		}
	default:
		if v, ok := constValue(e); ok {
			op.Value = v
		}
	}
	return op
}
