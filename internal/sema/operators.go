package sema

import (
	"mum/internal/ast"
	"mum/internal/types"
)

// binaryResult describes how to derive the result type for an operator.
type binaryResult uint8

const (
	binaryResultOperand binaryResult = iota + 1
	binaryResultBool
)

// binarySpec lists the operand family an operator accepts.
// Both operands are already known to be equivalent when the table is consulted.
type binarySpec struct {
	Operand types.FamilyMask
	Result  binaryResult
}

const familyEquality = types.FamilyNumeric | types.FamilyString | types.FamilyBool | types.FamilyList

var binarySpecTable = map[ast.BinaryOp][]binarySpec{
	ast.BinaryAdd: {
		{Operand: types.FamilyNumeric, Result: binaryResultOperand},
		{Operand: types.FamilyString, Result: binaryResultOperand},
	},
	ast.BinarySub: {{Operand: types.FamilyNumeric, Result: binaryResultOperand}},
	ast.BinaryMul: {{Operand: types.FamilyNumeric, Result: binaryResultOperand}},
	ast.BinaryDiv: {{Operand: types.FamilyNumeric, Result: binaryResultOperand}},
	ast.BinaryMod: {{Operand: types.FamilyNumeric, Result: binaryResultOperand}},
	ast.BinaryPow: {{Operand: types.FamilyNumeric, Result: binaryResultOperand}},

	ast.BinaryLess:      {{Operand: types.FamilyNumeric, Result: binaryResultBool}},
	ast.BinaryLessEq:    {{Operand: types.FamilyNumeric, Result: binaryResultBool}},
	ast.BinaryGreater:   {{Operand: types.FamilyNumeric, Result: binaryResultBool}},
	ast.BinaryGreaterEq: {{Operand: types.FamilyNumeric, Result: binaryResultBool}},
	ast.BinaryEq:        {{Operand: familyEquality, Result: binaryResultBool}},
	ast.BinaryNotEq:     {{Operand: familyEquality, Result: binaryResultBool}},

	ast.BinaryAnd: {{Operand: types.FamilyBool, Result: binaryResultBool}},
	ast.BinaryOr:  {{Operand: types.FamilyBool, Result: binaryResultBool}},
}

// binaryResultType returns the result type of `l op l`, or false when the
// operator has no behavior for that type.
func binaryResultType(op ast.BinaryOp, operand *types.Type) (*types.Type, bool) {
	for _, spec := range binarySpecTable[op] {
		if !spec.Operand.Accepts(operand) {
			continue
		}
		switch spec.Result {
		case binaryResultBool:
			return types.Bool, true
		default:
			return operand, true
		}
	}
	return nil, false
}

// unarySpec describes operand expectations for unary operators.
type unarySpec struct {
	Operand types.FamilyMask
	Result  binaryResult
}

var unarySpecTable = map[ast.UnaryOp]unarySpec{
	ast.UnaryNeg: {Operand: types.FamilyNumeric, Result: binaryResultOperand},
	ast.UnaryNot: {Operand: types.FamilyBool, Result: binaryResultBool},
}

func unaryResultType(op ast.UnaryOp, operand *types.Type) (*types.Type, bool) {
	spec, ok := unarySpecTable[op]
	if !ok || !spec.Operand.Accepts(operand) {
		return nil, false
	}
	if spec.Result == binaryResultBool {
		return types.Bool, true
	}
	return operand, true
}
