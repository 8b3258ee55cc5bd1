package codegen

import (
	"fmt"

	"mum/internal/ast"
)

var instrOps = map[ast.InstrOp]ast.BinaryOp{
	ast.InstrAdd: ast.BinaryAdd,
	ast.InstrSub: ast.BinarySub,
	ast.InstrMul: ast.BinaryMul,
	ast.InstrDiv: ast.BinaryDiv,
	ast.InstrCmp: ast.BinaryEq,
}

// emitInstruction lowers an instruction to an assignment. The instruction
// that introduced its result variable declares it with let.
func (e *Emitter) emitInstruction(in *ast.Instruction) error {
	if in.Entity == nil {
		return fmt.Errorf("instruction %s is not resolved", in.Op)
	}
	target, err := e.targetName(in.Entity)
	if err != nil {
		return err
	}
	operands := make([]string, 0, len(in.Operands)-1)
	for _, op := range in.Operands[1:] {
		s, err := e.emitExpr(op)
		if err != nil {
			return err
		}
		operands = append(operands, s)
	}

	var value string
	switch in.Op {
	case ast.InstrMov:
		value = operands[0]
	case ast.InstrNeg:
		value = fmt.Sprintf("-(%s)", operands[0])
	default:
		op, ok := instrOps[in.Op]
		if !ok || len(operands) != 2 {
			return fmt.Errorf("unsupported instruction %s", in.Op)
		}
		value = binary(op, in.Operands[1].Type(), operands[0], operands[1])
	}

	if in.Declares {
		e.line("let %s = %s;", target, value)
	} else {
		e.line("%s = %s;", target, value)
	}
	return nil
}
