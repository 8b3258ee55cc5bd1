package ast

import "fmt"

// BinaryOp enumerates binary operator kinds.
type BinaryOp uint8

const (
	// Арифметические
	BinaryAdd BinaryOp = iota + 1 // +
	BinarySub                     // -
	BinaryMul                     // *
	BinaryDiv                     // /
	BinaryMod                     // %
	BinaryPow                     // ^

	// Сравнения
	BinaryLess      // <
	BinaryLessEq    // <=
	BinaryGreater   // >
	BinaryGreaterEq // >=
	BinaryEq        // ==
	BinaryNotEq     // !=

	// Логические
	BinaryAnd // &&
	BinaryOr  // ||
)

var binaryOpNames = map[BinaryOp]string{
	BinaryAdd:       "+",
	BinarySub:       "-",
	BinaryMul:       "*",
	BinaryDiv:       "/",
	BinaryMod:       "%",
	BinaryPow:       "^",
	BinaryLess:      "<",
	BinaryLessEq:    "<=",
	BinaryGreater:   ">",
	BinaryGreaterEq: ">=",
	BinaryEq:        "==",
	BinaryNotEq:     "!=",
	BinaryAnd:       "&&",
	BinaryOr:        "||",
}

func (op BinaryOp) String() string {
	if s, ok := binaryOpNames[op]; ok {
		return s
	}
	return fmt.Sprintf("BinaryOp(%d)", op)
}

// OpClass groups binary operators by the rule family that checks them.
type OpClass uint8

const (
	ClassInvalid OpClass = iota
	ClassArithmetic
	ClassRelational
	ClassLogical
)

func (c OpClass) String() string {
	switch c {
	case ClassArithmetic:
		return "arithmetic"
	case ClassRelational:
		return "relational"
	case ClassLogical:
		return "logical"
	default:
		return "invalid"
	}
}

// Class returns the operator class.
func (op BinaryOp) Class() OpClass {
	switch op {
	case BinaryAdd, BinarySub, BinaryMul, BinaryDiv, BinaryMod, BinaryPow:
		return ClassArithmetic
	case BinaryLess, BinaryLessEq, BinaryGreater, BinaryGreaterEq, BinaryEq, BinaryNotEq:
		return ClassRelational
	case BinaryAnd, BinaryOr:
		return ClassLogical
	default:
		return ClassInvalid
	}
}

// IsEquality reports == and !=.
func (op BinaryOp) IsEquality() bool { return op == BinaryEq || op == BinaryNotEq }

// ParseBinaryOp maps an operator lexeme to its kind.
func ParseBinaryOp(s string) (BinaryOp, error) {
	for op, name := range binaryOpNames {
		if name == s {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown binary operator %q", s)
}

// UnaryOp enumerates unary operator kinds.
type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota + 1 // -
	UnaryNot                    // !
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "!"
	default:
		return fmt.Sprintf("UnaryOp(%d)", op)
	}
}

// ParseUnaryOp maps an operator lexeme to its kind.
func ParseUnaryOp(s string) (UnaryOp, error) {
	switch s {
	case "-":
		return UnaryNeg, nil
	case "!", "not":
		return UnaryNot, nil
	default:
		return 0, fmt.Errorf("unknown unary operator %q", s)
	}
}

// InstrOp enumerates fixed-arity instruction mnemonics.
type InstrOp uint8

const (
	InstrMov InstrOp = iota + 1
	InstrNeg
	InstrAdd
	InstrSub
	InstrMul
	InstrDiv
	InstrCmp
)

var instrNames = map[InstrOp]string{
	InstrMov: "mov",
	InstrNeg: "neg",
	InstrAdd: "add",
	InstrSub: "sub",
	InstrMul: "mul",
	InstrDiv: "div",
	InstrCmp: "cmp",
}

func (op InstrOp) String() string {
	if s, ok := instrNames[op]; ok {
		return s
	}
	return fmt.Sprintf("InstrOp(%d)", op)
}

// Arity is the operand count including the result slot.
func (op InstrOp) Arity() int {
	switch op {
	case InstrMov, InstrNeg:
		return 2
	case InstrAdd, InstrSub, InstrMul, InstrDiv, InstrCmp:
		return 3
	default:
		return 0
	}
}

// IsArithmetic reports instructions that require numeric operands.
func (op InstrOp) IsArithmetic() bool {
	switch op {
	case InstrNeg, InstrAdd, InstrSub, InstrMul, InstrDiv:
		return true
	default:
		return false
	}
}

// ParseInstrOp maps a mnemonic to its kind.
func ParseInstrOp(s string) (InstrOp, error) {
	for op, name := range instrNames {
		if name == s {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown instruction %q", s)
}
