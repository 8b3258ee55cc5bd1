package types

import (
	"fmt"
	"strings"
)

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindAny
	KindVoid
	KindBool
	KindString
	KindInt
	KindFloat
	KindBinary
	KindList
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindAny:
		return "any"
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindString:
		return "str"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBinary:
		return "bin"
	case KindList:
		return "list"
	case KindFunction:
		return "fn"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a descriptor for any supported type.
// Descriptors are compared structurally via Equivalent, never by pointer.
type Type struct {
	Kind   Kind
	Elem   *Type   // for lists
	Params []*Type // for functions
	Result *Type   // for functions
}

// Primitive singletons.
var (
	Int    = &Type{Kind: KindInt}
	Float  = &Type{Kind: KindFloat}
	String = &Type{Kind: KindString}
	Bool   = &Type{Kind: KindBool}
	Binary = &Type{Kind: KindBinary}
	Void   = &Type{Kind: KindVoid}

	// Any only appears in standard library signatures (print accepts anything).
	Any = &Type{Kind: KindAny}
)

// MakeList describes a list with the given element type.
func MakeList(elem *Type) *Type {
	return &Type{Kind: KindList, Elem: elem}
}

// MakeFunction describes a function type. A nil result means void.
func MakeFunction(params []*Type, result *Type) *Type {
	if result == nil {
		result = Void
	}
	return &Type{Kind: KindFunction, Params: append([]*Type(nil), params...), Result: result}
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindList:
		return "[" + t.Elem.String() + "]"
	case KindFunction:
		var sb strings.Builder
		sb.WriteString("fn(")
		for i, p := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.String())
		}
		sb.WriteString(") -> ")
		sb.WriteString(t.Result.String())
		return sb.String()
	default:
		return t.Kind.String()
	}
}
