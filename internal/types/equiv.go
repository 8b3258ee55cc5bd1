package types

// Equivalent reports whether two descriptors denote the same type.
// Lists compare element types, functions compare parameters and result.
func Equivalent(a, b *Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindList:
		return Equivalent(a.Elem, b.Elem)
	case KindFunction:
		if len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if !Equivalent(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return Equivalent(a.Result, b.Result)
	default:
		return true
	}
}

// Assignable reports whether a value of type src may be stored where dst is
// expected. Any accepts every non-void value.
func Assignable(src, dst *Type) bool {
	if src == nil || dst == nil {
		return false
	}
	if dst.Kind == KindAny {
		return src.Kind != KindVoid && src.Kind != KindInvalid
	}
	return Equivalent(src, dst)
}

// IsNumeric reports whether t is Int, Float or Binary.
func IsNumeric(t *Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case KindInt, KindFloat, KindBinary:
		return true
	default:
		return false
	}
}

// IsVoid reports whether t is the void type.
func IsVoid(t *Type) bool { return t != nil && t.Kind == KindVoid }
