package types

// FamilyMask describes broad categories of types an operator accepts.
type FamilyMask uint32

const (
	FamilyNone FamilyMask = 0
	FamilyAny  FamilyMask = 1 << iota
	FamilyBool
	FamilyInt
	FamilyFloat
	FamilyBinary
	FamilyString
	FamilyList
)

const (
	FamilyNumeric = FamilyInt | FamilyFloat | FamilyBinary
	FamilyValue   = FamilyNumeric | FamilyBool | FamilyString | FamilyList
)

// FamilyOf maps a descriptor to its family bit.
func FamilyOf(t *Type) FamilyMask {
	if t == nil {
		return FamilyNone
	}
	switch t.Kind {
	case KindAny:
		return FamilyAny
	case KindBool:
		return FamilyBool
	case KindInt:
		return FamilyInt
	case KindFloat:
		return FamilyFloat
	case KindBinary:
		return FamilyBinary
	case KindString:
		return FamilyString
	case KindList:
		return FamilyList
	default:
		return FamilyNone
	}
}

// Accepts reports whether t falls into any family of the mask.
func (m FamilyMask) Accepts(t *Type) bool {
	f := FamilyOf(t)
	return f != FamilyNone && m&f != 0
}
