package symbols

import (
	"mum/internal/source"
	"mum/internal/types"
)

// Namespace separates names that may coexist.
type Namespace uint8

const (
	// NSValue holds variables and type names.
	NSValue Namespace = iota
	// NSFunction holds functions.
	NSFunction
)

func (ns Namespace) String() string {
	switch ns {
	case NSValue:
		return "value"
	case NSFunction:
		return "function"
	default:
		return "invalid"
	}
}

// Entity is anything a name can be bound to.
type Entity interface {
	EntityName() string
	Namespace() Namespace
	entity()
}

// Variable is a named, typed storage cell.
// Type never changes after declaration; Value/Known and Deferred do.
type Variable struct {
	Name  string
	Type  *types.Type
	Span  source.Span
	Value any  // int64, float64, string, bool, uint64 or []any
	Known bool // Value holds the current constant

	// Deferred is the pending computation of an instruction result.
	Deferred *Deferred
	// Builtin marks stdlib constants.
	Builtin  bool
}

func (*Variable) entity()              {}
func (v *Variable) EntityName() string { return v.Name }
func (*Variable) Namespace() Namespace { return NSValue }

// SetValue records a constant value snapshot.
func (v *Variable) SetValue(val any) {
	v.Value = val
	v.Known = true
}

// Forget drops the known value, e.g. after an assignment.
func (v *Variable) Forget() {
	v.Value = nil
	v.Known = false
}

// Deferred describes an instruction whose result is computed at run time.
type Deferred struct {
	Op       string
	Operands []Operand
}

// Operand is an instruction input: either a variable or a literal value.
type Operand struct {
	Var   *Variable
	Value any
	Type  *types.Type
}

// Param is a function parameter.
type Param struct {
	Name string
	Type *types.Type
	Var  *Variable // bound when the body is analyzed
}

// Function is a callable entity. It is bound before its body is analyzed.
type Function struct {
	Name    string
	Params  []Param
	Result  *types.Type
	Span    source.Span
	Builtin bool
}

func (*Function) entity()              {}
func (f *Function) EntityName() string { return f.Name }
func (*Function) Namespace() Namespace { return NSFunction }

// Type returns the function's signature as a type.
func (f *Function) Type() *types.Type {
	params := make([]*types.Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type
	}
	return types.MakeFunction(params, f.Result)
}

// TypeName binds a name such as `int` or `str` to a type.
type TypeName struct {
	Name string
	Type *types.Type
}

func (*TypeName) entity()              {}
func (t *TypeName) EntityName() string { return t.Name }
func (*TypeName) Namespace() Namespace { return NSValue }

// EntityKind is a short label used in messages.
func EntityKind(e Entity) string {
	switch e.(type) {
	case *Variable:
		return "variable"
	case *Function:
		return "function"
	case *TypeName:
		return "type"
	default:
		return "entity"
	}
}
