// Package stdlib provides the bindings every program starts with.
package stdlib

import (
	"fmt"
	"math"

	"mum/internal/symbols"
	"mum/internal/types"
)

// Binding pairs a name with the entity it denotes in the root scope.
type Binding struct {
	Name   string
	Entity symbols.Entity
}

// Bindings returns the default standard library.
// Entities are allocated on every call, so independent analyses never share them.
func Bindings() []Binding {
	out := make([]Binding, 0, 16)
	for _, tn := range typeNames() {
		out = append(out, Binding{Name: tn.Name, Entity: tn})
	}
	for _, fn := range functions() {
		out = append(out, Binding{Name: fn.Name, Entity: fn})
	}
	for _, v := range constants() {
		out = append(out, Binding{Name: v.Name, Entity: v})
	}
	return out
}

// Merge combines the default bindings with user provided entries.
func Merge(custom []Binding) []Binding {
	defaults := Bindings()
	if len(custom) == 0 {
		return defaults
	}
	result := make([]Binding, 0, len(defaults)+len(custom))
	result = append(result, defaults...)
	result = append(result, custom...)
	return result
}

// Seed declares bindings in scope.
func Seed(scope *symbols.Scope, bindings []Binding) error {
	for _, b := range bindings {
		if err := scope.Declare(b.Name, b.Entity); err != nil {
			return fmt.Errorf("stdlib %q: %w", b.Name, err)
		}
	}
	return nil
}

func typeNames() []*symbols.TypeName {
	return []*symbols.TypeName{
		{Name: "int", Type: types.Int},
		{Name: "num", Type: types.Int},
		{Name: "float", Type: types.Float},
		{Name: "string", Type: types.String},
		{Name: "str", Type: types.String},
		{Name: "bool", Type: types.Bool},
		{Name: "binary", Type: types.Binary},
		{Name: "bin", Type: types.Binary},
		{Name: "void", Type: types.Void},
	}
}

func functions() []*symbols.Function {
	return []*symbols.Function{
		builtin("print", types.Void, types.Any),
		builtin("mumble", types.Void, types.Any),
		builtin("sqrt", types.Float, types.Float),
		builtin("abs", types.Float, types.Float),
	}
}

func builtin(name string, result *types.Type, params ...*types.Type) *symbols.Function {
	fn := &symbols.Function{Name: name, Result: result, Builtin: true}
	for i, p := range params {
		fn.Params = append(fn.Params, symbols.Param{Name: fmt.Sprintf("arg%d", i), Type: p})
	}
	return fn
}

func constants() []*symbols.Variable {
	return []*symbols.Variable{
		{Name: "pi", Type: types.Float, Value: math.Pi, Known: true, Builtin: true},
		{Name: "e", Type: types.Float, Value: math.E, Known: true, Builtin: true},
	}
}

// IsBuiltin reports whether e was produced by this package.
func IsBuiltin(e symbols.Entity) bool {
	switch e := e.(type) {
	case *symbols.Function:
		return e.Builtin
	case *symbols.Variable:
		return e.Builtin
	case *symbols.TypeName:
		return true
	default:
		return false
	}
}
