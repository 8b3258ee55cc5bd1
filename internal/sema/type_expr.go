package sema

import (
	"mum/internal/ast"
	"mum/internal/diag"
	"mum/internal/source"
	"mum/internal/symbols"
	"mum/internal/types"
)

// resolveType maps a written type to its descriptor. Type names live in the
// value namespace next to variables, so a variable name is not a type.
func (a *analyzer) resolveType(scope *symbols.Scope, te ast.TypeExpr, at source.Span) (*types.Type, error) {
	switch te := te.(type) {
	case nil:
		return nil, errorf(diag.SemaUnknownType, at, "", "missing type annotation")
	case *ast.NamedType:
		ent, ok := scope.Lookup(symbols.NSValue, te.Name)
		if !ok {
			return nil, errorf(diag.SemaUnknownType, te.Span, te.Name, "unknown type %q", te.Name)
		}
		tn, ok := ent.(*symbols.TypeName)
		if !ok {
			return nil, errorf(diag.SemaUnknownType, te.Span, te.Name, "%q is a %s, not a type", te.Name, symbols.EntityKind(ent))
		}
		return tn.Type, nil
	case *ast.ListType:
		elem, err := a.resolveType(scope, te.Elem, te.Span)
		if err != nil {
			return nil, err
		}
		if types.IsVoid(elem) {
			return nil, errorf(diag.SemaTypeMismatch, te.Span, "void", "list elements cannot be void")
		}
		return types.MakeList(elem), nil
	default:
		return nil, errorf(diag.SemaUnknownType, te.Pos(), "", "unexpected type expression %T", te)
	}
}

// constValue returns the compile-time value of e when it is a literal, a list
// of constants, or an identifier whose value was known at resolution.
func constValue(e ast.Expr) (any, bool) {
	switch e := e.(type) {
	case *ast.Literal:
		return e.Value, e.Value != nil
	case *ast.Ident:
		return e.Value, e.Known
	case *ast.List:
		out := make([]any, 0, len(e.Elems))
		for _, el := range e.Elems {
			v, ok := constValue(el)
			if !ok {
				return nil, false
			}
			out = append(out, v)
		}
		return out, true
	default:
		return nil, false
	}
}
