package sema

import (
	"errors"

	"mum/internal/ast"
	"mum/internal/diag"
	"mum/internal/source"
	"mum/internal/symbols"
	"mum/internal/types"
)

func (a *analyzer) stmt(scope *symbols.Scope, s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.VarDecl:
		return a.varDecl(scope, s)
	case *ast.VarAssign:
		return a.varAssign(scope, s)
	case *ast.FuncDecl:
		return a.funcBody(scope, s)
	case *ast.CallStmt:
		_, err := a.call(scope, s.Call)
		return err
	case *ast.If:
		return a.ifStmt(scope, s)
	case *ast.While:
		return a.whileStmt(scope, s)
	case *ast.Break:
		if !scope.InLoop() {
			return errorf(diag.SemaBreakOutsideLoop, s.Span, "break", "break is only allowed inside a loop")
		}
		return nil
	case *ast.Return:
		return a.returnStmt(scope, s)
	case *ast.Print:
		// any type may be printed; identifiers still have to resolve
		_, err := a.expr(scope, s.Arg)
		return err
	case *ast.Instruction:
		return a.instruction(scope, s)
	default:
		return errorf(diag.SemaError, s.Pos(), "", "unexpected statement %T", s)
	}
}

func (a *analyzer) varDecl(scope *symbols.Scope, d *ast.VarDecl) error {
	// checked before the initializer so a rejected redeclaration has no effects
	if prev, ok := scope.Lookup(symbols.NSValue, d.Name); ok {
		return duplicateError(d.Name, d.NameSpan, prev)
	}
	declared, err := a.resolveType(scope, d.Type, d.NameSpan)
	if err != nil {
		return err
	}
	if types.IsVoid(declared) {
		return errorf(diag.SemaTypeMismatch, d.NameSpan, d.Name, "variable %q cannot have type void", d.Name)
	}
	v := &symbols.Variable{Name: d.Name, Type: declared, Span: d.NameSpan}
	if d.Init != nil {
		got, err := a.exprExpect(scope, d.Init, declared)
		if err != nil {
			return err
		}
		if !types.Assignable(got, declared) {
			return errorf(diag.SemaTypeMismatch, d.Init.Pos(), d.Name,
				"cannot initialize %q of type %s with a value of type %s", d.Name, declared, got)
		}
		if val, ok := constValue(d.Init); ok {
			v.SetValue(val)
		}
	}
	if err := scope.Declare(d.Name, v); err != nil {
		return declError(err, d.NameSpan)
	}
	d.Entity = v
	return nil
}

func (a *analyzer) varAssign(scope *symbols.Scope, s *ast.VarAssign) error {
	target := s.Target
	v, err := a.assignableVar(scope, target)
	if err != nil {
		return err
	}
	got, err := a.exprExpect(scope, s.Value, v.Type)
	if err != nil {
		return err
	}
	if !types.Assignable(got, v.Type) {
		return errorf(diag.SemaTypeMismatch, s.Value.Pos(), target.Name,
			"cannot assign a value of type %s to %q of type %s", got, target.Name, v.Type)
	}
	v.Forget()
	v.Deferred = nil
	return nil
}

// assignableVar resolves a write target and decorates it.
func (a *analyzer) assignableVar(scope *symbols.Scope, id *ast.Ident) (*symbols.Variable, error) {
	ent, err := scope.Resolve(symbols.NSValue, id.Name)
	if err != nil {
		return nil, errorf(diag.SemaUndeclaredIdentifier, id.Span, id.Name, "identifier %q is not declared", id.Name)
	}
	v, ok := ent.(*symbols.Variable)
	if !ok {
		return nil, errorf(diag.SemaTypeMismatch, id.Span, id.Name, "cannot assign to %s %q", symbols.EntityKind(ent), id.Name)
	}
	if v.Builtin {
		return nil, errorf(diag.SemaUnsupportedOperation, id.Span, id.Name, "cannot assign to built-in constant %q", id.Name)
	}
	id.Entity = v
	id.SetType(v.Type)
	return v, nil
}

// declareFunc binds a function before any statement of its block is analyzed.
func (a *analyzer) declareFunc(scope *symbols.Scope, fd *ast.FuncDecl) error {
	if prev, ok := scope.Lookup(symbols.NSFunction, fd.Name); ok {
		return duplicateError(fd.Name, fd.NameSpan, prev)
	}
	fn := &symbols.Function{Name: fd.Name, Span: fd.NameSpan, Result: types.Void}
	for _, p := range fd.Params {
		pt, err := a.resolveType(scope, p.Type, p.Span)
		if err != nil {
			return err
		}
		if types.IsVoid(pt) {
			return errorf(diag.SemaTypeMismatch, p.Span, p.Name, "parameter %q cannot have type void", p.Name)
		}
		fn.Params = append(fn.Params, symbols.Param{Name: p.Name, Type: pt})
	}
	if fd.Result != nil {
		rt, err := a.resolveType(scope, fd.Result, fd.NameSpan)
		if err != nil {
			return err
		}
		fn.Result = rt
	}
	if err := scope.Declare(fd.Name, fn); err != nil {
		return declError(err, fd.NameSpan)
	}
	fd.Entity = fn
	return nil
}

func (a *analyzer) funcBody(scope *symbols.Scope, fd *ast.FuncDecl) error {
	fn := fd.Entity
	if fn == nil {
		if err := a.declareFunc(scope, fd); err != nil {
			return err
		}
		fn = fd.Entity
	}
	notInLoop := false
	body := a.child(scope, symbols.ChildOptions{Kind: symbols.ScopeFunction, InLoop: &notInLoop, Function: fn})
	for i, p := range fd.Params {
		v := &symbols.Variable{Name: p.Name, Type: fn.Params[i].Type, Span: p.Span}
		if prev, ok := body.Lookup(symbols.NSValue, p.Name); ok {
			return duplicateError(p.Name, p.Span, prev)
		}
		if err := body.Declare(p.Name, v); err != nil {
			return declError(err, p.Span)
		}
		fn.Params[i].Var = v
	}
	return a.block(body, fd.Body)
}

func (a *analyzer) ifStmt(scope *symbols.Scope, s *ast.If) error {
	if err := a.condition(scope, s.Cond, "if"); err != nil {
		return err
	}
	if err := a.block(a.child(scope, symbols.ChildOptions{Kind: symbols.ScopeBlock}), s.Then); err != nil {
		return err
	}
	if len(s.Else) == 0 {
		return nil
	}
	return a.block(a.child(scope, symbols.ChildOptions{Kind: symbols.ScopeBlock}), s.Else)
}

func (a *analyzer) whileStmt(scope *symbols.Scope, s *ast.While) error {
	if err := a.condition(scope, s.Cond, "while"); err != nil {
		return err
	}
	inLoop := true
	return a.block(a.child(scope, symbols.ChildOptions{Kind: symbols.ScopeLoop, InLoop: &inLoop}), s.Body)
}

// condition requires a Bool-typed expression.
func (a *analyzer) condition(scope *symbols.Scope, cond ast.Expr, what string) error {
	t, err := a.expr(scope, cond)
	if err != nil {
		return err
	}
	if !types.Equivalent(t, types.Bool) {
		return errorf(diag.SemaTypeMismatch, cond.Pos(), what, "%s condition must be bool, got %s", what, t)
	}
	return nil
}

func (a *analyzer) returnStmt(scope *symbols.Scope, s *ast.Return) error {
	fn := scope.Function()
	if fn == nil {
		return errorf(diag.SemaReturnOutsideFunction, s.Span, "return", "return is only allowed inside a function")
	}
	if s.Value == nil {
		if !types.IsVoid(fn.Result) {
			return errorf(diag.SemaTypeMismatch, s.Span, fn.Name, "function %q must return a value of type %s", fn.Name, fn.Result)
		}
		return nil
	}
	got, err := a.exprExpect(scope, s.Value, fn.Result)
	if err != nil {
		return err
	}
	if types.IsVoid(fn.Result) {
		return errorf(diag.SemaTypeMismatch, s.Value.Pos(), fn.Name, "void function %q cannot return a value", fn.Name)
	}
	if !types.Assignable(got, fn.Result) {
		return errorf(diag.SemaTypeMismatch, s.Value.Pos(), fn.Name,
			"function %q returns %s, got %s", fn.Name, fn.Result, got)
	}
	return nil
}

func duplicateError(name string, span source.Span, prev symbols.Entity) *Error {
	err := errorf(diag.SemaDuplicateDeclaration, span, name, "%q is already declared as a %s", name, symbols.EntityKind(prev))
	switch p := prev.(type) {
	case *symbols.Variable:
		if !p.Builtin {
			err.withNote(p.Span, "previous declaration is here")
		}
	case *symbols.Function:
		if !p.Builtin {
			err.withNote(p.Span, "previous declaration is here")
		}
	}
	return err
}

// declError converts a rejected scope declaration.
func declError(err error, span source.Span) error {
	var derr *symbols.DeclError
	if errors.As(err, &derr) && derr.Reason == symbols.DeclDuplicate {
		return duplicateError(derr.Name, span, derr.Previous)
	}
	return errorf(diag.SemaError, span, "", "%v", err)
}
