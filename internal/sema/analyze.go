package sema

import (
	"errors"
	"fmt"

	"mum/internal/ast"
	"mum/internal/stdlib"
	"mum/internal/symbols"
	"mum/internal/trace"
)

// Options configure a semantic pass over a program.
type Options struct {
	// Prelude seeds the root scope; nil means stdlib.Bindings().
	Prelude []stdlib.Binding
	Tracer  trace.Tracer
	// ParentSpan links the "sema" trace span to the caller's span.
	ParentSpan uint64
}

// Analyze decorates prog in place and returns it, or returns the first
// semantic violation as *Error. On error the tree must not be used.
func Analyze(prog *ast.Program, opts Options) (*ast.Program, error) {
	if prog == nil {
		return nil, errors.New("sema: nil program")
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	span := trace.Begin(tracer, trace.ScopePass, "sema", opts.ParentSpan)

	prelude := opts.Prelude
	if prelude == nil {
		prelude = stdlib.Bindings()
	}
	root := symbols.NewRoot()
	if err := stdlib.Seed(root, prelude); err != nil {
		span.End("prelude failed")
		return nil, fmt.Errorf("sema: %w", err)
	}

	a := &analyzer{tracer: tracer, span: span.ID()}
	if err := a.block(root, prog.Stmts); err != nil {
		span.WithExtra("code", errorCode(err)).End("failed")
		return nil, err
	}
	span.End("ok")
	return prog, nil
}

// analyzer holds no scope: every rule receives the scope it runs in.
type analyzer struct {
	tracer trace.Tracer
	span   uint64
}

// child creates a nested scope and reports it at node-level tracing.
func (a *analyzer) child(scope *symbols.Scope, opts symbols.ChildOptions) *symbols.Scope {
	c := scope.Child(opts)
	if a.tracer.Enabled() && a.tracer.Level().ShouldEmit(trace.ScopeNode) {
		trace.Point(a.tracer, trace.ScopeNode, "scope", a.span,
			fmt.Sprintf("%s depth=%d", c.Kind(), c.Depth()))
	}
	return c
}

// block binds the functions of a statement list, then analyzes the
// statements in order.
func (a *analyzer) block(scope *symbols.Scope, stmts []ast.Stmt) error {
	for _, s := range stmts {
		if fd, ok := s.(*ast.FuncDecl); ok {
			if err := a.declareFunc(scope, fd); err != nil {
				return err
			}
		}
	}
	for _, s := range stmts {
		if err := a.stmt(scope, s); err != nil {
			return err
		}
	}
	return nil
}

func errorCode(err error) string {
	var serr *Error
	if errors.As(err, &serr) {
		return serr.Code.ID()
	}
	return "internal"
}
