// Package testkit holds checks shared by tests of several packages.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"mum/internal/ast"
	"mum/internal/source"
)

// CheckSpanInvariants verifies the spans of a decoded tree:
//  1. every span belongs to sf
//  2. every span is ordered and fits into the file content
//  3. a statement span covers the spans of its direct expressions
//
// Zero spans mean "position unknown" and are skipped.
func CheckSpanInvariants(prog *ast.Program, sf *source.File) error {
	if prog == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("file too large: %w", err)
	}

	var firstErr error
	check := func(n ast.Node, sp source.Span) {
		if firstErr != nil || sp == (source.Span{File: sp.File}) {
			return
		}
		switch {
		case sp.File != sf.ID:
			firstErr = fmt.Errorf("%T span points to file %d, want %d", n, sp.File, sf.ID)
		case sp.End < sp.Start:
			firstErr = fmt.Errorf("%T span is reversed: %v", n, sp)
		case sf.HasContent() && sp.End > size:
			firstErr = fmt.Errorf("%T span %v is past the end of %s (%d bytes)", n, sp, sf.Path, size)
		}
	}
	ast.Inspect(prog, func(n ast.Node) bool {
		if n == nil {
			return false
		}
		check(n, n.Pos())
		if s, ok := n.(ast.Stmt); ok && firstErr == nil {
			firstErr = checkCovers(s)
		}
		return firstErr == nil
	})
	return firstErr
}

// checkCovers reports an initializer or value that sticks out of its statement.
func checkCovers(s ast.Stmt) error {
	outer := s.Pos()
	if outer.End == 0 {
		return nil
	}
	var inner []ast.Expr
	switch s := s.(type) {
	case *ast.VarDecl:
		inner = append(inner, s.Init)
	case *ast.VarAssign:
		inner = append(inner, s.Value)
	case *ast.Print:
		inner = append(inner, s.Arg)
	case *ast.Return:
		inner = append(inner, s.Value)
	}
	for _, e := range inner {
		if e == nil {
			continue
		}
		sp := e.Pos()
		if sp.End == 0 {
			continue
		}
		if sp.Start < outer.Start || sp.End > outer.End {
			return fmt.Errorf("%T span %v is outside its statement %v", e, sp, outer)
		}
	}
	return nil
}
