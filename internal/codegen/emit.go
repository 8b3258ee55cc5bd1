// Package codegen renders an analyzed program as JavaScript source.
package codegen

import (
	"errors"
	"fmt"
	"strings"

	"fortio.org/safecast"

	"mum/internal/ast"
	"mum/internal/symbols"
	"mum/internal/types"
)

// Emitter accumulates the output of a single Generate call.
type Emitter struct {
	buf    strings.Builder
	indent int
	names  map[symbols.Entity]string
}

// Generate returns the JavaScript text for prog. The tree must have been
// decorated by sema.Analyze; an unresolved node is an error.
func Generate(prog *ast.Program) (string, error) {
	if prog == nil {
		return "", errors.New("codegen: nil program")
	}
	e := &Emitter{names: make(map[symbols.Entity]string)}
	if err := e.emitBlock(prog.Stmts); err != nil {
		return "", fmt.Errorf("codegen: %w", err)
	}
	return e.buf.String(), nil
}

// targetName gives every user entity a unique identifier: the source name
// with a counter suffix, in order of first use.
func (e *Emitter) targetName(ent symbols.Entity) (string, error) {
	if name, ok := e.names[ent]; ok {
		return name, nil
	}
	n, err := safecast.Conv[uint32](len(e.names) + 1)
	if err != nil {
		return "", fmt.Errorf("too many names: %w", err)
	}
	name := fmt.Sprintf("%s_%d", ent.EntityName(), n)
	e.names[ent] = name
	return name, nil
}

func (e *Emitter) line(format string, args ...any) {
	for range e.indent {
		e.buf.WriteString("  ")
	}
	fmt.Fprintf(&e.buf, format, args...)
	e.buf.WriteByte('\n')
}

func (e *Emitter) emitBlock(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := e.emitStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) emitNested(stmts []ast.Stmt) error {
	e.indent++
	err := e.emitBlock(stmts)
	e.indent--
	return err
}

// zeroValue is the initial value of a declaration without initializer.
func zeroValue(t *types.Type) string {
	if t == nil {
		return "undefined"
	}
	switch t.Kind {
	case types.KindInt, types.KindFloat, types.KindBinary:
		return "0"
	case types.KindString:
		return `""`
	case types.KindBool:
		return "false"
	case types.KindList:
		return "[]"
	default:
		return "undefined"
	}
}
