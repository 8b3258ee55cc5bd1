package astio

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"mum/internal/ast"
	"mum/internal/types"
)

// DumpFormat selects how Dump renders a tree.
type DumpFormat uint8

const (
	DumpTree DumpFormat = iota + 1
	DumpJSON
	DumpYAML
)

// ParseDumpFormat converts a flag value.
func ParseDumpFormat(s string) (DumpFormat, error) {
	switch strings.ToLower(s) {
	case "", "tree":
		return DumpTree, nil
	case "json":
		return DumpJSON, nil
	case "yaml", "yml":
		return DumpYAML, nil
	default:
		return 0, fmt.Errorf("unknown dump format %q (expected tree|json|yaml)", s)
	}
}

// Dump renders prog, including the decoration left by analysis.
func Dump(w io.Writer, prog *ast.Program, format DumpFormat) error {
	if prog == nil {
		return fmt.Errorf("nothing to dump")
	}
	switch format {
	case DumpTree:
		p := &printer{w: w}
		p.stmts(prog.Stmts)
		return p.err
	case DumpJSON:
		return WriteDocument(w, &Document{Version: SchemaVersion, Program: toWire(prog, true)}, FormatJSON)
	case DumpYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toWire(prog, true)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown dump format %d", format)
	}
}

func typeString(t *types.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}

// printer renders the indented tree form.
type printer struct {
	w      io.Writer
	indent int
	err    error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, strings.Repeat("  ", p.indent)+format+"\n", args...)
}

func (p *printer) nested(f func()) {
	p.indent++
	f()
	p.indent--
}

func (p *printer) stmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		p.stmt(s)
	}
}

func (p *printer) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.VarDecl:
		p.printf("VarDecl %s %s%s", s.Name, s.Type, entityNote(s.Entity != nil && s.Entity.Known, valueOf(s)))
		if s.Init != nil {
			p.nested(func() { p.expr(s.Init) })
		}
	case *ast.VarAssign:
		p.printf("VarAssign %s", s.Target.Name)
		p.nested(func() { p.expr(s.Value) })
	case *ast.FuncDecl:
		sig := s.Name
		if s.Entity != nil {
			sig += " : " + s.Entity.Type().String()
		}
		p.printf("FuncDecl %s", sig)
		p.nested(func() { p.stmts(s.Body) })
	case *ast.CallStmt:
		p.printf("CallStmt")
		p.nested(func() { p.expr(s.Call) })
	case *ast.If:
		p.printf("If")
		p.nested(func() {
			p.expr(s.Cond)
			p.printf("Then")
			p.nested(func() { p.stmts(s.Then) })
			if len(s.Else) > 0 {
				p.printf("Else")
				p.nested(func() { p.stmts(s.Else) })
			}
		})
	case *ast.While:
		p.printf("While")
		p.nested(func() {
			p.expr(s.Cond)
			p.stmts(s.Body)
		})
	case *ast.Break:
		p.printf("Break")
	case *ast.Return:
		p.printf("Return")
		if s.Value != nil {
			p.nested(func() { p.expr(s.Value) })
		}
	case *ast.Print:
		p.printf("Print")
		p.nested(func() { p.expr(s.Arg) })
	case *ast.Instruction:
		suffix := ""
		if s.Declares {
			suffix = " (declares)"
		}
		p.printf("Instruction %s%s", s.Op, suffix)
		p.nested(func() {
			for _, op := range s.Operands {
				p.expr(op)
			}
		})
	}
}

func (p *printer) expr(e ast.Expr) {
	t := typeString(e.Type())
	if t == "" {
		t = "?"
	}
	switch e := e.(type) {
	case *ast.Ident:
		p.printf("Ident %s : %s%s", e.Name, t, entityNote(e.Known, e.Value))
	case *ast.Literal:
		p.printf("Literal %s : %s", e.Token.Text, t)
	case *ast.Binary:
		p.printf("Binary %s : %s", e.Op, t)
		p.nested(func() {
			p.expr(e.Left)
			p.expr(e.Right)
		})
	case *ast.Unary:
		p.printf("Unary %s : %s", e.Op, t)
		p.nested(func() { p.expr(e.X) })
	case *ast.Call:
		p.printf("Call %s : %s", e.Name, t)
		p.nested(func() {
			for _, a := range e.Args {
				p.expr(a)
			}
			if e.Guard != nil {
				p.printf("Guard")
				p.nested(func() { p.expr(e.Guard) })
			}
		})
	case *ast.List:
		p.printf("List : %s", t)
		p.nested(func() {
			for _, el := range e.Elems {
				p.expr(el)
			}
		})
	}
}

func valueOf(d *ast.VarDecl) any {
	if d.Entity == nil {
		return nil
	}
	return d.Entity.Value
}

func entityNote(known bool, v any) string {
	if !known {
		return ""
	}
	return " = " + ast.FormatValue(v)
}
