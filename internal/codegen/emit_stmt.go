package codegen

import (
	"fmt"

	"mum/internal/ast"
)

func (e *Emitter) emitStmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.VarDecl:
		return e.emitVarDecl(s)
	case *ast.VarAssign:
		target, err := e.emitIdent(s.Target)
		if err != nil {
			return err
		}
		value, err := e.emitExpr(s.Value)
		if err != nil {
			return err
		}
		e.line("%s = %s;", target, value)
	case *ast.FuncDecl:
		return e.emitFunc(s)
	case *ast.CallStmt:
		return e.emitCallStmt(s.Call)
	case *ast.If:
		return e.emitIf(s)
	case *ast.While:
		cond, err := e.emitExpr(s.Cond)
		if err != nil {
			return err
		}
		e.line("while (%s) {", cond)
		if err := e.emitNested(s.Body); err != nil {
			return err
		}
		e.line("}")
	case *ast.Break:
		e.line("break;")
	case *ast.Return:
		if s.Value == nil {
			e.line("return;")
			return nil
		}
		value, err := e.emitExpr(s.Value)
		if err != nil {
			return err
		}
		e.line("return %s;", value)
	case *ast.Print:
		arg, err := e.emitExpr(s.Arg)
		if err != nil {
			return err
		}
		e.line("console.log(%s);", arg)
	case *ast.Instruction:
		return e.emitInstruction(s)
	default:
		return fmt.Errorf("unexpected statement %T", s)
	}
	return nil
}

func (e *Emitter) emitVarDecl(d *ast.VarDecl) error {
	if d.Entity == nil {
		return fmt.Errorf("declaration of %q is not resolved", d.Name)
	}
	name, err := e.targetName(d.Entity)
	if err != nil {
		return err
	}
	value := zeroValue(d.Entity.Type)
	if d.Init != nil {
		if value, err = e.emitExpr(d.Init); err != nil {
			return err
		}
	}
	e.line("let %s = %s;", name, value)
	return nil
}

func (e *Emitter) emitFunc(fd *ast.FuncDecl) error {
	if fd.Entity == nil {
		return fmt.Errorf("function %q is not resolved", fd.Name)
	}
	name, err := e.targetName(fd.Entity)
	if err != nil {
		return err
	}
	params := make([]string, 0, len(fd.Entity.Params))
	for _, p := range fd.Entity.Params {
		if p.Var == nil {
			return fmt.Errorf("parameter %q of %q is not resolved", p.Name, fd.Name)
		}
		pn, err := e.targetName(p.Var)
		if err != nil {
			return err
		}
		params = append(params, pn)
	}
	e.line("function %s(%s) {", name, joinArgs(params))
	if err := e.emitNested(fd.Body); err != nil {
		return err
	}
	e.line("}")
	return nil
}

func (e *Emitter) emitCallStmt(c *ast.Call) error {
	callee, args, err := e.callParts(c)
	if err != nil {
		return err
	}
	if c.Guard == nil {
		e.line("%s(%s);", callee, args)
		return nil
	}
	guard, err := e.emitExpr(c.Guard)
	if err != nil {
		return err
	}
	e.line("if (%s) %s(%s);", guard, callee, args)
	return nil
}

// emitIf writes an if statement. An else branch holding a single if is
// rendered as an `else if` chain.
func (e *Emitter) emitIf(s *ast.If) error {
	cond, err := e.emitExpr(s.Cond)
	if err != nil {
		return err
	}
	e.line("if (%s) {", cond)
	for {
		if err := e.emitNested(s.Then); err != nil {
			return err
		}
		if len(s.Else) == 1 {
			if next, ok := s.Else[0].(*ast.If); ok {
				cond, err := e.emitExpr(next.Cond)
				if err != nil {
					return err
				}
				e.line("} else if (%s) {", cond)
				s = next
				continue
			}
		}
		if len(s.Else) > 0 {
			e.line("} else {")
			if err := e.emitNested(s.Else); err != nil {
				return err
			}
		}
		e.line("}")
		return nil
	}
}
