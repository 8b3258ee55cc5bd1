package astio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"mum/internal/ast"
	"mum/internal/source"
)

// Encode writes f back in wire form.
func Encode(w io.Writer, f *File, format Format) error {
	if f == nil || f.Program == nil {
		return fmt.Errorf("nothing to encode")
	}
	doc := &Document{
		Version: SchemaVersion,
		Path:    f.Path,
		Source:  string(f.Source),
		Program: toWire(f.Program, false),
	}
	return WriteDocument(w, doc, format)
}

// WriteDocument encodes doc. JSON output is indented.
func WriteDocument(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		return enc.Encode(doc)
	default:
		return fmt.Errorf("unsupported format %s", format)
	}
}

// toWire converts a tree to wire nodes. With decorate set, analyzed trees
// also carry resolved types, known values and entity kinds.
func toWire(prog *ast.Program, decorate bool) *Node {
	c := converter{decorate: decorate}
	return &Node{Kind: KindProgram, Span: wireSpan(prog.Span), Stmts: c.stmts(prog.Stmts)}
}

type converter struct {
	decorate bool
}

func wireSpan(s source.Span) Span {
	if s.Empty() && s.Start == 0 {
		return nil
	}
	return Span{s.Start, s.End}
}

func (c converter) stmts(stmts []ast.Stmt) []*Node {
	if len(stmts) == 0 {
		return nil
	}
	out := make([]*Node, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, c.stmt(s))
	}
	return out
}

func (c converter) stmt(s ast.Stmt) *Node {
	switch s := s.(type) {
	case *ast.VarDecl:
		n := &Node{Kind: KindVarDecl, Span: wireSpan(s.Span), Name: s.Name, NameSpan: wireSpan(s.NameSpan), Type: typeNode(s.Type)}
		if s.Init != nil {
			n.Init = c.expr(s.Init)
		}
		if c.decorate && s.Entity != nil {
			n.Entity = "variable"
			n.Resolved = typeString(s.Entity.Type)
			if s.Entity.Known {
				n.Known = ast.FormatValue(s.Entity.Value)
			}
		}
		return n
	case *ast.VarAssign:
		return &Node{Kind: KindVarAssign, Span: wireSpan(s.Span), Target: c.expr(s.Target), Value: c.expr(s.Value)}
	case *ast.FuncDecl:
		n := &Node{Kind: KindFuncDecl, Span: wireSpan(s.Span), Name: s.Name, NameSpan: wireSpan(s.NameSpan), Body: c.stmts(s.Body)}
		for _, p := range s.Params {
			n.Params = append(n.Params, &Node{Kind: KindParam, Span: wireSpan(p.Span), Name: p.Name, Type: typeNode(p.Type)})
		}
		if s.Result != nil {
			n.Result = typeNode(s.Result)
		}
		if c.decorate && s.Entity != nil {
			n.Entity = "function"
			n.Resolved = s.Entity.Type().String()
		}
		return n
	case *ast.CallStmt:
		n := c.call(s.Call)
		n.Kind = KindCallStmt
		return n
	case *ast.If:
		return &Node{Kind: KindIf, Span: wireSpan(s.Span), Cond: c.expr(s.Cond), Then: c.stmts(s.Then), Else: c.stmts(s.Else)}
	case *ast.While:
		return &Node{Kind: KindWhile, Span: wireSpan(s.Span), Cond: c.expr(s.Cond), Body: c.stmts(s.Body)}
	case *ast.Break:
		return &Node{Kind: KindBreak, Span: wireSpan(s.Span)}
	case *ast.Return:
		n := &Node{Kind: KindReturn, Span: wireSpan(s.Span)}
		if s.Value != nil {
			n.Value = c.expr(s.Value)
		}
		return n
	case *ast.Print:
		return &Node{Kind: KindPrint, Span: wireSpan(s.Span), Value: c.expr(s.Arg)}
	case *ast.Instruction:
		n := &Node{Kind: KindInstruction, Span: wireSpan(s.Span), Op: s.Op.String()}
		for _, op := range s.Operands {
			n.Operands = append(n.Operands, c.expr(op))
		}
		if c.decorate && s.Entity != nil {
			n.Entity = "variable"
			if s.Declares {
				n.Entity = "variable (declared)"
			}
			n.Resolved = typeString(s.Entity.Type)
		}
		return n
	default:
		panic(fmt.Sprintf("astio: unexpected statement %T", s))
	}
}

func (c converter) expr(e ast.Expr) *Node {
	var n *Node
	switch e := e.(type) {
	case *ast.Ident:
		n = &Node{Kind: KindIdent, Span: wireSpan(e.Span), Name: e.Name}
		if c.decorate && e.Known {
			n.Known = ast.FormatValue(e.Value)
		}
	case *ast.Literal:
		n = &Node{Kind: KindLiteral, Span: wireSpan(e.Token.Span), Token: e.Token.Kind.String(), Text: e.Token.Text}
	case *ast.Binary:
		n = &Node{Kind: KindBinary, Span: wireSpan(e.Span), Op: e.Op.String(), Left: c.expr(e.Left), Right: c.expr(e.Right)}
	case *ast.Unary:
		n = &Node{Kind: KindUnary, Span: wireSpan(e.Span), Op: e.Op.String(), X: c.expr(e.X)}
	case *ast.Call:
		n = c.call(e)
	case *ast.List:
		n = &Node{Kind: KindList, Span: wireSpan(e.Span)}
		for _, el := range e.Elems {
			n.Elems = append(n.Elems, c.expr(el))
		}
	default:
		panic(fmt.Sprintf("astio: unexpected expression %T", e))
	}
	if c.decorate {
		n.Resolved = typeString(e.Type())
	}
	return n
}

func (c converter) call(e *ast.Call) *Node {
	n := &Node{Kind: KindCall, Span: wireSpan(e.Span), Name: e.Name, NameSpan: wireSpan(e.NameSpan)}
	for _, a := range e.Args {
		n.Args = append(n.Args, c.expr(a))
	}
	if e.Guard != nil {
		n.Guard = c.expr(e.Guard)
	}
	return n
}

func typeNode(t ast.TypeExpr) *Node {
	switch t := t.(type) {
	case *ast.NamedType:
		return &Node{Kind: KindNamedType, Span: wireSpan(t.Span), Name: t.Name}
	case *ast.ListType:
		return &Node{Kind: KindListType, Span: wireSpan(t.Span), Elem: typeNode(t.Elem)}
	default:
		return nil
	}
}
