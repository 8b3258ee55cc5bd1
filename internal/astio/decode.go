package astio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"mum/internal/ast"
	"mum/internal/source"
	"mum/internal/token"
)

// File is a decoded document.
type File struct {
	Path    string
	FileID  source.FileID
	Source  []byte
	Program *ast.Program
}

// DecodeError reports a malformed document. Pointer locates the node,
// e.g. "program.stmts[2].init".
type DecodeError struct {
	Path    string
	Pointer string
	Err     error
}

func (e *DecodeError) Error() string {
	where := e.Path
	if where == "" {
		where = "<input>"
	}
	if e.Pointer != "" {
		return fmt.Sprintf("%s: %s: %v", where, e.Pointer, e.Err)
	}
	return fmt.Sprintf("%s: %v", where, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ReadDocument decodes the wire record without building the tree.
// Unknown fields are rejected in both formats.
func ReadDocument(r io.Reader, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
	case FormatMsgpack:
		dec := msgpack.NewDecoder(r)
		dec.SetCustomStructTag("json")
		dec.DisallowUnknownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}
	if doc.Version != SchemaVersion {
		return nil, fmt.Errorf("unsupported schema version %d (expected %d)", doc.Version, SchemaVersion)
	}
	if doc.Program == nil {
		return nil, errors.New("document has no program")
	}
	return &doc, nil
}

// Decode reads a document from r. Spans refer to file 0; use Load to
// register the file in a FileSet.
func Decode(r io.Reader, format Format) (*File, error) {
	doc, err := ReadDocument(r, format)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return build(doc, doc.Path, 0)
}

// Load reads and decodes the document at path and registers it in fs.
// The embedded source text, when present, backs line/column resolution.
func Load(fs *source.FileSet, path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return LoadBytes(fs, path, data)
}

// LoadBytes is Load for a document that was already read.
func LoadBytes(fs *source.FileSet, path string, data []byte) (*File, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	doc, err := ReadDocument(bytes.NewReader(data), format)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	name := path
	if doc.Path != "" {
		name = doc.Path
	}
	var id source.FileID
	if doc.Source != "" {
		id = fs.Add(name, []byte(doc.Source), 0)
	} else {
		id = fs.AddPathOnly(name)
	}
	return build(doc, path, id)
}

func build(doc *Document, path string, id source.FileID) (*File, error) {
	b := &builder{file: id, path: path, limit: len(doc.Source)}
	prog, err := b.program(doc.Program)
	if err != nil {
		return nil, err
	}
	if b.badSpan != nil {
		return nil, b.badSpan
	}
	return &File{Path: path, FileID: id, Source: []byte(doc.Source), Program: prog}, nil
}

// builder converts wire nodes to ast nodes.
type builder struct {
	file source.FileID
	path string
	// limit is the source length; spans must stay inside it when > 0
	limit   int
	badSpan error
}

func (b *builder) fail(ptr, format string, args ...any) error {
	return &DecodeError{Path: b.path, Pointer: ptr, Err: fmt.Errorf(format, args...)}
}

// span converts a wire span. The first malformed one is kept in badSpan
// and fails the whole document.
func (b *builder) span(s Span) source.Span {
	if len(s) != 2 {
		return source.Span{File: b.file}
	}
	if s[0] > s[1] || (b.limit > 0 && int64(s[1]) > int64(b.limit)) {
		if b.badSpan == nil {
			b.badSpan = b.fail("", "span [%d, %d] is outside the source (%d bytes)", s[0], s[1], b.limit)
		}
		return source.Span{File: b.file}
	}
	return source.Span{File: b.file, Start: s[0], End: s[1]}
}

func (b *builder) name(ptr string, n *Node) (string, error) {
	if n.Name == "" {
		return "", b.fail(ptr, "%s without name", n.Kind)
	}
	return source.NormalizeName(n.Name), nil
}

func (b *builder) program(n *Node) (*ast.Program, error) {
	if n.Kind != KindProgram {
		return nil, b.fail("program", "expected %s, got %q", KindProgram, n.Kind)
	}
	stmts, err := b.stmts("program.stmts", n.Stmts)
	if err != nil {
		return nil, err
	}
	return &ast.Program{Span: b.span(n.Span), Stmts: stmts}, nil
}

func (b *builder) stmts(ptr string, nodes []*Node) ([]ast.Stmt, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]ast.Stmt, 0, len(nodes))
	for i, n := range nodes {
		s, err := b.stmt(fmt.Sprintf("%s[%d]", ptr, i), n)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (b *builder) stmt(ptr string, n *Node) (ast.Stmt, error) {
	if n == nil {
		return nil, b.fail(ptr, "null statement")
	}
	sp := b.span(n.Span)
	switch n.Kind {
	case KindVarDecl:
		name, err := b.name(ptr, n)
		if err != nil {
			return nil, err
		}
		typ, err := b.typeExpr(ptr+".type", n.Type)
		if err != nil {
			return nil, err
		}
		d := &ast.VarDecl{Span: sp, Name: name, NameSpan: b.span(n.NameSpan), Type: typ}
		if n.Init != nil {
			if d.Init, err = b.expr(ptr+".init", n.Init); err != nil {
				return nil, err
			}
		}
		return d, nil
	case KindVarAssign:
		target, err := b.expr(ptr+".target", n.Target)
		if err != nil {
			return nil, err
		}
		id, ok := target.(*ast.Ident)
		if !ok {
			return nil, b.fail(ptr+".target", "assignment target must be %s", KindIdent)
		}
		value, err := b.expr(ptr+".value", n.Value)
		if err != nil {
			return nil, err
		}
		return &ast.VarAssign{Span: sp, Target: id, Value: value}, nil
	case KindFuncDecl:
		return b.funcDecl(ptr, n)
	case KindCallStmt:
		c, err := b.call(ptr, n)
		if err != nil {
			return nil, err
		}
		return &ast.CallStmt{Call: c}, nil
	case KindIf:
		cond, err := b.expr(ptr+".cond", n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := b.stmts(ptr+".then", n.Then)
		if err != nil {
			return nil, err
		}
		els, err := b.stmts(ptr+".else", n.Else)
		if err != nil {
			return nil, err
		}
		return &ast.If{Span: sp, Cond: cond, Then: then, Else: els}, nil
	case KindWhile:
		cond, err := b.expr(ptr+".cond", n.Cond)
		if err != nil {
			return nil, err
		}
		body, err := b.stmts(ptr+".body", n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.While{Span: sp, Cond: cond, Body: body}, nil
	case KindBreak:
		return &ast.Break{Span: sp}, nil
	case KindReturn:
		r := &ast.Return{Span: sp}
		if n.Value != nil {
			v, err := b.expr(ptr+".value", n.Value)
			if err != nil {
				return nil, err
			}
			r.Value = v
		}
		return r, nil
	case KindPrint:
		arg, err := b.expr(ptr+".value", n.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Print{Span: sp, Arg: arg}, nil
	case KindInstruction:
		op, err := ast.ParseInstrOp(n.Op)
		if err != nil {
			return nil, b.fail(ptr+".op", "%v", err)
		}
		operands, err := b.exprs(ptr+".operands", n.Operands)
		if err != nil {
			return nil, err
		}
		return &ast.Instruction{Span: sp, Op: op, Operands: operands}, nil
	default:
		return nil, b.fail(ptr, "unknown statement kind %q", n.Kind)
	}
}

func (b *builder) funcDecl(ptr string, n *Node) (*ast.FuncDecl, error) {
	name, err := b.name(ptr, n)
	if err != nil {
		return nil, err
	}
	fd := &ast.FuncDecl{Span: b.span(n.Span), Name: name, NameSpan: b.span(n.NameSpan)}
	for i, p := range n.Params {
		pp := fmt.Sprintf("%s.params[%d]", ptr, i)
		if p == nil || p.Kind != KindParam {
			return nil, b.fail(pp, "expected %s", KindParam)
		}
		pname, err := b.name(pp, p)
		if err != nil {
			return nil, err
		}
		ptype, err := b.typeExpr(pp+".type", p.Type)
		if err != nil {
			return nil, err
		}
		fd.Params = append(fd.Params, &ast.Param{Span: b.span(p.Span), Name: pname, Type: ptype})
	}
	if n.Result != nil {
		if fd.Result, err = b.typeExpr(ptr+".result", n.Result); err != nil {
			return nil, err
		}
	}
	if fd.Body, err = b.stmts(ptr+".body", n.Body); err != nil {
		return nil, err
	}
	return fd, nil
}

func (b *builder) exprs(ptr string, nodes []*Node) ([]ast.Expr, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]ast.Expr, 0, len(nodes))
	for i, n := range nodes {
		e, err := b.expr(fmt.Sprintf("%s[%d]", ptr, i), n)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (b *builder) expr(ptr string, n *Node) (ast.Expr, error) {
	if n == nil {
		return nil, b.fail(ptr, "missing expression")
	}
	sp := b.span(n.Span)
	switch n.Kind {
	case KindIdent:
		name, err := b.name(ptr, n)
		if err != nil {
			return nil, err
		}
		return &ast.Ident{Span: sp, Name: name}, nil
	case KindLiteral:
		kind, err := token.ParseKind(n.Token)
		if err != nil {
			return nil, b.fail(ptr+".token", "%v", err)
		}
		tok := token.Token{Kind: kind, Span: sp, Text: n.Text}
		if !tok.IsLiteral() {
			return nil, b.fail(ptr+".token", "%s is not a literal category", kind)
		}
		v, err := ast.LiteralValue(tok)
		if err != nil {
			return nil, b.fail(ptr, "%v", err)
		}
		return &ast.Literal{Token: tok, Value: v}, nil
	case KindBinary:
		op, err := ast.ParseBinaryOp(n.Op)
		if err != nil {
			return nil, b.fail(ptr+".op", "%v", err)
		}
		l, err := b.expr(ptr+".left", n.Left)
		if err != nil {
			return nil, err
		}
		r, err := b.expr(ptr+".right", n.Right)
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Span: sp, Op: op, Left: l, Right: r}, nil
	case KindUnary:
		op, err := ast.ParseUnaryOp(n.Op)
		if err != nil {
			return nil, b.fail(ptr+".op", "%v", err)
		}
		x, err := b.expr(ptr+".x", n.X)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Span: sp, Op: op, X: x}, nil
	case KindCall:
		return b.call(ptr, n)
	case KindList:
		elems, err := b.exprs(ptr+".elems", n.Elems)
		if err != nil {
			return nil, err
		}
		return &ast.List{Span: sp, Elems: elems}, nil
	default:
		return nil, b.fail(ptr, "unknown expression kind %q", n.Kind)
	}
}

func (b *builder) call(ptr string, n *Node) (*ast.Call, error) {
	name, err := b.name(ptr, n)
	if err != nil {
		return nil, err
	}
	c := &ast.Call{Span: b.span(n.Span), Name: name, NameSpan: b.span(n.NameSpan)}
	if c.Args, err = b.exprs(ptr+".args", n.Args); err != nil {
		return nil, err
	}
	if n.Guard != nil {
		if c.Guard, err = b.expr(ptr+".guard", n.Guard); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (b *builder) typeExpr(ptr string, n *Node) (ast.TypeExpr, error) {
	if n == nil {
		return nil, b.fail(ptr, "missing type")
	}
	sp := b.span(n.Span)
	switch n.Kind {
	case KindNamedType:
		name, err := b.name(ptr, n)
		if err != nil {
			return nil, err
		}
		return &ast.NamedType{Span: sp, Name: name}, nil
	case KindListType:
		elem, err := b.typeExpr(ptr+".elem", n.Elem)
		if err != nil {
			return nil, err
		}
		return &ast.ListType{Span: sp, Elem: elem}, nil
	default:
		return nil, b.fail(ptr, "unknown type kind %q", n.Kind)
	}
}
