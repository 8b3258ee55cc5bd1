package astio_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mum/internal/ast"
	"mum/internal/astio"
	"mum/internal/sema"
	"mum/internal/source"
	"mum/internal/testkit"
)

// program covers every node kind:
//
//	int x = 40 + 2
//	fn twice(int n) -> int { return n * 2 }
//	if (x > 0) { print(twice(x)) } else { x = -x }
//	while (true) { break }
//	add y, x, 1
//	[int] xs = [1, 2]
//	print(xs)
//	print(x) if (false)
const program = `{
  "version": 1,
  "path": "prog.mum",
  "source": "int x = 40 + 2\n",
  "program": {"kind": "Program", "span": [0, 15], "stmts": [
    {"kind": "VarDecl", "span": [0, 14], "name": "x", "name_span": [4, 5],
     "type": {"kind": "NamedType", "name": "int"},
     "init": {"kind": "Binary", "op": "+", "span": [8, 14],
       "left": {"kind": "Literal", "token": "Int", "text": "40", "span": [8, 10]},
       "right": {"kind": "Literal", "token": "Int", "text": "2", "span": [13, 14]}}},
    {"kind": "FuncDecl", "name": "twice",
     "params": [{"kind": "Param", "name": "n", "type": {"kind": "NamedType", "name": "int"}}],
     "result": {"kind": "NamedType", "name": "int"},
     "body": [{"kind": "Return", "value": {"kind": "Binary", "op": "*",
       "left": {"kind": "Ident", "name": "n"},
       "right": {"kind": "Literal", "token": "Int", "text": "2"}}}]},
    {"kind": "If",
     "cond": {"kind": "Binary", "op": ">", "left": {"kind": "Ident", "name": "x"},
       "right": {"kind": "Literal", "token": "Int", "text": "0"}},
     "then": [{"kind": "Print", "value": {"kind": "Call", "name": "twice",
       "args": [{"kind": "Ident", "name": "x"}]}}],
     "else": [{"kind": "VarAssign", "target": {"kind": "Ident", "name": "x"},
       "value": {"kind": "Unary", "op": "-", "x": {"kind": "Ident", "name": "x"}}}]},
    {"kind": "While", "cond": {"kind": "Literal", "token": "Bool", "text": "true"},
     "body": [{"kind": "Break"}]},
    {"kind": "Instruction", "op": "add", "operands": [
      {"kind": "Ident", "name": "y"}, {"kind": "Ident", "name": "x"},
      {"kind": "Literal", "token": "Int", "text": "1"}]},
    {"kind": "VarDecl", "name": "xs",
     "type": {"kind": "ListType", "elem": {"kind": "NamedType", "name": "int"}},
     "init": {"kind": "List", "elems": [
       {"kind": "Literal", "token": "Int", "text": "1"},
       {"kind": "Literal", "token": "Int", "text": "2"}]}},
    {"kind": "Print", "value": {"kind": "Ident", "name": "xs"}},
    {"kind": "CallStmt", "name": "print", "args": [{"kind": "Ident", "name": "x"}],
     "guard": {"kind": "Literal", "token": "Bool", "text": "false"}}
  ]}
}`

func decode(t *testing.T, doc string) *astio.File {
	t.Helper()
	f, err := astio.Decode(strings.NewReader(doc), astio.FormatJSON)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return f
}

func TestDecodeBuildsTree(t *testing.T) {
	f := decode(t, program)
	if f.Path != "prog.mum" {
		t.Fatalf("path = %q", f.Path)
	}
	stmts := f.Program.Stmts
	if len(stmts) != 8 {
		t.Fatalf("got %d statements, want 8", len(stmts))
	}

	d, ok := stmts[0].(*ast.VarDecl)
	if !ok || d.Name != "x" || d.Type.String() != "int" {
		t.Fatalf("stmt 0 = %#v", stmts[0])
	}
	if d.NameSpan.Start != 4 || d.NameSpan.End != 5 {
		t.Fatalf("name span = %v", d.NameSpan)
	}
	b, ok := d.Init.(*ast.Binary)
	if !ok || b.Op != ast.BinaryAdd {
		t.Fatalf("init = %#v", d.Init)
	}
	if l, ok := b.Left.(*ast.Literal); !ok || l.Value != int64(40) {
		t.Fatalf("left = %#v", b.Left)
	}

	fd, ok := stmts[1].(*ast.FuncDecl)
	if !ok || fd.Name != "twice" || len(fd.Params) != 1 || fd.Result == nil {
		t.Fatalf("stmt 1 = %#v", stmts[1])
	}
	if _, ok := fd.Body[0].(*ast.Return); !ok {
		t.Fatalf("body = %#v", fd.Body)
	}

	ifs, ok := stmts[2].(*ast.If)
	if !ok || len(ifs.Then) != 1 || len(ifs.Else) != 1 {
		t.Fatalf("stmt 2 = %#v", stmts[2])
	}
	if a, ok := ifs.Else[0].(*ast.VarAssign); !ok || a.Target.Name != "x" {
		t.Fatalf("else = %#v", ifs.Else[0])
	}

	if w, ok := stmts[3].(*ast.While); !ok || len(w.Body) != 1 {
		t.Fatalf("stmt 3 = %#v", stmts[3])
	}
	in, ok := stmts[4].(*ast.Instruction)
	if !ok || in.Op != ast.InstrAdd || len(in.Operands) != 3 {
		t.Fatalf("stmt 4 = %#v", stmts[4])
	}
	xs := stmts[5].(*ast.VarDecl)
	if xs.Type.String() != "[int]" {
		t.Fatalf("list type = %s", xs.Type)
	}
	cs, ok := stmts[7].(*ast.CallStmt)
	if !ok || cs.Call.Guard == nil || cs.Call.Name != "print" {
		t.Fatalf("stmt 7 = %#v", stmts[7])
	}
}

func TestDecodedTreeAnalyzes(t *testing.T) {
	f := decode(t, program)
	if _, err := sema.Analyze(f.Program, sema.Options{}); err != nil {
		t.Fatalf("analyze: %v", err)
	}
}

func TestMsgpackRoundTrip(t *testing.T) {
	f := decode(t, program)

	var first bytes.Buffer
	if err := astio.Encode(&first, f, astio.FormatJSON); err != nil {
		t.Fatalf("encode json: %v", err)
	}
	var packed bytes.Buffer
	if err := astio.Encode(&packed, f, astio.FormatMsgpack); err != nil {
		t.Fatalf("encode msgpack: %v", err)
	}
	back, err := astio.Decode(&packed, astio.FormatMsgpack)
	if err != nil {
		t.Fatalf("decode msgpack: %v", err)
	}
	var second bytes.Buffer
	if err := astio.Encode(&second, back, astio.FormatJSON); err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if first.String() != second.String() {
		t.Fatalf("round trip changed the document:\n%s\n---\n%s", first.String(), second.String())
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		pointer string
		msg     string
	}{
		{
			name: "unknown field",
			doc:  `{"version": 1, "program": {"kind": "Program"}, "extra": true}`,
			msg:  "unknown field",
		},
		{
			name: "wrong version",
			doc:  `{"version": 7, "program": {"kind": "Program"}}`,
			msg:  "schema version",
		},
		{
			name: "no program",
			doc:  `{"version": 1}`,
			msg:  "no program",
		},
		{
			name:    "unknown statement",
			doc:     `{"version": 1, "program": {"kind": "Program", "stmts": [{"kind": "Goto"}]}}`,
			pointer: "program.stmts[0]",
			msg:     `unknown statement kind "Goto"`,
		},
		{
			name: "bad literal",
			doc: `{"version": 1, "program": {"kind": "Program", "stmts": [
				{"kind": "Print", "value": {"kind": "Literal", "token": "Int", "text": "4x"}}]}}`,
			pointer: "program.stmts[0].value",
		},
		{
			name: "identifier token as literal",
			doc: `{"version": 1, "program": {"kind": "Program", "stmts": [
				{"kind": "Print", "value": {"kind": "Literal", "token": "Id", "text": "x"}}]}}`,
			pointer: "program.stmts[0].value.token",
		},
		{
			name: "missing type",
			doc: `{"version": 1, "program": {"kind": "Program", "stmts": [
				{"kind": "VarDecl", "name": "x"}]}}`,
			pointer: "program.stmts[0].type",
		},
		{
			name: "assignment to call",
			doc: `{"version": 1, "program": {"kind": "Program", "stmts": [
				{"kind": "VarAssign", "target": {"kind": "Call", "name": "f"},
				 "value": {"kind": "Ident", "name": "y"}}]}}`,
			pointer: "program.stmts[0].target",
		},
		{
			name: "unknown instruction",
			doc: `{"version": 1, "program": {"kind": "Program", "stmts": [
				{"kind": "Instruction", "op": "jmp"}]}}`,
			pointer: "program.stmts[0].op",
		},
		{
			name: "span past source",
			doc: `{"version": 1, "source": "print(1)", "program": {"kind": "Program", "stmts": [
				{"kind": "Print", "span": [0, 80], "value": {"kind": "Literal", "token": "Int", "text": "1"}}]}}`,
			msg: "outside the source",
		},
		{
			name: "reversed span",
			doc: `{"version": 1, "program": {"kind": "Program", "stmts": [
				{"kind": "Print", "span": [5, 2], "value": {"kind": "Literal", "token": "Int", "text": "1"}}]}}`,
			msg: "span [5, 2]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := astio.Decode(strings.NewReader(tt.doc), astio.FormatJSON)
			if err == nil {
				t.Fatalf("expected error")
			}
			var derr *astio.DecodeError
			if !errors.As(err, &derr) {
				t.Fatalf("error %T is not *DecodeError: %v", err, err)
			}
			if derr.Pointer != tt.pointer {
				t.Fatalf("pointer = %q, want %q (%v)", derr.Pointer, tt.pointer, err)
			}
			if tt.msg != "" && !strings.Contains(err.Error(), tt.msg) {
				t.Fatalf("error %q does not mention %q", err, tt.msg)
			}
		})
	}
}

func TestLoadRegistersSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.ast.json")
	if err := os.WriteFile(path, []byte(program), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	f, err := astio.Load(fs, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	file := fs.Get(f.FileID)
	if file == nil || string(file.Content) != "int x = 40 + 2\n" {
		t.Fatalf("file not registered with its source: %#v", file)
	}
	d := f.Program.Stmts[0].(*ast.VarDecl)
	if d.NameSpan.File != f.FileID {
		t.Fatalf("span file = %d, want %d", d.NameSpan.File, f.FileID)
	}
	start, _ := fs.Resolve(d.NameSpan)
	if start.Line != 1 || start.Col != 5 {
		t.Fatalf("name resolves to %d:%d, want 1:5", start.Line, start.Col)
	}
	if err := testkit.CheckSpanInvariants(f.Program, file); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	if _, err := astio.Load(source.NewFileSet(), "prog.txt"); err == nil {
		t.Fatalf("expected format detection error")
	}
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]astio.Format{
		"a.json":        astio.FormatJSON,
		"a.AST.JSON":    astio.FormatJSON,
		"a.mpk":         astio.FormatMsgpack,
		"dir/a.msgpack": astio.FormatMsgpack,
	}
	for path, want := range tests {
		got, err := astio.DetectFormat(path)
		if err != nil || got != want {
			t.Fatalf("DetectFormat(%q) = %v, %v; want %v", path, got, err, want)
		}
	}
}

func analyzed(t *testing.T) *ast.Program {
	t.Helper()
	f := decode(t, `{"version": 1, "program": {"kind": "Program", "stmts": [
		{"kind": "VarDecl", "name": "x", "type": {"kind": "NamedType", "name": "int"},
		 "init": {"kind": "Literal", "token": "Int", "text": "42"}},
		{"kind": "Print", "value": {"kind": "Ident", "name": "x"}}]}}`)
	prog, err := sema.Analyze(f.Program, sema.Options{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return prog
}

func TestDumpTree(t *testing.T) {
	var buf bytes.Buffer
	if err := astio.Dump(&buf, analyzed(t), astio.DumpTree); err != nil {
		t.Fatal(err)
	}
	want := "VarDecl x int = 42\n" +
		"  Literal 42 : int\n" +
		"Print\n" +
		"  Ident x : int = 42\n"
	if buf.String() != want {
		t.Fatalf("tree dump:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestDumpYAMLAndJSON(t *testing.T) {
	prog := analyzed(t)

	var y bytes.Buffer
	if err := astio.Dump(&y, prog, astio.DumpYAML); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"kind: VarDecl", "resolved: int", "entity: variable", "known: \"42\""} {
		if !strings.Contains(y.String(), want) {
			t.Fatalf("yaml dump lacks %q:\n%s", want, y.String())
		}
	}

	var j bytes.Buffer
	if err := astio.Dump(&j, prog, astio.DumpJSON); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(j.String(), `"resolved": "int"`) {
		t.Fatalf("json dump lacks resolved type:\n%s", j.String())
	}
}

func TestParseDumpFormat(t *testing.T) {
	for in, want := range map[string]astio.DumpFormat{"": astio.DumpTree, "tree": astio.DumpTree, "JSON": astio.DumpJSON, "yml": astio.DumpYAML} {
		got, err := astio.ParseDumpFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseDumpFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := astio.ParseDumpFormat("xml"); err == nil {
		t.Fatalf("expected error for xml")
	}
}
