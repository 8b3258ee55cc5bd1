package fuzztests

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"mum/internal/astio"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// builtinSeeds are small JSON documents covering every node kind.
var builtinSeeds = []string{
	`{"version": 1, "program": {"kind": "Program"}}`,
	`{"version": 1, "source": "int x = 1\n", "program": {"kind": "Program", "stmts": [
	  {"kind": "VarDecl", "span": [0, 9], "name": "x", "name_span": [4, 5], "type": {"kind": "NamedType", "name": "int"},
	   "init": {"kind": "Literal", "token": "Int", "text": "1", "span": [8, 9]}}]}}`,
	`{"version": 1, "program": {"kind": "Program", "stmts": [
	  {"kind": "FuncDecl", "name": "f", "params": [{"kind": "Param", "name": "n", "type": {"kind": "NamedType", "name": "int"}}],
	   "result": {"kind": "NamedType", "name": "int"},
	   "body": [{"kind": "Return", "value": {"kind": "Binary", "op": "/", "left": {"kind": "Ident", "name": "n"},
	     "right": {"kind": "Literal", "token": "Int", "text": "0"}}}]},
	  {"kind": "Print", "value": {"kind": "Call", "name": "f", "args": [{"kind": "Literal", "token": "Int", "text": "3"}]}}]}}`,
	`{"version": 1, "program": {"kind": "Program", "stmts": [
	  {"kind": "While", "cond": {"kind": "Literal", "token": "Bool", "text": "false"}, "body": [{"kind": "Break"}]},
	  {"kind": "If", "cond": {"kind": "Unary", "op": "!", "x": {"kind": "Literal", "token": "Bool", "text": "true"}},
	   "then": [{"kind": "Print", "value": {"kind": "Literal", "token": "Str", "text": "\"a\""}}],
	   "else": [{"kind": "Print", "value": {"kind": "List", "elems": [{"kind": "Literal", "token": "Float", "text": "1.5"}]}}]}]}}`,
	`{"version": 1, "program": {"kind": "Program", "stmts": [
	  {"kind": "Instruction", "op": "add", "operands": [{"kind": "Ident", "name": "y"},
	   {"kind": "Literal", "token": "Int", "text": "1"}, {"kind": "Literal", "token": "Int", "text": "2"}]},
	  {"kind": "CallStmt", "name": "print", "args": [{"kind": "Ident", "name": "y"}],
	   "guard": {"kind": "Binary", "op": ">", "left": {"kind": "Ident", "name": "y"}, "right": {"kind": "Literal", "token": "Int", "text": "0"}}}]}}`,
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
	f.Add([]byte{})
}

// addTestdataSeeds adds every JSON document under testdata/, if the
// directory exists.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if format, err := astio.DetectFormat(path); err != nil || format != astio.FormatJSON {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

// msgpackSeeds re-encodes the builtin seeds.
func msgpackSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		doc, err := astio.ReadDocument(bytes.NewReader([]byte(s)), astio.FormatJSON)
		if err != nil {
			continue
		}
		var buf bytes.Buffer
		if err := astio.WriteDocument(&buf, doc, astio.FormatMsgpack); err != nil {
			continue
		}
		f.Add(buf.Bytes())
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
