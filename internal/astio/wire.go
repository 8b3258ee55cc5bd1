// Package astio moves syntax trees across the process boundary.
//
// The parser is a separate tool: it writes a Document as JSON or
// MessagePack and mum reads it back into the ast package. Both formats share
// one tagged record per node, keyed by "kind".
package astio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SchemaVersion is written into every encoded document.
const SchemaVersion = 1

// Format selects the wire encoding.
type Format uint8

const (
	FormatJSON Format = iota + 1
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	default:
		return "unknown"
	}
}

// DetectFormat picks the wire format from a file name.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".mpk", ".msgpack":
		return FormatMsgpack, nil
	default:
		return 0, fmt.Errorf("cannot detect AST format of %q (expected .json, .mpk or .msgpack)", path)
	}
}

// Document is the top-level wire record.
type Document struct {
	Version int    `json:"version" yaml:"version"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	// Source is the program text, used only to render diagnostics.
	Source  string `json:"source,omitempty" yaml:"source,omitempty"`
	Program *Node  `json:"program" yaml:"program"`
}

// Span is a [start, end) byte range.
type Span []uint32

// Node is the wire form of every tree node. Kind decides which of the
// other fields are meaningful.
type Node struct {
	Kind     string `json:"kind" yaml:"kind"`
	Span     Span   `json:"span,omitempty" yaml:"span,omitempty,flow"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	NameSpan Span   `json:"name_span,omitempty" yaml:"name_span,omitempty,flow"`
	Op       string `json:"op,omitempty" yaml:"op,omitempty"`

	// literals
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
	Text  string `json:"text,omitempty" yaml:"text,omitempty"`

	Type   *Node `json:"type,omitempty" yaml:"type,omitempty"`
	Elem   *Node `json:"elem,omitempty" yaml:"elem,omitempty"`
	Result *Node `json:"result,omitempty" yaml:"result,omitempty"`

	Init   *Node `json:"init,omitempty" yaml:"init,omitempty"`
	Target *Node `json:"target,omitempty" yaml:"target,omitempty"`
	Value  *Node `json:"value,omitempty" yaml:"value,omitempty"`
	Left   *Node `json:"left,omitempty" yaml:"left,omitempty"`
	Right  *Node `json:"right,omitempty" yaml:"right,omitempty"`
	X      *Node `json:"x,omitempty" yaml:"x,omitempty"`
	Cond   *Node `json:"cond,omitempty" yaml:"cond,omitempty"`
	Guard  *Node `json:"guard,omitempty" yaml:"guard,omitempty"`

	Args     []*Node `json:"args,omitempty" yaml:"args,omitempty"`
	Params   []*Node `json:"params,omitempty" yaml:"params,omitempty"`
	Stmts    []*Node `json:"stmts,omitempty" yaml:"stmts,omitempty"`
	Body     []*Node `json:"body,omitempty" yaml:"body,omitempty"`
	Then     []*Node `json:"then,omitempty" yaml:"then,omitempty"`
	Else     []*Node `json:"else,omitempty" yaml:"else,omitempty"`
	Elems    []*Node `json:"elems,omitempty" yaml:"elems,omitempty"`
	Operands []*Node `json:"operands,omitempty" yaml:"operands,omitempty"`

	// Filled only by Dump for analyzed trees.
	Resolved string `json:"resolved,omitempty" yaml:"resolved,omitempty"`
	Known    string `json:"known,omitempty" yaml:"known,omitempty"`
	Entity   string `json:"entity,omitempty" yaml:"entity,omitempty"`
}

// Node kinds.
const (
	KindProgram     = "Program"
	KindVarDecl     = "VarDecl"
	KindVarAssign   = "VarAssign"
	KindFuncDecl    = "FuncDecl"
	KindParam       = "Param"
	KindCallStmt    = "CallStmt"
	KindIf          = "If"
	KindWhile       = "While"
	KindBreak       = "Break"
	KindReturn      = "Return"
	KindPrint       = "Print"
	KindInstruction = "Instruction"
	KindIdent       = "Ident"
	KindLiteral     = "Literal"
	KindBinary      = "Binary"
	KindUnary       = "Unary"
	KindCall        = "Call"
	KindList        = "List"
	KindNamedType   = "NamedType"
	KindListType    = "ListType"
)
