package diag

import (
	"testing"

	"mum/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")

	userFile := fs.Add("/workspace/testdata/golden/sample.mum", []byte("a\nb\n"), 0)
	bare := fs.AddPathOnly("/workspace/testdata/golden/bare.mum")

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     OptDivisionByZero,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     SemaTypeMismatch,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: userFile, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevError,
			Code:     SemaUndeclaredIdentifier,
			Message:  "no text",
			Primary:  source.Span{File: bare},
		},
	}

	expected := "error SEM3003 testdata/golden/bare.mum no text\n" +
		"error SEM3005 testdata/golden/sample.mum:1:1 first line second\n" +
		"note SEM3005 testdata/golden/sample.mum:2:1 note line\n" +
		"warning OPT7001 testdata/golden/sample.mum:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestShortKeepsOrder(t *testing.T) {
	fs := source.NewFileSetWithBase("/w")
	f := fs.Add("/w/a.mum", []byte("x\ny\n"), 0)
	diags := []Diagnostic{
		NewError(SemaArityMismatch, source.Span{File: f, Start: 2, End: 3}, "second"),
		NewError(SemaUnknownType, source.Span{File: f, Start: 0, End: 1}, "first"),
	}
	want := "error SEM3008 a.mum:2:1 second\nerror SEM3011 a.mum:1:1 first"
	if got := FormatShortDiagnostics(diags, fs, false); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}
