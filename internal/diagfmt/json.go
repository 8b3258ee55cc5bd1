package diagfmt

import (
	"encoding/json"
	"io"

	"mum/internal/diag"
	"mum/internal/source"
)

// LocationJSON is a span. Line and column fields are filled only when
// positions are requested and the file carries its source text.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type FixEditJSON struct {
	Location    LocationJSON `json:"location"`
	NewText     string       `json:"new_text"`
	BeforeLines []string     `json:"before_lines,omitempty"`
	AfterLines  []string     `json:"after_lines,omitempty"`
}

type FixJSON struct {
	Title string        `json:"title"`
	Edits []FixEditJSON `json:"edits,omitempty"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// DiagnosticsOutput is the document written by JSON.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

type jsonEncoder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (e jsonEncoder) location(sp source.Span) LocationJSON {
	loc := LocationJSON{File: displayPath(e.fs, sp.File, e.opts.PathMode), StartByte: sp.Start, EndByte: sp.End}
	if e.opts.IncludePositions && e.fs.Get(sp.File).HasContent() {
		start, end := e.fs.Resolve(sp)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

func (e jsonEncoder) diagnostic(d *diag.Diagnostic) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: e.location(d.Primary),
	}
	// заметка таймингов и есть полезная нагрузка, её не отбрасываем
	if e.opts.IncludeNotes || d.Code == diag.ObsTimings {
		for _, n := range d.Notes {
			out.Notes = append(out.Notes, NoteJSON{Message: n.Msg, Location: e.location(n.Span)})
		}
	}
	if e.opts.IncludeFixes {
		for i := range d.Fixes {
			out.Fixes = append(out.Fixes, e.fix(&d.Fixes[i]))
		}
	}
	return out
}

func (e jsonEncoder) fix(fx *diag.Fix) FixJSON {
	out := FixJSON{Title: fx.Title}
	for _, edit := range fx.Edits {
		ej := FixEditJSON{Location: e.location(edit.Span), NewText: edit.NewText}
		if e.opts.IncludePreviews {
			if p, err := previewEdit(e.fs, edit); err == nil {
				ej.BeforeLines, ej.AfterLines = p.before, p.after
			}
		}
		out.Edits = append(out.Edits, ej)
	}
	return out
}

// BuildDiagnosticsOutput converts bag without serializing it. opts.Max
// truncates the output only.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	enc := jsonEncoder{fs: fs, opts: opts}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(items))}
	for i := range items {
		out.Diagnostics = append(out.Diagnostics, enc.diagnostic(&items[i]))
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes bag as one indented document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
