package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"mum/internal/source"
)

// shortLine is one rendered entry: `severity CODE path[:line:col] message`.
type shortLine struct {
	sev  string
	code string
	path string
	line uint32
	col  uint32
	msg  string
}

func (l shortLine) String() string {
	if l.line == 0 {
		return fmt.Sprintf("%s %s %s %s", l.sev, l.code, l.path, l.msg)
	}
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.msg)
}

// FormatShortDiagnostics renders one line per diagnostic (and per note when
// includeNotes is set) in the given order.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return joinLines(shortLines(diags, fs, includeNotes))
}

// FormatGoldenDiagnostics is the short form sorted by path and position, so
// golden files do not depend on emission order.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	lines := shortLines(diags, fs, includeNotes)
	slices.SortStableFunc(lines, func(a, b shortLine) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			cmp.Compare(a.sev, b.sev),
			cmp.Compare(a.code, b.code),
			cmp.Compare(a.msg, b.msg),
		)
	})
	return joinLines(lines)
}

func shortLines(diags []Diagnostic, fs *source.FileSet, includeNotes bool) []shortLine {
	if fs == nil {
		return nil
	}
	var out []shortLine
	for _, d := range diags {
		out = append(out, locate(fs, d.Primary, shortLine{sev: severityLabel(d.Severity), code: d.Code.ID(), msg: oneLine(d.Message)}))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			out = append(out, locate(fs, n.Span, shortLine{sev: "note", code: d.Code.ID(), msg: oneLine(n.Msg)}))
		}
	}
	return out
}

// locate fills the path and, for files with text, the start position.
func locate(fs *source.FileSet, sp source.Span, l shortLine) shortLine {
	f := fs.Get(sp.File)
	if f == nil {
		l.path = "<unknown>"
		return l
	}
	l.path = filepath.ToSlash(f.FormatPath("relative", fs.BaseDir()))
	for strings.HasPrefix(l.path, "./") {
		l.path = l.path[2:]
	}
	if f.HasContent() {
		start, _ := fs.Resolve(sp)
		l.line, l.col = start.Line, start.Col
	}
	return l
}

func joinLines(lines []shortLine) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.String()
	}
	return strings.Join(parts, "\n")
}

func severityLabel(sev Severity) string {
	return strings.ToLower(sev.String())
}

func oneLine(msg string) string {
	return strings.TrimSpace(strings.Join(strings.FieldsFunc(msg, func(r rune) bool { return r == '\n' || r == '\r' }), " "))
}
