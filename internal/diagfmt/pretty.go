package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"mum/internal/diag"
	"mum/internal/source"
)

type palette struct {
	enabled bool
}

var (
	errorColor   = []color.Attribute{color.FgRed, color.Bold}
	warningColor = []color.Attribute{color.FgYellow, color.Bold}
	infoColor    = []color.Attribute{color.FgCyan, color.Bold}
	pathColor    = []color.Attribute{color.Bold}
	gutterColor  = []color.Attribute{color.FgBlue}
	noteColor    = []color.Attribute{color.FgGreen}
	removedColor = []color.Attribute{color.FgRed}
	addedColor   = []color.Attribute{color.FgGreen}
)

func (p palette) paint(attrs []color.Attribute, s string) string {
	if !p.enabled || s == "" {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

func severityColor(sev diag.Severity) []color.Attribute {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := &prettyPrinter{w: w, fs: fs, opts: opts, pal: palette{enabled: opts.Color}}
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		p.diagnostic(&d)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
	pal  palette
}

func (p *prettyPrinter) location(span source.Span) string {
	path := displayPath(p.fs, span.File, p.opts.PathMode)
	f := p.fs.Get(span.File)
	if !f.HasContent() {
		return path
	}
	start, _ := p.fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

func (p *prettyPrinter) diagnostic(d *diag.Diagnostic) {
	sev := p.pal.paint(severityColor(d.Severity), d.Severity.String())
	fmt.Fprintf(p.w, "%s: %s %s: %s\n", p.pal.paint(pathColor, p.location(d.Primary)), sev, d.Code.ID(), d.Message)
	p.snippet(d.Primary, severityColor(d.Severity))

	if p.opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(p.w, "  %s %s: %s\n", p.pal.paint(noteColor, "note:"), p.location(n.Span), n.Msg)
		}
	}
	if p.opts.ShowFixes {
		for i := range d.Fixes {
			p.fix(i+1, &d.Fixes[i])
		}
	}
}

// snippet prints the context lines and the primary line with its underline.
func (p *prettyPrinter) snippet(span source.Span, attrs []color.Attribute) {
	f := p.fs.Get(span.File)
	if !f.HasContent() {
		return
	}
	start, end := p.fs.Resolve(span)
	first := start.Line
	if ctx := uint32(max(p.opts.Context, 0)); first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	width := len(fmt.Sprint(start.Line))
	gutter := func(label string) string {
		return p.pal.paint(gutterColor, fmt.Sprintf("%*s |", width, label))
	}
	for line := first; line <= start.Line; line++ {
		fmt.Fprintf(p.w, "%s %s\n", gutter(fmt.Sprint(line)), f.GetLine(line))
	}

	text := f.GetLine(start.Line)
	from := min(int(start.Col)-1, len(text))
	to := len(text)
	if end.Line == start.Line {
		to = min(max(int(end.Col)-1, from), len(text))
	}
	marker := "^" + strings.Repeat("~", max(runewidth.StringWidth(text[from:to])-1, 0))
	fmt.Fprintf(p.w, "%s %s%s\n", gutter(""), padding(text[:from]), p.pal.paint(attrs, marker))
}

// padding keeps tabs so the caret lines up with the source line and pads
// everything else by display width.
func padding(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func (p *prettyPrinter) fix(n int, fx *diag.Fix) {
	fmt.Fprintf(p.w, "  %s %s\n", p.pal.paint(noteColor, fmt.Sprintf("fix #%d:", n)), fx.Title)
	for _, edit := range fx.Edits {
		fmt.Fprintf(p.w, "    %s apply=%q\n", p.location(edit.Span), edit.NewText)
		if !p.opts.ShowPreview {
			continue
		}
		preview, err := previewEdit(p.fs, edit)
		if err != nil {
			continue
		}
		fmt.Fprintln(p.w, "    preview:")
		for _, line := range preview.before {
			fmt.Fprintf(p.w, "      %s\n", p.pal.paint(removedColor, "- "+line))
		}
		for _, line := range preview.after {
			fmt.Fprintf(p.w, "      %s\n", p.pal.paint(addedColor, "+ "+line))
		}
	}
}
