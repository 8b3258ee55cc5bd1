package diagfmt

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"mum/internal/diag"
	"mum/internal/source"
)

var errNoText = errors.New("source text is not available")

// fixPreview holds the whole lines an edit touches, before and after it is
// applied.
type fixPreview struct {
	before []string
	after  []string
}

func previewEdit(fs *source.FileSet, edit diag.FixEdit) (fixPreview, error) {
	if fs == nil {
		return fixPreview{}, errNoText
	}
	f := fs.Get(edit.Span.File)
	if !f.HasContent() {
		return fixPreview{}, errNoText
	}
	text := f.Content
	start, end := int(edit.Span.Start), int(edit.Span.End)
	if start > end || end > len(text) {
		return fixPreview{}, fmt.Errorf("edit %s is outside %s", edit.Span, f.Path)
	}

	from := bytes.LastIndexByte(text[:start], '\n') + 1
	to := len(text)
	if i := bytes.IndexByte(text[end:], '\n'); i >= 0 {
		to = end + i
	}
	var after bytes.Buffer
	after.Write(text[from:start])
	after.WriteString(edit.NewText)
	after.Write(text[end:to])
	return fixPreview{before: previewLines(text[from:to]), after: previewLines(after.Bytes())}, nil
}

func previewLines(b []byte) []string {
	s := strings.TrimRight(string(b), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
