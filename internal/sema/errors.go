package sema

import (
	"fmt"

	"mum/internal/diag"
	"mum/internal/source"
)

// Error is a semantic violation. Analysis stops at the first one.
type Error struct {
	Code    diag.Code
	Message string
	Span    source.Span
	// Name is the offending identifier, operator or kind when there is one.
	Name  string
	Notes []diag.Note
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Message)
}

// Diagnostic converts the error into a renderable record.
func (e *Error) Diagnostic() diag.Diagnostic {
	d := diag.NewError(e.Code, e.Span, e.Message)
	for _, n := range e.Notes {
		d = d.WithNote(n.Span, n.Msg)
	}
	return d
}

func errorf(code diag.Code, span source.Span, name, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
		Name:    name,
	}
}

func (e *Error) withNote(span source.Span, msg string) *Error {
	e.Notes = append(e.Notes, diag.Note{Span: span, Msg: msg})
	return e
}
