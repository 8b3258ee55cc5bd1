// Package driver runs the analysis pipeline over AST documents:
// load, sema, opt and codegen, one file at a time or many in parallel.
package driver

import (
	"fmt"

	"mum/internal/stdlib"
	"mum/internal/trace"
)

// Mode selects how far the pipeline goes.
type Mode uint8

const (
	// ModeCheck stops after semantic analysis.
	ModeCheck Mode = iota
	// ModeBuild also optimizes (unless disabled) and generates JavaScript.
	ModeBuild
)

// Options configure a pipeline run.
type Options struct {
	Mode           Mode
	MaxDiagnostics int
	// NoOptimize skips the optimizer in ModeBuild.
	NoOptimize    bool
	EnableTimings bool
	// Jobs bounds parallel files; 0 means GOMAXPROCS.
	Jobs     int
	Cache    *DiskCache
	Progress ProgressSink
	// Prelude overrides stdlib.Bindings() for every file.
	Prelude []stdlib.Binding
	Tracer  trace.Tracer
}

// fingerprint covers every option that changes cached output.
func (o Options) fingerprint() string {
	return fmt.Sprintf("mode=%d opt=%t", o.Mode, !o.NoOptimize)
}
