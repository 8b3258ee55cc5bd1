package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"mum/internal/ast"
	"mum/internal/astio"
	"mum/internal/codegen"
	"mum/internal/diag"
	"mum/internal/observ"
	"mum/internal/opt"
	"mum/internal/project"
	"mum/internal/sema"
	"mum/internal/source"
	"mum/internal/trace"
)

// Result is the outcome of running the pipeline over one document.
type Result struct {
	Path    string
	FileID  source.FileID
	Program *ast.Program
	Bag     *diag.Bag
	// JS is the generated program; empty in ModeCheck or on errors.
	JS     string
	Timing *observ.Report
	// Cached is set when sema/opt/codegen were served from the disk cache.
	// Program is then the undecorated tree.
	Cached bool
}

// Failed reports whether the file has errors.
func (r *Result) Failed() bool {
	return r == nil || r.Bag.HasErrors()
}

// loaded is a document registered in the FileSet, ready for analysis.
type loaded struct {
	file *astio.File
	key  project.Digest
	err  diag.Diagnostic
	bad  bool
}

// load reads and decodes path. Errors become diagnostics on the result.
func load(fs *source.FileSet, path string, opts Options) loaded {
	data, err := os.ReadFile(path)
	if err != nil {
		return loaded{bad: true, err: diag.NewError(diag.IOLoadFileError, source.Span{File: fs.AddPathOnly(path)},
			fmt.Sprintf("failed to read %s: %v", path, err))}
	}
	f, err := astio.LoadBytes(fs, path, data)
	if err != nil {
		code := diag.IOLoadFileError
		var derr *astio.DecodeError
		if errors.As(err, &derr) {
			code = diag.IODecodeError
		}
		return loaded{bad: true, err: diag.NewError(code, source.Span{File: fs.AddPathOnly(path)}, err.Error())}
	}
	return loaded{
		file: f,
		key:  project.Combine(project.Sum(data), project.Sum([]byte(opts.fingerprint()))),
	}
}

// Run executes the pipeline for a single document.
func Run(ctx context.Context, fs *source.FileSet, path string, opts Options) *Result {
	timer := observ.NewTimer()
	idx := timer.Begin("load")
	Emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	ld := load(fs, path, opts)
	timer.End(idx, "")
	return process(ctx, path, ld, timer, opts)
}

func process(ctx context.Context, path string, ld loaded, timer *observ.Timer, opts Options) *Result {
	res := &Result{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}
	start := time.Now()
	span := trace.Begin(tracer, trace.ScopeFile, "file", trace.CurrentSpan(ctx).SpanID).WithExtra("path", path)
	defer func() {
		status := StatusDone
		detail := "ok"
		if res.Failed() {
			status, detail = StatusError, "failed"
		}
		span.End(detail)
		res.Bag.Dedup()
		res.Bag.Sort()
		Emit(opts.Progress, Event{File: path, Status: status, Elapsed: time.Since(start)})
		report := timer.Report()
		res.Timing = &report
		if opts.EnableTimings {
			appendTimingDiagnostic(res.Bag, res.FileID, path, report)
		}
	}()

	if ld.bad {
		res.FileID = ld.err.Primary.File
		res.Bag.Add(ld.err)
		return res
	}
	res.FileID = ld.file.FileID
	res.Program = ld.file.Program

	if opts.Cache != nil {
		var payload DiskPayload
		if ok, err := opts.Cache.Get(ld.key, &payload); err == nil && ok && payload.Schema == diskCacheSchemaVersion {
			restoreDiagnostics(res.Bag, &payload, res.FileID)
			res.JS = payload.JS
			res.Cached = true
			span.WithExtra("cache", "hit")
			return res
		}
	}

	if err := ctx.Err(); err != nil {
		res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: res.FileID}, err.Error()))
		return res
	}

	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})
	if !phase(timer, opts.Progress, path, StageAnalyze, func() bool {
		_, err := sema.Analyze(res.Program, sema.Options{Prelude: opts.Prelude, Tracer: tracer, ParentSpan: span.ID()})
		if err == nil {
			return true
		}
		var serr *sema.Error
		if errors.As(err, &serr) {
			res.Bag.Add(serr.Diagnostic())
		} else {
			res.Bag.Add(diag.NewError(diag.SemaError, source.Span{File: res.FileID}, err.Error()))
		}
		return false
	}) {
		res.store(opts, ld.key)
		return res
	}

	if opts.Mode == ModeBuild {
		if !opts.NoOptimize {
			phase(timer, opts.Progress, path, StageOptimize, func() bool {
				res.Program = opt.Optimize(res.Program, opt.Options{Reporter: reporter, Tracer: tracer, ParentSpan: span.ID()})
				return true
			})
		}
		phase(timer, opts.Progress, path, StageGenerate, func() bool {
			gen := span.Child(trace.ScopePass, "codegen")
			js, err := codegen.Generate(res.Program)
			if err != nil {
				gen.End("failed")
				res.Bag.Add(diag.NewError(diag.SemaError, source.Span{File: res.FileID}, err.Error()))
				return false
			}
			gen.WithExtra("bytes", strconv.Itoa(len(js))).End("ok")
			res.JS = js
			return true
		})
	}
	res.store(opts, ld.key)
	return res
}

// phase times f and reports it as a progress stage.
func phase(timer *observ.Timer, sink ProgressSink, path string, stage Stage, f func() bool) bool {
	idx := timer.Begin(string(stage))
	Emit(sink, Event{File: path, Stage: stage, Status: StatusWorking})
	start := time.Now()
	ok := f()
	note := ""
	if !ok {
		note = "failed"
	}
	timer.End(idx, note)
	if !ok {
		Emit(sink, Event{File: path, Stage: stage, Status: StatusError, Elapsed: time.Since(start)})
	}
	return ok
}

func (r *Result) store(opts Options, key project.Digest) {
	if opts.Cache == nil {
		return
	}
	// best effort: a failed write only costs a recompute
	_ = opts.Cache.Put(key, resultToDiskPayload(r))
}
