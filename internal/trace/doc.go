// Package trace records where the mum pipeline spends its time.
//
// Each command opens a driver span. Every input document gets a file span,
// and sema, opt and codegen open pass spans beneath it. At debug level the
// analyzer adds a point event for every scope it opens.
//
//	mum check --trace=phase prog.ast.json
//	mum build --trace=debug --trace-output=run.ndjson prog.ast.json
//	mum build --trace=detail --trace-mode=ring prog.ast.json
//
// Stream mode writes events to stderr or a file as they happen. Ring mode
// keeps the newest events in memory and prints them when the command ends.
// The format follows the output file extension unless --trace-format says
// otherwise.
//
// Passes receive their parent span explicitly; the driver and the CLI
// pass it through the context:
//
//	ctx, span := trace.StartSpan(ctx, trace.ScopeFile, "file")
//	defer span.End("")
package trace
