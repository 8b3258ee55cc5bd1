// Package diag defines the diagnostic model shared by all pipeline phases.
//
// Diagnostic is the central record: Severity, Code (numeric, rendered as
// SEM3005, IO4002, ...), Message, Primary span, optional Notes and Fixes.
// Producers emit through a Reporter (usually BagReporter, optionally behind a
// DedupReporter) or build records directly with New/NewError.
//
// Package diag does no formatting beyond the single-line short and golden forms;
// rendering lives in internal/diagfmt, collection per file in internal/driver.
//
// The analyzer itself is fail-fast and returns *sema.Error; the driver turns
// that error into a Diagnostic. Warnings from the optimizer go through a
// Reporter.
package diag
