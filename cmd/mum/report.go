package main

import (
	"fmt"
	"io"
	"strings"

	"mum/internal/diag"
	"mum/internal/diagfmt"
	"mum/internal/driver"
	"mum/internal/observ"
	"mum/internal/source"
)

type outputFormat string

const (
	formatPretty outputFormat = "pretty"
	formatShort  outputFormat = "short"
	formatJSON   outputFormat = "json"
)

func readOutputFormat(value string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(value)); f {
	case formatPretty, formatShort, formatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected pretty|short|json)", value)
	}
}

// withoutTimings drops OBS6001 entries; the timing table replaces them in
// human-readable output.
func withoutTimings(bag *diag.Bag) *diag.Bag {
	out := diag.NewBag(0)
	for _, d := range bag.Items() {
		if d.Code != diag.ObsTimings {
			out.Add(d)
		}
	}
	return out
}

// printDiagnostics renders the diagnostics of every result in input order.
// JSON output combines all files into one document.
func printDiagnostics(w io.Writer, fs *source.FileSet, results []*driver.Result, format outputFormat, s *settings) error {
	switch format {
	case formatJSON:
		all := diag.NewBag(0)
		for _, res := range results {
			if res != nil {
				all.Merge(res.Bag)
			}
		}
		return diagfmt.JSON(w, all, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			IncludeFixes:     true,
			IncludePreviews:  true,
		})
	case formatShort:
		for _, res := range results {
			if res == nil {
				continue
			}
			out := diag.FormatShortDiagnostics(withoutTimings(res.Bag).Items(), fs, true)
			if out == "" {
				continue
			}
			if !strings.HasSuffix(out, "\n") {
				out += "\n"
			}
			if _, err := io.WriteString(w, out); err != nil {
				return err
			}
		}
		return nil
	default:
		for _, res := range results {
			if res == nil {
				continue
			}
			diagfmt.Pretty(w, withoutTimings(res.Bag), fs, diagfmt.PrettyOpts{
				Color:     s.color,
				Context:   1,
				ShowNotes: true,
				ShowFixes: true,
			})
		}
		return nil
	}
}

// printTimings renders the phase table of all results.
func printTimings(w io.Writer, results []*driver.Result) {
	reports := make(map[string]observ.Report, len(results))
	order := make([]string, 0, len(results))
	for _, res := range results {
		if res == nil || res.Timing == nil {
			continue
		}
		reports[res.Path] = *res.Timing
		order = append(order, res.Path)
	}
	if len(order) == 0 {
		return
	}
	fmt.Fprintln(w, observ.Table(reports, order))
}

// summarize counts errors and warnings over all results.
func summarize(results []*driver.Result) (files, errors, warnings, failed int) {
	for _, res := range results {
		if res == nil {
			continue
		}
		files++
		if res.Failed() {
			failed++
		}
		for _, d := range res.Bag.Items() {
			switch {
			case d.Severity >= diag.SevError:
				errors++
			case d.Severity == diag.SevWarning:
				warnings++
			}
		}
	}
	return files, errors, warnings, failed
}

func printSummary(w io.Writer, verb string, results []*driver.Result) {
	files, errs, warns, _ := summarize(results)
	fmt.Fprintf(w, "%s %d file(s): %d error(s), %d warning(s)", verb, files, errs, warns)
	dropped := 0
	for _, res := range results {
		if res != nil {
			dropped += res.Bag.Dropped()
		}
	}
	if dropped > 0 {
		fmt.Fprintf(w, " (%d more over --max-diagnostics)", dropped)
	}
	fmt.Fprintln(w)
}

func anyWarnings(results []*driver.Result) bool {
	for _, res := range results {
		if res != nil && res.Bag.HasWarnings() {
			return true
		}
	}
	return false
}
