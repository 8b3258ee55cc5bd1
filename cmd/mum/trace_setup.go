package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mum/internal/trace"
)

// setupTracing builds the tracer the trace flags ask for, opens the command
// span and stores both in the command context. The cleanup closes the span
// and the tracer; a ring-only tracer is printed to stderr first.
func setupTracing(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()
	var levelStr, modeStr, formatStr, output string
	for name, dst := range map[string]*string{
		"trace":        &levelStr,
		"trace-mode":   &modeStr,
		"trace-format": &formatStr,
		"trace-output": &output,
	} {
		v, err := flags.GetString(name)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		*dst = v
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}

	tracer, err := trace.New(trace.Config{Level: level, Mode: mode, Format: format, OutputPath: output})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	ctx, span := trace.StartSpan(trace.WithTracer(cmd.Context(), tracer), trace.ScopeDriver, cmd.Name())
	cmd.SetContext(ctx)

	stderr := cmd.ErrOrStderr()
	return func() {
		span.End("")
		if ring, ok := tracer.(*trace.RingTracer); ok {
			if err := ring.Dump(stderr, trace.FormatText); err != nil {
				fmt.Fprintf(stderr, "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(stderr, "trace: close error: %v\n", err)
		}
	}, nil
}
