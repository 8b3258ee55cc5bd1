package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"mum/internal/driver"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] <file|directory>...",
	Short: "Analyze, optimize and generate JavaScript",
	Long:  `Build writes one .js file per AST document into the output directory`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("out", "", "output directory (default: [build].out from mum.toml, else next to each input)")
	buildCmd.Flags().Bool("no-opt", false, "skip the optimizer")
	buildCmd.Flags().Bool("cache", false, "reuse results from the disk cache")
	buildCmd.Flags().Bool("drop-cache", false, "clear the disk cache before building")
	buildCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
	buildCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	buildCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	buildCmd.Flags().Bool("warnings-as-errors", false, "exit with an error when optimizer warnings are reported")
}

func runBuild(cmd *cobra.Command, args []string) error {
	outFlag, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	noOpt, err := cmd.Flags().GetBool("no-opt")
	if err != nil {
		return fmt.Errorf("failed to get no-opt flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	dropCache, err := cmd.Flags().GetBool("drop-cache")
	if err != nil {
		return fmt.Errorf("failed to get drop-cache flag: %w", err)
	}
	strict, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readOutputFormat(formatStr)
	if err != nil {
		return err
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiStr)
	if err != nil {
		return err
	}

	s, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}
	cleanup, err := setupInstrumentation(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	files, err := driver.ExpandInputs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no AST documents found in %v", args)
	}

	opts := s.driverOptions(driver.ModeBuild)
	opts.NoOptimize = noOpt || !s.manifest.Optimize()
	if useCache || dropCache {
		cache, err := driver.OpenDiskCache("mum")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		if dropCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear disk cache: %w", err)
			}
		}
		if useCache {
			opts.Cache = cache
		}
	}

	outDir := outFlag
	if outDir == "" {
		outDir = s.manifest.OutDir()
	}

	var written []string
	write := func(results []*driver.Result, sink driver.ProgressSink) {
		for _, res := range results {
			if res == nil || res.Failed() {
				continue
			}
			dir := outDir
			if dir == "" {
				dir = filepath.Dir(res.Path)
			}
			start := time.Now()
			driver.Emit(sink, driver.Event{File: res.Path, Stage: driver.StageWrite, Status: driver.StatusWorking})
			out, ok := driver.WriteJS(res, dir)
			status := driver.StatusDone
			if !ok {
				status = driver.StatusError
			} else {
				written = append(written, out)
			}
			driver.Emit(sink, driver.Event{File: res.Path, Stage: driver.StageWrite, Status: status, Elapsed: time.Since(start)})
		}
	}

	useUI := format != formatJSON && shouldUseTUI(mode, len(files))
	fs, results, err := runFiles(cmd.Context(), "mum build", files, opts, useUI, write)
	if err != nil {
		return err
	}

	if err := printDiagnostics(cmd.OutOrStdout(), fs, results, format, s); err != nil {
		return err
	}
	if s.timings && format != formatJSON {
		printTimings(cmd.ErrOrStderr(), results)
	}
	if !s.quiet && format != formatJSON {
		for _, out := range written {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
		}
		printSummary(cmd.ErrOrStderr(), "built", results)
	}
	if _, _, _, failed := summarize(results); failed > 0 {
		return errFailed
	}
	if strict && anyWarnings(results) {
		return errFailed
	}
	return nil
}
