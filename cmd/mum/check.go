package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mum/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory>...",
	Short: "Analyze serialized ASTs and report diagnostics",
	Long:  `Run semantic analysis on AST documents (*.json, *.mpk, *.msgpack) or on every document in a directory`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
}

// runCheck analyzes every input and exits non-zero when any file has errors.
func runCheck(cmd *cobra.Command, args []string) error {
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

	// JSON на stdout не смешиваем с прогрессом
	useUI := format != formatJSON && shouldUseTUI(mode, len(files))
	fs, results, err := runFiles(cmd.Context(), "mum check", files, s.driverOptions(driver.ModeCheck), useUI, nil)
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
		printSummary(cmd.ErrOrStderr(), "checked", results)
	}
	if _, _, _, failed := summarize(results); failed > 0 {
		return errFailed
	}
	return nil
}
