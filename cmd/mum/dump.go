package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mum/internal/astio"
	"mum/internal/driver"
	"mum/internal/source"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] <file>",
	Short: "Print the analyzed tree of an AST document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().String("format", "tree", "output format (tree|json|yaml)")
	dumpCmd.Flags().Bool("opt", false, "dump the optimized tree")
}

func runDump(cmd *cobra.Command, args []string) error {
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := astio.ParseDumpFormat(formatStr)
	if err != nil {
		return err
	}
	optimize, err := cmd.Flags().GetBool("opt")
	if err != nil {
		return fmt.Errorf("failed to get opt flag: %w", err)
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

	opts := s.driverOptions(driver.ModeCheck)
	if optimize {
		opts.Mode = driver.ModeBuild
	}
	fs := source.NewFileSet()
	res := driver.Run(cmd.Context(), fs, args[0], opts)
	if res.Failed() {
		if err := printDiagnostics(cmd.ErrOrStderr(), fs, []*driver.Result{res}, formatPretty, s); err != nil {
			return err
		}
		return errFailed
	}
	return astio.Dump(cmd.OutOrStdout(), res.Program, format)
}
