package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mum/internal/driver"
	"mum/internal/project"
)

// settings are the resolved flag and manifest values shared by commands.
type settings struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	jobs           int
	manifest       *project.Manifest
}

// loadSettings reads persistent flags and the mum.toml found above the first
// input. Explicit flags win over manifest values.
func loadSettings(cmd *cobra.Command, inputs []string) (*settings, error) {
	root := cmd.Root().PersistentFlags()

	useColor, err := applyColor(cmd)
	if err != nil {
		return nil, err
	}
	quiet, err := root.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := root.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := root.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	s := &settings{color: useColor, quiet: quiet, timings: timings, maxDiagnostics: maxDiagnostics}

	manifest, err := findManifest(inputs)
	if err != nil {
		return nil, err
	}
	s.manifest = manifest
	if manifest != nil {
		chk := manifest.Config.Check
		if !root.Changed("max-diagnostics") && chk.MaxDiagnostics > 0 {
			s.maxDiagnostics = chk.MaxDiagnostics
		}
		s.jobs = chk.Jobs
	}
	if flag := cmd.Flags().Lookup("jobs"); flag != nil && flag.Changed {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return nil, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		s.jobs = jobs
	}
	return s, nil
}

// applyColor resolves --color and configures fatih/color accordingly.
func applyColor(cmd *cobra.Command) (bool, error) {
	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	var on bool
	switch strings.ToLower(colorMode) {
	case "on":
		on = true
	case "off":
		on = false
	case "auto":
		on = isTerminal(os.Stdout)
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorMode)
	}
	color.NoColor = !on
	return on, nil
}

// findManifest looks for mum.toml starting at the first input's directory.
func findManifest(inputs []string) (*project.Manifest, error) {
	start := "."
	if len(inputs) > 0 {
		start = inputs[0]
		if st, err := os.Stat(start); err != nil || !st.IsDir() {
			start = filepath.Dir(start)
		}
	}
	manifest, ok, err := project.LoadManifest(start)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return manifest, nil
}

// driverOptions converts settings into pipeline options.
func (s *settings) driverOptions(mode driver.Mode) driver.Options {
	return driver.Options{
		Mode:           mode,
		MaxDiagnostics: s.maxDiagnostics,
		EnableTimings:  s.timings,
		Jobs:           s.jobs,
	}
}
