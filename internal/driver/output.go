package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mum/internal/diag"
	"mum/internal/source"
)

// OutputPath maps an input document to its generated file in outDir.
func OutputPath(input, outDir string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, base+".js")
}

// WriteJS writes the generated program of r into outDir. Failed results and
// results without output are skipped. A write failure is added to r.Bag.
func WriteJS(r *Result, outDir string) (string, bool) {
	if r == nil || r.Failed() || r.JS == "" {
		return "", false
	}
	out := OutputPath(r.Path, outDir)
	err := os.MkdirAll(outDir, 0o755)
	if err == nil {
		err = os.WriteFile(out, []byte(r.JS), 0o600)
	}
	if err != nil {
		r.Bag.Add(diag.NewError(diag.IOWriteError, source.Span{File: r.FileID},
			fmt.Sprintf("failed to write %s: %v", out, err)))
		return "", false
	}
	return out, true
}
