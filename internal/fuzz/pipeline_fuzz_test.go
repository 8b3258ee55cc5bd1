package fuzztests

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"mum/internal/astio"
	"mum/internal/codegen"
	"mum/internal/diag"
	"mum/internal/diagfmt"
	"mum/internal/opt"
	"mum/internal/sema"
	"mum/internal/source"
	"mum/internal/testkit"
)

const maxFuzzInput = 1 << 16 // 64 KiB

// pipelineTimeout bounds one input; longer runs indicate a loop.
const pipelineTimeout = 5 * time.Second

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

// runPipeline decodes input and, when it is a valid document, runs every
// later stage. Rejected input is fine; a broken invariant is returned.
func runPipeline(name string, input []byte) error {
	fs := source.NewFileSet()
	f, err := astio.LoadBytes(fs, name, input)
	if err != nil {
		return nil
	}
	if err := testkit.CheckSpanInvariants(f.Program, fs.Get(f.FileID)); err != nil {
		return fmt.Errorf("decoded tree breaks span invariants: %w", err)
	}

	bag := diag.NewBag(64)
	if _, err := sema.Analyze(f.Program, sema.Options{}); err != nil {
		var serr *sema.Error
		if errors.As(err, &serr) {
			bag.Add(serr.Diagnostic())
		}
		// rendering must cope with any span the analyzer reports
		diagfmt.Pretty(io.Discard, bag, fs, diagfmt.PrettyOpts{Context: 1, ShowNotes: true})
		return nil
	}
	prog := opt.Optimize(f.Program, opt.Options{Reporter: diag.BagReporter{Bag: bag}})
	if _, err := codegen.Generate(prog); err != nil {
		return fmt.Errorf("codegen failed on an analyzed tree: %w", err)
	}
	return nil
}

func FuzzDecodeJSON(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if err := runPipeline("fuzz.json", clampInput(input)); err != nil {
			t.Fatal(err)
		}
	})
}

func FuzzDecodeMsgpack(f *testing.F) {
	msgpackSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if err := runPipeline("fuzz.mpk", clampInput(input)); err != nil {
			t.Fatal(err)
		}
	})
}

// FuzzPipelineNoHang checks that no stage loops forever.
func FuzzPipelineNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		ctx, cancel := context.WithTimeout(context.Background(), pipelineTimeout)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- runPipeline("fuzz.json", input)
		}()

		select {
		case err := <-done:
			if err != nil {
				t.Fatal(err)
			}
		case <-ctx.Done():
			t.Fatalf("pipeline timed out after %v (possible infinite loop), input length: %d", pipelineTimeout, len(input))
		}
	})
}
