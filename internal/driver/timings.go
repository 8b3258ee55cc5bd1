package driver

import (
	"encoding/json"
	"fmt"

	"mum/internal/diag"
	"mum/internal/observ"
	"mum/internal/source"
)

// timingPayload is the machine-readable note of an OBS6001 diagnostic.
type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic records the phase report of one document. The
// entry ignores the bag limit.
func appendTimingDiagnostic(bag *diag.Bag, file source.FileID, path string, report observ.Report) {
	payload := timingPayload{Kind: "pipeline", Path: path, TotalMS: report.TotalMS, Phases: report.Phases}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	at := source.Span{File: file}
	msg := fmt.Sprintf("timings (%s): total %.2f ms: %s", payload.Kind, payload.TotalMS, path)
	bag.Force(diag.New(diag.SevInfo, diag.ObsTimings, at, msg).WithNote(at, string(data)))
}
