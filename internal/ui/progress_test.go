package ui

import (
	"strings"
	"testing"
	"time"

	"mum/internal/driver"
)

func TestApplyEventTracksFiles(t *testing.T) {
	m := NewProgressModel("build", []string{"a.json", "b.json"}, nil).(*progressModel)

	steps := []struct {
		ev     driver.Event
		file   int
		status string
	}{
		{driver.Event{File: "a.json", Stage: driver.StageAnalyze, Status: driver.StatusWorking}, 0, "checking"},
		{driver.Event{File: "b.json", Stage: driver.StageGenerate, Status: driver.StatusWorking}, 1, "generating"},
		{driver.Event{File: "a.json", Status: driver.StatusError, Elapsed: 3 * time.Millisecond}, 0, "error"},
		{driver.Event{File: "b.json", Status: driver.StatusDone}, 1, "done"},
		{driver.Event{File: "b.json", Stage: driver.StageWrite, Status: driver.StatusDone}, 1, "written"},
	}
	for i, st := range steps {
		m.applyEvent(st.ev)
		if got := m.items[st.file].status; got != st.status {
			t.Fatalf("step %d: status = %q, want %q", i, got, st.status)
		}
	}
	if m.percent() != 1.0 {
		t.Fatalf("percent = %v, want 1", m.percent())
	}
	if m.items[0].elapsed != "3ms" {
		t.Fatalf("elapsed = %q", m.items[0].elapsed)
	}
}

func TestApplyEventIgnoresUnknownFiles(t *testing.T) {
	m := NewProgressModel("check", []string{"a.json"}, nil).(*progressModel)
	if cmd := m.applyEvent(driver.Event{File: "other.json", Status: driver.StatusDone}); cmd != nil {
		t.Fatalf("unexpected command for unknown file")
	}
	if m.items[0].status != "queued" {
		t.Fatalf("status = %q", m.items[0].status)
	}
}

func TestViewListsFiles(t *testing.T) {
	m := NewProgressModel("check", []string{"a.json", "b.json"}, nil).(*progressModel)
	m.Update(doneMsg{})
	view := m.View()
	if !strings.Contains(view, "done: check") {
		t.Fatalf("missing title in view:\n%s", view)
	}
	for _, name := range []string{"a.json", "b.json"} {
		if !strings.Contains(view, name) {
			t.Fatalf("missing %s in view:\n%s", name, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"averylongname", 8, "avery..."},
		{"abcdef", 2, "ab"},
		{"日本語ファイル", 8, "日本..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
