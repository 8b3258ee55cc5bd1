package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, true},
		{LevelError, ScopePass, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
		{LevelDebug, Scope(0), false},
		{Level(42), ScopeDriver, false},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Fatalf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	if l, err := ParseLevel(" Debug "); err != nil || l != LevelDebug {
		t.Fatalf("ParseLevel(Debug) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if m, err := ParseMode("BOTH"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode(BOTH) = %v, %v", m, err)
	}
	if _, err := ParseMode(""); err == nil {
		t.Fatalf("empty mode must be rejected")
	}
	if f, err := ParseFormat("json"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat(json) = %v, %v", f, err)
	}
	if _, err := ParseFormat("chrome"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if formatFor(FormatAuto, "out.ndjson") != FormatNDJSON || formatFor(FormatAuto, "-") != FormatText {
		t.Fatalf("auto format must follow the file extension")
	}
}

func TestRingKeepsNewestEvents(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(ring, ScopeNode, name, 0, "")
	}
	if ring.Len() != 2 {
		t.Fatalf("expected 2 events, got %d", ring.Len())
	}
	events := ring.Snapshot()
	if events[0].Name != "b" || events[1].Name != "c" {
		t.Fatalf("unexpected order: %s, %s", events[0].Name, events[1].Name)
	}
}

func TestSpanBeginEnd(t *testing.T) {
	ring := NewRingTracer(16, LevelPhase)
	span := Begin(ring, ScopePass, "sema", 7)
	// file scope is filtered out at phase level
	Begin(ring, ScopeFile, "file", span.ID()).End("")
	span.WithExtra("code", "SEM3005").End("failed")

	events := ring.Snapshot()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	begin, end := events[0], events[1]
	if begin.Kind != KindSpanBegin || end.Kind != KindSpanEnd {
		t.Fatalf("unexpected kinds %s, %s", begin.Kind, end.Kind)
	}
	if begin.ParentID != 7 || end.SpanID != begin.SpanID {
		t.Fatalf("span ids do not match: %+v %+v", begin, end)
	}
	if end.Detail != "failed" || end.Extra["code"] != "SEM3005" {
		t.Fatalf("end event lost detail: %+v", end)
	}
	if end.Dur < 0 || end.Time.Before(begin.Time) || end.Seq <= begin.Seq {
		t.Fatalf("end event is not after begin: %+v %+v", begin, end)
	}
}

func TestChildSpan(t *testing.T) {
	ring := NewRingTracer(16, LevelDetail)
	file := Begin(ring, ScopeFile, "file", 0)
	gen := file.Child(ScopePass, "codegen")
	gen.End("ok")
	file.End("ok")
	events := ring.Snapshot()
	if len(events) != 4 || events[1].ParentID != file.ID() || events[1].Name != "codegen" {
		t.Fatalf("child span not nested: %+v", events)
	}
	if disabled.Child(ScopePass, "x").ID() != 0 {
		t.Fatalf("child of a disabled span must be disabled")
	}
}

func TestNopSpanIsSafe(t *testing.T) {
	span := Begin(Nop, ScopeDriver, "check", 0)
	if span.ID() != 0 {
		t.Fatalf("nop span must have zero id")
	}
	if d := span.WithExtra("k", "v").End(""); d != 0 {
		t.Fatalf("nop span must report zero duration, got %v", d)
	}
	Point(nil, ScopeNode, "scope", 0, "")
}

func TestStreamFormats(t *testing.T) {
	var text bytes.Buffer
	st := NewStreamTracer(&text, LevelDebug, FormatAuto)
	Point(st, ScopeNode, "scope", 1, "block depth=1")
	if text.Len() != 0 {
		t.Fatalf("stream output must be buffered until flush")
	}
	if err := st.Flush(); err != nil {
		t.Fatal(err)
	}
	if line := text.String(); !strings.Contains(line, "• scope (block depth=1)") {
		t.Fatalf("unexpected text line: %q", line)
	}

	var nd bytes.Buffer
	st = NewStreamTracer(&nd, LevelDebug, FormatNDJSON)
	Begin(st, ScopeDriver, "build", 0).WithExtra("files", "2").End("ok")
	if err := st.Close(); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(nd.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var rec struct {
		Kind   string            `json:"kind"`
		Scope  string            `json:"scope"`
		Name   string            `json:"name"`
		Detail string            `json:"detail"`
		Extra  map[string]string `json:"extra"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if rec.Kind != "end" || rec.Scope != "driver" || rec.Name != "build" || rec.Detail != "ok" || rec.Extra["files"] != "2" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestMultiAndContext(t *testing.T) {
	a := NewRingTracer(4, LevelDebug)
	b := NewRingTracer(4, LevelPhase)
	multi := NewMultiTracer(a, nil, Nop, b)
	if multi.Level() != LevelDebug || !multi.Enabled() {
		t.Fatalf("multi level = %s, want debug", multi.Level())
	}
	if r, ok := multi.Ring(); !ok || r != a {
		t.Fatalf("Ring must return the first ring member")
	}

	ctx := WithTracer(context.Background(), multi)
	Point(FromContext(ctx), ScopeNode, "scope", 0, "")
	Point(FromContext(ctx), ScopePass, "pass", 0, "")
	if a.Len() != 2 || b.Len() != 1 {
		t.Fatalf("members must filter on their own level: %d, %d", a.Len(), b.Len())
	}
	if FromContext(context.Background()) != Nop {
		t.Fatalf("missing tracer must fall back to Nop")
	}
	if NewMultiTracer(nil, Nop).Enabled() {
		t.Fatalf("multi tracer without members must be disabled")
	}
}

func TestStartSpan(t *testing.T) {
	ring := NewRingTracer(8, LevelDetail)
	ctx := WithTracer(context.Background(), ring)
	ctx, cmd := StartSpan(ctx, ScopeDriver, "check")
	if CurrentSpan(ctx).SpanID != cmd.ID() {
		t.Fatalf("context must carry the new span")
	}
	inner, file := StartSpan(ctx, ScopeFile, "file")
	file.End("")
	cmd.End("")
	if CurrentSpan(inner).SpanID != file.ID() {
		t.Fatalf("nested context lost the file span")
	}
	if ev := ring.Snapshot()[1]; ev.ParentID != cmd.ID() {
		t.Fatalf("file span parent = %d, want %d", ev.ParentID, cmd.ID())
	}

	// отфильтрованный спан не меняет контекст
	quiet := WithTracer(ctx, NewRingTracer(8, LevelError))
	same, node := StartSpan(quiet, ScopeNode, "scope")
	if node.ID() != 0 || CurrentSpan(same).SpanID != cmd.ID() {
		t.Fatalf("filtered span must keep the parent context")
	}
}

func TestNew(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatalf("off tracer must be disabled")
	}
	tr, err = New(Config{Level: LevelPhase, Mode: ModeRing})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*RingTracer); !ok {
		t.Fatalf("expected ring tracer, got %T", tr)
	}
	var out bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &out})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*MultiTracer); !ok {
		t.Fatalf("expected multi tracer, got %T", tr)
	}
	if _, err := New(Config{Level: LevelPhase, Mode: ModeStream, OutputPath: t.TempDir() + "/missing/x.ndjson"}); err == nil {
		t.Fatalf("expected error for unwritable output")
	}
}
