package diag

import (
	"testing"

	"mum/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		b.Add(NewError(SemaTypeMismatch, source.Span{Start: uint32(i)}, "x"))
	}
	if b.Len() != 2 {
		t.Fatalf("expected limit of 2, got %d", b.Len())
	}
	unlimited := NewBag(0)
	for i := 0; i < 100; i++ {
		unlimited.Add(New(SevInfo, ObsTimings, source.Span{}, "t"))
	}
	if unlimited.Len() != 100 {
		t.Fatalf("zero limit should mean unlimited, got %d", unlimited.Len())
	}
	if unlimited.HasErrors() || unlimited.HasWarnings() {
		t.Fatalf("info diagnostics are neither errors nor warnings")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: b})
	ReportWarning(r, OptDeadBranch, source.Span{Start: 5, End: 6}, "dead").Emit()
	ReportError(r, SemaTypeMismatch, source.Span{Start: 5, End: 6}, "bad").WithNote(source.Span{}, "here").Emit()
	ReportError(r, SemaTypeMismatch, source.Span{Start: 5, End: 6}, "bad").Emit()
	ReportError(r, SemaUnknownType, source.Span{Start: 1, End: 2}, "unknown").Emit()

	if b.Len() != 3 {
		t.Fatalf("dedup reporter should drop the repeated error, got %d", b.Len())
	}
	b.Sort()
	items := b.Items()
	if items[0].Code != SemaUnknownType || items[1].Code != SemaTypeMismatch || items[2].Code != OptDeadBranch {
		t.Fatalf("unexpected order: %v, %v, %v", items[0].Code, items[1].Code, items[2].Code)
	}
	if len(items[1].Notes) != 1 {
		t.Fatalf("note lost")
	}
	if !b.HasErrors() {
		t.Fatalf("expected errors")
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		SemaDuplicateDeclaration: "SEM3002",
		IODecodeError:            "IO4002",
		ProjInvalidManifest:      "PRJ5001",
		ObsTimings:               "OBS6001",
		OptDivisionByZero:        "OPT7001",
		UnknownCode:              "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Fatalf("%d: got %s want %s", code, got, want)
		}
	}
	if Code(3999).Title() != "Unknown error" {
		t.Fatalf("unknown codes should fall back to the generic title")
	}
}

func TestBagDroppedAndForce(t *testing.T) {
	b := NewBag(1)
	b.Add(NewError(SemaTypeMismatch, source.Span{}, "first"))
	if b.Add(NewError(SemaTypeMismatch, source.Span{Start: 1}, "second")) {
		t.Fatalf("second entry must be refused")
	}
	b.Force(New(SevInfo, ObsTimings, source.Span{}, "timings"))
	if b.Len() != 2 || b.Dropped() != 1 {
		t.Fatalf("len=%d dropped=%d, want 2 and 1", b.Len(), b.Dropped())
	}

	other := NewBag(0)
	other.Add(New(SevWarning, OptDivisionByZero, source.Span{}, "zero"))
	b.Merge(other)
	if b.Len() != 3 || !b.HasWarnings() {
		t.Fatalf("merge must ignore the limit")
	}
}

func TestBagDedupKeepsFirst(t *testing.T) {
	b := NewBag(0)
	sp := source.Span{Start: 3, End: 4}
	b.Add(NewError(SemaTypeMismatch, sp, "bad").WithNote(sp, "first"))
	b.Add(NewError(SemaTypeMismatch, sp, "bad").WithNote(sp, "second"))
	b.Add(NewError(SemaTypeMismatch, sp, "other message"))
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("expected 2 entries after dedup, got %d", b.Len())
	}
	if b.Items()[0].Notes[0].Msg != "first" {
		t.Fatalf("dedup must keep the first report")
	}
}

func TestWithNoteDoesNotAlias(t *testing.T) {
	base := NewError(SemaTypeMismatch, source.Span{}, "x").WithNote(source.Span{}, "a")
	left := base.WithNote(source.Span{}, "left")
	right := base.WithNote(source.Span{}, "right")
	if left.Notes[1].Msg != "left" || right.Notes[1].Msg != "right" || len(base.Notes) != 1 {
		t.Fatalf("notes alias between copies: %v %v", left.Notes, right.Notes)
	}
}
