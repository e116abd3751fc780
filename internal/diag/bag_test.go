package diag

import (
	"testing"

	"cfront/internal/source"
)

func pos(file string, line, col uint32) source.Pos {
	return source.Pos{File: file, Line: line, Col: col}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewWarning(SrcCRLF, pos("a.c", 1, 0), "one")) {
		t.Fatal("first add rejected")
	}
	if !b.Add(NewWarning(SrcCRLF, pos("a.c", 2, 0), "two")) {
		t.Fatal("second add rejected")
	}
	if b.Add(NewWarning(SrcCRLF, pos("a.c", 3, 0), "three")) {
		t.Error("add beyond limit must be rejected")
	}
	if b.Len() != 2 {
		t.Errorf("Len = %d, want 2", b.Len())
	}
}

func TestBagSortOrder(t *testing.T) {
	b := NewBag(8)
	b.Add(NewWarning(SrcLoneCR, pos("b.c", 1, 0), "later file"))
	b.Add(NewWarning(SrcLoneCR, pos("a.c", 2, 4), "later line"))
	b.Add(New(SevInfo, SrcLineSplice, pos("a.c", 1, 2), "info"))
	b.Add(NewError(SrcReadFailed, pos("a.c", 1, 2), "error wins at same spot"))
	b.Sort()

	items := b.Items()
	if items[0].Severity != SevError {
		t.Errorf("expected error first at shared position, got %v", items[0].Severity)
	}
	if items[1].Code != SrcLineSplice {
		t.Errorf("expected info second, got %v", items[1].Code)
	}
	if items[2].Pos.Line != 2 {
		t.Errorf("expected a.c:2 third, got %v", items[2].Pos)
	}
	if items[3].Pos.File != "b.c" {
		t.Errorf("expected b.c last, got %v", items[3].Pos)
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(NewWarning(SrcCRLF, pos("a.c", 1, 0), "x"))
	b := NewBag(1)
	b.Add(NewWarning(SrcCRLF, pos("b.c", 1, 0), "y"))

	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("Len after merge = %d, want 2", a.Len())
	}
	// the limit grew only far enough to hold the merged contents
	if a.Add(NewWarning(SrcCRLF, pos("c.c", 1, 0), "z")) {
		t.Error("add beyond the merged limit must be rejected")
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(8)
	d := NewWarning(SrcNoFinalNewline, pos("a.c", 9, 0), "no final newline")
	b.Add(d)
	b.Add(d)
	b.Add(NewWarning(SrcNoFinalNewline, pos("a.c", 10, 0), "no final newline"))
	b.Dedup()
	if b.Len() != 2 {
		t.Errorf("Len after dedup = %d, want 2", b.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(8)
	r := NewDedupReporter(BagReporter{Bag: bag})
	p := pos("a.c", 3, 1)
	r.Report(SrcLoneCR, SevWarning, p, "lone CR", nil)
	r.Report(SrcLoneCR, SevWarning, p, "lone CR", nil)
	r.Report(SrcLoneCR, SevWarning, pos("a.c", 4, 1), "lone CR", nil)
	if bag.Len() != 2 {
		t.Errorf("Len = %d, want 2", bag.Len())
	}
}

func TestHasErrorsAndWarnings(t *testing.T) {
	b := NewBag(4)
	if b.HasErrors() || b.HasWarnings() {
		t.Fatal("empty bag must have no findings")
	}
	b.Add(New(SevInfo, SrcInfo, pos("a.c", 1, 0), "fyi"))
	if b.HasWarnings() {
		t.Error("info alone is not a warning")
	}
	b.Add(NewWarning(SrcCRLF, pos("a.c", 1, 0), "crlf"))
	if !b.HasWarnings() || b.HasErrors() {
		t.Error("warning present, no errors expected")
	}
	b.Add(NewError(SrcReadFailed, pos("a.c", 1, 0), "boom"))
	if !b.HasErrors() {
		t.Error("error not detected")
	}
}
