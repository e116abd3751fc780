package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"cfront/internal/diag"
)

func TestScanContentCounts(t *testing.T) {
	r := scanContent("t.c", []byte("a\r\nb\rc\\\nd"), 100)

	if r.CRLF != 1 {
		t.Errorf("CRLF = %d, want 1", r.CRLF)
	}
	if r.LoneCR != 1 {
		t.Errorf("LoneCR = %d, want 1", r.LoneCR)
	}
	if r.Splices != 1 {
		t.Errorf("Splices = %d, want 1", r.Splices)
	}
	if r.FinalNewline {
		t.Error("FinalNewline = true, want false")
	}
	if r.PhysicalLines != 4 {
		t.Errorf("PhysicalLines = %d, want 4", r.PhysicalLines)
	}
	// canonical view is "a\nb\nc\\\nd": splice joins the last two
	// physical lines, EOF regularization closes the file
	if r.LogicalLines != 3 {
		t.Errorf("LogicalLines = %d, want 3", r.LogicalLines)
	}
	if len(r.Findings) != 4 {
		t.Errorf("Findings = %d, want 4", len(r.Findings))
	}
	if r.Clean() {
		t.Error("Clean() = true for a dirty file")
	}
}

func TestScanContentCleanFile(t *testing.T) {
	r := scanContent("t.c", []byte("int x;\nint y;\n"), 100)
	if !r.Clean() {
		t.Errorf("Clean() = false: %+v", r)
	}
	if r.PhysicalLines != 2 || r.LogicalLines != 2 {
		t.Errorf("lines = %d/%d, want 2/2", r.PhysicalLines, r.LogicalLines)
	}
	if len(r.Findings) != 0 {
		t.Errorf("Findings = %v, want none", r.Findings)
	}
}

func TestScanContentBOM(t *testing.T) {
	r := scanContent("t.c", []byte("\xEF\xBB\xBFint x;\n"), 100)
	if !r.BOM {
		t.Error("BOM not detected")
	}
	if len(r.Findings) == 0 || r.Findings[0].Code != diag.SrcByteOrderMark {
		t.Errorf("expected BOM finding first, got %v", r.Findings)
	}
}

func TestScanContentEmpty(t *testing.T) {
	r := scanContent("t.c", nil, 100)
	if r.PhysicalLines != 0 {
		t.Errorf("PhysicalLines = %d, want 0", r.PhysicalLines)
	}
	// пустой файл всё равно даёт один синтетический \n
	if r.LogicalLines != 1 {
		t.Errorf("LogicalLines = %d, want 1", r.LogicalLines)
	}
	if len(r.Findings) != 0 {
		t.Errorf("empty file should stay quiet, got %v", r.Findings)
	}
}

func TestScanContentOverlongLine(t *testing.T) {
	content := append(bytes.Repeat([]byte{'x'}, maxPhysicalLineBytes+10), '\n')
	r := scanContent("t.c", content, 100)
	var hits int
	for _, d := range r.Findings {
		if d.Code == diag.SrcLineTooLong {
			hits++
		}
	}
	if hits != 1 {
		t.Errorf("expected exactly one overlong-line finding, got %d", hits)
	}
	if r.Clean() != true {
		t.Error("overlong line is a note, not a repair")
	}
}

func TestScanContentDiagnosticLimit(t *testing.T) {
	content := []byte("a\r\nb\r\nc\r\nd\r\n")
	r := scanContent("t.c", content, 2)
	if r.CRLF != 4 {
		t.Errorf("CRLF = %d, want 4 (counts ignore the limit)", r.CRLF)
	}
	if len(r.Findings) != 2 {
		t.Errorf("Findings = %d, want capped at 2", len(r.Findings))
	}
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestScanDir(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"main.c":          "int main(void) { return 0; }\n",
		"include/util.h":  "#define X 1\r\n",
		"notes.txt":       "not a source file\r\n",
		"include/other.c": "no newline",
	})

	results, bag, err := ScanDir(context.Background(), dir, ScanOptions{Jobs: 2})
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("scanned %d files, want 3 (txt must be skipped)", len(results))
	}
	// results follow the sorted file list
	for i := 1; i < len(results); i++ {
		if results[i-1].Path > results[i].Path {
			t.Errorf("results out of order: %q before %q", results[i-1].Path, results[i].Path)
		}
	}
	// util.h has a CRLF, other.c misses its final newline
	if bag.Len() != 2 {
		t.Errorf("merged bag has %d findings, want 2: %+v", bag.Len(), bag.Items())
	}
}

func TestScanDirUsesCache(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.c": "x\r\n"})
	cache, err := NewDiskCache(filepath.Join(dir, ".cache"))
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}
	opts := ScanOptions{Cache: cache}

	first, _, err := ScanDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("first ScanDir: %v", err)
	}
	if first[0].FromCache {
		t.Error("first scan must not come from cache")
	}

	second, bag, err := ScanDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("second ScanDir: %v", err)
	}
	if !second[0].FromCache {
		t.Error("second scan must come from cache")
	}
	// findings survive the cache round-trip
	if bag.Len() != 1 || bag.Items()[0].Code != diag.SrcCRLF {
		t.Errorf("cached findings lost: %+v", bag.Items())
	}
}

func TestScanDirLargeTree(t *testing.T) {
	// 700 файлов × лимит 100 переполняют uint16-ёмкость Bag; слитый
	// лимит должен зажиматься, а не падать
	dir := t.TempDir()
	for i := 0; i < 700; i++ {
		name := filepath.Join(dir, fmt.Sprintf("f%03d.c", i))
		if err := os.WriteFile(name, []byte("x\r\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	results, bag, err := ScanDir(context.Background(), dir, ScanOptions{MaxDiagnostics: 100})
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if len(results) != 700 {
		t.Fatalf("scanned %d files, want 700", len(results))
	}
	if bag.Len() != 700 {
		t.Errorf("merged bag has %d findings, want 700", bag.Len())
	}
}

func TestScanDirOversizedDiagnosticLimit(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.c": "x\r\n"})
	_, bag, err := ScanDir(context.Background(), dir, ScanOptions{MaxDiagnostics: 1 << 20})
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if bag.Len() != 1 {
		t.Errorf("merged bag has %d findings, want 1", bag.Len())
	}
}

func TestScanDirEmpty(t *testing.T) {
	results, bag, err := ScanDir(context.Background(), t.TempDir(), ScanOptions{})
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if len(results) != 0 || bag.Len() != 0 {
		t.Errorf("expected empty results, got %d/%d", len(results), bag.Len())
	}
}

func TestScanDirEmitsProgress(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.c": "x\n"})
	events := make(chan Event, 16)

	_, _, err := ScanDir(context.Background(), dir, ScanOptions{
		Progress: ChannelSink{Ch: events},
	})
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	close(events)

	var statuses []Status
	for ev := range events {
		statuses = append(statuses, ev.Status)
	}
	if len(statuses) < 3 {
		t.Fatalf("expected queued/working/done events, got %v", statuses)
	}
	if statuses[0] != StatusQueued {
		t.Errorf("first event %v, want queued", statuses[0])
	}
	if statuses[len(statuses)-1] != StatusDone {
		t.Errorf("last event %v, want done", statuses[len(statuses)-1])
	}
}

func TestScanFileNotFound(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "missing.c"), 10); err == nil {
		t.Error("expected error for missing file")
	}
}
