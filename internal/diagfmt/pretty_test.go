package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"cfront/internal/cstream"
	"cfront/internal/diag"
	"cfront/internal/source"
)

func sampleBag() *diag.Bag {
	b := diag.NewBag(8)
	b.Add(diag.NewWarning(diag.SrcCRLF,
		source.Pos{File: "a.c", Line: 3, Col: 0}, "CRLF line ending"))
	b.Add(diag.NewError(diag.SrcReadFailed,
		source.Pos{File: "b.c", Line: 1, Col: 0}, "read failed").
		WithNote(source.Pos{File: "b.c", Line: 1, Col: 0}, "while streaming"))
	b.Sort()
	return b
}

func TestPrettyPlain(t *testing.T) {
	var sb strings.Builder
	Pretty(&sb, sampleBag(), PrettyOpts{Color: false, ShowNotes: true})
	out := sb.String()

	want := []string{
		"a.c:3:0: WARNING SRC1001: CRLF line ending",
		"b.c:1:0: ERROR SRC1006: read failed",
		"  note: b.c:1:0: while streaming",
	}
	for _, line := range want {
		if !strings.Contains(out, line) {
			t.Errorf("output missing %q\nfull output:\n%s", line, out)
		}
	}
}

func TestPrettyNotesHidden(t *testing.T) {
	var sb strings.Builder
	Pretty(&sb, sampleBag(), PrettyOpts{ShowNotes: false})
	if strings.Contains(sb.String(), "note:") {
		t.Error("notes printed despite ShowNotes=false")
	}
}

func TestPrettyNilBag(t *testing.T) {
	var sb strings.Builder
	Pretty(&sb, nil, PrettyOpts{})
	if sb.Len() != 0 {
		t.Errorf("nil bag produced output: %q", sb.String())
	}
}

func TestJSONShape(t *testing.T) {
	var sb strings.Builder
	if err := JSON(&sb, sampleBag(), JSONOpts{}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal([]byte(sb.String()), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Total != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("total=%d, len=%d, want 2/2", out.Total, len(out.Diagnostics))
	}
	if out.Diagnostics[1].Code != "SRC1006" {
		t.Errorf("code = %q, want SRC1006", out.Diagnostics[1].Code)
	}
	if len(out.Diagnostics[1].Notes) != 1 {
		t.Errorf("notes = %d, want 1", len(out.Diagnostics[1].Notes))
	}
}

func TestJSONTruncation(t *testing.T) {
	var sb strings.Builder
	if err := JSON(&sb, sampleBag(), JSONOpts{Max: 1}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal([]byte(sb.String()), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out.Diagnostics) != 1 || !out.Truncated || out.Total != 2 {
		t.Errorf("truncation broken: %+v", out)
	}
}

func TestFormatCharsPretty(t *testing.T) {
	chars := []cstream.Char{
		{C: 'a', Pos: source.Pos{File: "x.c", Line: 1, Col: 1}},
		{C: '\n', Pos: source.Pos{File: "x.c", Line: 2, Col: 0}},
		{C: 'b', Pos: source.Pos{File: "inc.h", Line: 1, Col: 1}},
	}
	var sb strings.Builder
	if err := FormatCharsPretty(&sb, chars); err != nil {
		t.Fatalf("FormatCharsPretty: %v", err)
	}
	out := sb.String()
	for _, frag := range []string{"-- x.c", "-- inc.h", "'a'", `'\n'`} {
		if !strings.Contains(out, frag) {
			t.Errorf("output missing %q\nfull output:\n%s", frag, out)
		}
	}
}

func TestFormatCharsPrettyHighByte(t *testing.T) {
	// é в UTF-8 приходит двумя байтами; каждый печатается hex-эскейпом
	chars := []cstream.Char{
		{C: 0xC3, Pos: source.Pos{File: "x.c", Line: 1, Col: 1}},
		{C: 0xA9, Pos: source.Pos{File: "x.c", Line: 1, Col: 2}},
	}
	var sb strings.Builder
	if err := FormatCharsPretty(&sb, chars); err != nil {
		t.Fatalf("FormatCharsPretty: %v", err)
	}
	out := sb.String()
	for _, frag := range []string{`'\xc3'`, `'\xa9'`} {
		if !strings.Contains(out, frag) {
			t.Errorf("output missing %q\nfull output:\n%s", frag, out)
		}
	}
}

func TestFormatCharsJSONHighByte(t *testing.T) {
	chars := []cstream.Char{
		{C: 0xEF, Pos: source.Pos{File: "x.c", Line: 1, Col: 1}},
	}
	var sb strings.Builder
	if err := FormatCharsJSON(&sb, chars); err != nil {
		t.Fatalf("FormatCharsJSON: %v", err)
	}
	var out CharsOutput
	if err := json.Unmarshal([]byte(sb.String()), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Chars[0].Char != `\xef` || out.Chars[0].Code != 0xEF {
		t.Errorf("unexpected output: %+v", out.Chars[0])
	}
}

func TestFormatCharsJSON(t *testing.T) {
	chars := []cstream.Char{
		{C: '\n', Pos: source.Pos{File: "x.c", Line: 2, Col: 0}},
	}
	var sb strings.Builder
	if err := FormatCharsJSON(&sb, chars); err != nil {
		t.Fatalf("FormatCharsJSON: %v", err)
	}
	var out CharsOutput
	if err := json.Unmarshal([]byte(sb.String()), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Total != 1 || out.Chars[0].Code != 10 || out.Chars[0].Char != "\n" {
		t.Errorf("unexpected output: %+v", out)
	}
}
