package driver

import (
	"fmt"
	"math"
	"os"

	"cfront/internal/cstream"
	"cfront/internal/diag"
	"cfront/internal/source"
)

// Report summarizes source hygiene for one file: the conditions the
// character stream repairs silently (CRLF, lone CR, missing final
// newline) plus splice statistics. The scan command is the surface
// that names these; the stream itself stays quiet.
type Report struct {
	Path          string
	Hash          string // hex SHA-256 of path + raw content
	PhysicalLines uint32
	LogicalLines  uint32
	CRLF          uint32
	LoneCR        uint32
	Splices       uint32
	FinalNewline  bool
	BOM           bool
	Findings      []diag.Diagnostic
}

// Scan reads path and reports its source hygiene. At most
// maxDiagnostics findings are retained.
func Scan(path string, maxDiagnostics int) (*Report, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return scanContent(source.NormalizePath(path), content, maxDiagnostics), nil
}

// maxPhysicalLineBytes is where a physical line starts being worth a
// note: nothing breaks, but editors and diff tools start to struggle.
const maxPhysicalLineBytes = 4096

// scanContent walks the raw bytes once for physical findings, then runs
// the content through the character stream for the logical view.
func scanContent(path string, content []byte, maxDiagnostics int) *Report {
	if maxDiagnostics > math.MaxUint16 {
		maxDiagnostics = math.MaxUint16
	}
	bag := diag.NewBag(maxDiagnostics)
	rep := diag.BagReporter{Bag: bag}
	r := &Report{Path: path, Hash: contentKey(path, content)}

	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		// Поток не вырезает BOM — только фиксируем его.
		r.BOM = true
		rep.Report(diag.SrcByteOrderMark, diag.SevWarning,
			source.Pos{File: path, Line: 1, Col: 0},
			"UTF-8 byte order mark before first character", nil)
	}

	line := uint32(1)
	col := uint32(0)
	i := 0
	for i < len(content) {
		b := content[i]
		switch {
		case b == '\r':
			pos := source.Pos{File: path, Line: line, Col: col}
			if i+1 < len(content) && content[i+1] == '\n' {
				r.CRLF++
				rep.Report(diag.SrcCRLF, diag.SevWarning, pos,
					"CRLF line ending", nil)
				i += 2
			} else {
				r.LoneCR++
				rep.Report(diag.SrcLoneCR, diag.SevWarning, pos,
					"lone carriage return", nil)
				i++
			}
			line++
			col = 0
		case b == '\n':
			i++
			line++
			col = 0
		case b == '\\' && i+1 < len(content) && (content[i+1] == '\n' || content[i+1] == '\r'):
			r.Splices++
			rep.Report(diag.SrcLineSplice, diag.SevInfo,
				source.Pos{File: path, Line: line, Col: col},
				"line splice", nil)
			i++
			col++
		default:
			i++
			col++
		}
		if col == maxPhysicalLineBytes+1 {
			// один раз на строку, в момент пересечения границы
			rep.Report(diag.SrcLineTooLong, diag.SevInfo,
				source.Pos{File: path, Line: line, Col: col},
				fmt.Sprintf("physical line longer than %d bytes", maxPhysicalLineBytes), nil)
		}
	}

	switch {
	case len(content) == 0:
		r.FinalNewline = false
	case content[len(content)-1] == '\n' || content[len(content)-1] == '\r':
		r.FinalNewline = true
	default:
		r.FinalNewline = false
		rep.Report(diag.SrcNoFinalNewline, diag.SevWarning,
			source.Pos{File: path, Line: line, Col: col},
			"no newline at end of file", nil)
	}
	if col > 0 {
		r.PhysicalLines = line
	} else {
		r.PhysicalLines = line - 1
	}

	r.LogicalLines = countLogicalLines(path, content)
	bag.Sort()
	r.Findings = bag.Items()
	return r
}

// countLogicalLines streams the content and counts delivered newlines:
// splices join lines, EOF regularization terminates the last one.
func countLogicalLines(path string, content []byte) uint32 {
	st := cstream.New(cstream.Options{})
	st.PushString(string(content), path)
	var n uint32
	for {
		c := st.Read()
		if c == cstream.EOF {
			return n
		}
		if c == '\n' {
			n++
		}
	}
}

// Bag collects the findings back into a Bag for rendering.
func (r *Report) Bag() *diag.Bag {
	n := len(r.Findings)
	if n == 0 {
		n = 1
	}
	b := diag.NewBag(n)
	for _, d := range r.Findings {
		b.Add(d)
	}
	return b
}

// Clean reports whether the file needs no repairs at all.
func (r *Report) Clean() bool {
	return r.CRLF == 0 && r.LoneCR == 0 && r.FinalNewline && !r.BOM
}
