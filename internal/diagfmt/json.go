package diagfmt

import (
	"encoding/json"
	"io"

	"cfront/internal/diag"
	"cfront/internal/source"
)

// LocationJSON представляет позицию потока для JSON.
type LocationJSON struct {
	File string `json:"file"`
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

// NoteJSON представляет дополнительную заметку для JSON.
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON представляет диагностику в JSON формате.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Total       int              `json:"total"`
	Truncated   bool             `json:"truncated,omitempty"`
}

// JSON renders the bag (sorted by the caller) as an indented JSON object.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	out := DiagnosticsOutput{Diagnostics: []DiagnosticJSON{}}
	if bag != nil {
		items := bag.Items()
		out.Total = len(items)
		for i, d := range items {
			if opts.Max > 0 && i >= opts.Max {
				out.Truncated = true
				break
			}
			out.Diagnostics = append(out.Diagnostics, toJSON(d, opts))
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toJSON(d diag.Diagnostic, opts JSONOpts) DiagnosticJSON {
	dj := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.String(),
		Message:  d.Message,
		Location: toLocation(d.Pos, opts),
	}
	for _, n := range d.Notes {
		dj.Notes = append(dj.Notes, NoteJSON{
			Message:  n.Msg,
			Location: toLocation(n.Pos, opts),
		})
	}
	return dj
}

func toLocation(p source.Pos, opts JSONOpts) LocationJSON {
	return LocationJSON{
		File: source.FormatPath(p.File, opts.PathMode.formatMode(), opts.BaseDir),
		Line: p.Line,
		Col:  p.Col,
	}
}
