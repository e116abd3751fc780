package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"cfront/internal/diag"
	"cfront/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждой печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем Notes с отступом. Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	if bag == nil {
		return
	}
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, opts PrettyOpts) {
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		formatPos(d.Pos, opts.PathMode, opts.BaseDir),
		severityLabel(d.Severity, opts.Color),
		d.Code.String(),
		d.Message,
	)
	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		fmt.Fprintf(w, "  note: %s: %s\n",
			formatPos(n.Pos, opts.PathMode, opts.BaseDir), n.Msg)
	}
}

func formatPos(p source.Pos, mode PathMode, baseDir string) string {
	shown := source.FormatPath(p.File, mode.formatMode(), baseDir)
	return source.Pos{File: shown, Line: p.Line, Col: p.Col}.String()
}

func severityLabel(sev diag.Severity, colored bool) string {
	c := severityColor(sev)
	if colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(sev.String())
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}
