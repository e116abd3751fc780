package diag

import (
	"cfront/internal/source"
)

// Note is a secondary position with extra context. Use sparingly: each
// note must add information, not repeat the diagnostic message.
type Note struct {
	Pos source.Pos
	Msg string
}

// Diagnostic is one finding at one stream position.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Pos      source.Pos
	Notes    []Note
}

// New constructs a Diagnostic without notes.
func New(sev Severity, code Code, pos source.Pos, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Pos:      pos,
		Message:  msg,
	}
}

// NewError is a shortcut for SevError diagnostics.
func NewError(code Code, pos source.Pos, msg string) Diagnostic {
	return New(SevError, code, pos, msg)
}

// NewWarning is a shortcut for SevWarning diagnostics.
func NewWarning(code Code, pos source.Pos, msg string) Diagnostic {
	return New(SevWarning, code, pos, msg)
}

// WithNote returns a copy of d with one more note attached.
func (d Diagnostic) WithNote(pos source.Pos, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Pos: pos, Msg: msg})
	return d
}
