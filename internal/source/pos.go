package source

import "fmt"

// Pos is a human-readable position in a source input: the display name of
// the input (file path, or a synthetic name for string-backed inputs), a
// 1-based line and a 0-based column. It always points at the next character
// that the stream will deliver.
type Pos struct {
	File string
	Line uint32 // 1-based
	Col  uint32 // 0-based
}

// String renders the position as "<file>:<line>:<col>", the form used in
// every diagnostic message.
func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// IsZero reports whether the position carries no information.
func (p Pos) IsZero() bool {
	return p == Pos{}
}
