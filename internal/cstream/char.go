package cstream

import "cfront/internal/source"

// Char is one delivered character together with the stream position
// recorded immediately after it, i.e. the position of the character that
// follows. The dump driver and formatters traffic in these.
type Char struct {
	C   rune
	Pos source.Pos
}
