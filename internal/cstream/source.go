package cstream

import (
	"bufio"
	"errors"
	"io"

	"cfront/internal/source"
)

// EOF is the end-of-input sentinel returned by ReadRaw and Read.
// Every real character is non-negative, so callers may test c < 0.
const EOF rune = -1

type originKind uint8

const (
	// originHandle reads sequentially from an externally owned reader.
	originHandle originKind = iota
	// originBuffer reads from an owned immutable string.
	originBuffer
)

// Source is a single input unit: one file or one in-memory string,
// together with its position counters and pushback buffer. Units are
// created by the Stream and owned by its stack; a handle-backed unit
// does not own the underlying reader.
type Source struct {
	kind originKind
	br   *bufio.Reader // originHandle
	text string        // originBuffer
	off  int           // cursor into text

	name string
	line uint32 // 1-based, позиция следующего символа
	col  uint32 // 0-based
	last rune   // most recently delivered raw char, or EOF; 0 before the first read
	err  error  // first non-EOF read error, if any

	pushback []rune // most recently unread last; cap fixed at creation
	autoPop  bool
}

func newHandleSource(r io.Reader, name string, autoPop bool, pushCap int) *Source {
	return &Source{
		kind:     originHandle,
		br:       bufio.NewReader(r),
		name:     name,
		line:     1,
		autoPop:  autoPop,
		pushback: make([]rune, 0, pushCap),
	}
}

func newBufferSource(text, name string, autoPop bool, pushCap int) *Source {
	return &Source{
		kind:     originBuffer,
		text:     text,
		name:     name,
		line:     1,
		autoPop:  autoPop,
		pushback: make([]rune, 0, pushCap),
	}
}

// ReadRaw returns the next raw character after newline canonicalization
// and EOF regularization, consulting the pushback buffer first. Pushback
// characters were already normalized and are returned untouched. Every
// real character delivered, fresh or pushed back, moves the position;
// EOF does not.
func (s *Source) ReadRaw() rune {
	var c rune
	if n := len(s.pushback); n > 0 {
		c = s.pushback[n-1]
		s.pushback = s.pushback[:n-1]
	} else {
		switch s.kind {
		case originHandle:
			c = s.readHandle()
		default:
			c = s.readBuffer()
		}
		s.last = c
	}
	if c == EOF {
		return EOF
	}
	if c == '\n' {
		s.line++
		s.col = 0
	} else {
		s.col++
	}
	return c
}

// readHandle reads one character from the underlying reader.
// Carriage returns collapse to '\n'; end of input becomes a synthetic
// '\n' unless the previous delivered character already was one.
func (s *Source) readHandle() rune {
	b, err := s.br.ReadByte()
	if err != nil {
		s.noteErr(err)
		return s.eofOrNewline()
	}
	if b == '\r' {
		b2, err := s.br.ReadByte()
		if err != nil {
			s.noteErr(err)
		} else if b2 != '\n' {
			// не \n — вернуть байт обратно, как ungetc
			_ = s.br.UnreadByte()
		}
		return '\n'
	}
	return rune(b)
}

// readBuffer is readHandle over the owned string.
func (s *Source) readBuffer() rune {
	if s.off >= len(s.text) {
		return s.eofOrNewline()
	}
	b := s.text[s.off]
	if b == '\r' {
		s.off++
		if s.off < len(s.text) && s.text[s.off] == '\n' {
			s.off++
		}
		return '\n'
	}
	s.off++
	return rune(b)
}

// eofOrNewline implements the missing-final-newline fixup: the unit's
// native end yields one '\n' first unless the last delivered character
// was already a newline (or we already reported EOF).
func (s *Source) eofOrNewline() rune {
	if s.last == '\n' || s.last == EOF {
		return EOF
	}
	return '\n'
}

func (s *Source) noteErr(err error) {
	if err != nil && !errors.Is(err, io.EOF) && s.err == nil {
		s.err = err
	}
}

// UnreadRaw pushes c back so the next ReadRaw returns it again, undoing
// the position update that delivering c caused. Unreading EOF (any
// negative value) is a deliberate no-op: callers may unread the result
// of a read that might have hit end of input without checking.
//
// Exceeding the pushback capacity is a caller bug, not a recoverable
// condition, and panics.
func (s *Source) UnreadRaw(c rune) {
	if c < 0 {
		return
	}
	if len(s.pushback) == cap(s.pushback) {
		panic("cstream: pushback overflow: more characters unread than read")
	}
	s.pushback = append(s.pushback, c)
	if c == '\n' {
		// column on a rewound newline is not recoverable; 0 matches
		// the forward update
		s.col = 0
		s.line--
	} else if s.col > 0 {
		s.col--
	}
}

// Pos returns the position of the next character this unit will deliver.
func (s *Source) Pos() source.Pos {
	return source.Pos{File: s.name, Line: s.line, Col: s.col}
}

// Name returns the unit's display name.
func (s *Source) Name() string { return s.name }

// AutoPop reports whether the unit vanishes silently at its own EOF.
func (s *Source) AutoPop() bool { return s.autoPop }

// Err returns the first non-EOF error the underlying read produced.
func (s *Source) Err() error { return s.err }
