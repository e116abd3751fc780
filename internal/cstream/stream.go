package cstream

import (
	"io"

	"cfront/internal/source"
)

// UnknownPosition is returned by Position when no unit is active.
const UnknownPosition = "(unknown)"

// DefaultPushbackCap bounds the pushback buffer of every unit unless
// Options overrides it. The lexer never needs more than a few characters
// of lookahead.
const DefaultPushbackCap = 8

// Options configures a Stream.
type Options struct {
	// PushbackCap is the per-unit pushback capacity; 0 means
	// DefaultPushbackCap.
	PushbackCap int
}

func (o Options) pushbackCap() int {
	if o.PushbackCap <= 0 {
		return DefaultPushbackCap
	}
	return o.PushbackCap
}

// Stream is the public read/unread/position façade over the source
// stack. It owns its units; handle-backed units do not own their
// readers (see source.Handles for the closing side).
type Stream struct {
	stack stack
	opts  Options
	err   error
}

// New creates an empty stream. Читать из пустого стрима нельзя —
// сначала Push/Insert/PushString.
func New(opts Options) *Stream {
	return &Stream{opts: opts}
}

// Read returns the next character of the logical stream, or EOF.
//
// Splice handling is a two-state machine: a backslash switches to a
// "saw backslash" state; a following newline discards the pair and the
// loop restarts (so chained splices collapse), anything else is pushed
// back and the backslash itself is returned. EOF from an auto-pop unit
// pops it and resumes the unit below; EOF from any other unit is
// returned to the caller.
func (s *Stream) Read() rune {
	for {
		c := s.stack.top().ReadRaw()
		if c == EOF {
			u := s.stack.top()
			if u.AutoPop() {
				s.notePopped(s.stack.pop())
				continue
			}
			return EOF
		}
		if c != '\\' {
			return c
		}
		c2 := s.stack.top().ReadRaw()
		if c2 == '\n' {
			continue
		}
		s.stack.top().UnreadRaw(c2)
		return c
	}
}

// Unread pushes c back onto the current unit. Unreading EOF is a no-op.
// Only characters previously obtained from Read may be unread, newest
// first; exceeding the pushback capacity panics.
func (s *Stream) Unread(c rune) {
	if c < 0 {
		return
	}
	s.stack.top().UnreadRaw(c)
}

// Current returns the active unit, or nil when the stack is empty.
func (s *Stream) Current() *Source {
	if s.stack.depth() == 0 {
		return nil
	}
	return s.stack.top()
}

// Insert pushes a handle-backed unit that auto-pops at its EOF. This is
// the #include path: when the included file runs out, reading resumes
// transparently in the includer.
func (s *Stream) Insert(r io.Reader, name string) {
	s.stack.push(newHandleSource(r, name, true, s.opts.pushbackCap()))
}

// Push pushes a handle-backed unit whose EOF is reported, used for the
// outermost compilation unit.
func (s *Stream) Push(r io.Reader, name string) {
	s.stack.push(newHandleSource(r, name, false, s.opts.pushbackCap()))
}

// PushString pushes a string-backed unit whose EOF is reported, used
// for macro re-scan buffers. An empty name gets the synthetic "(string)".
func (s *Stream) PushString(text, name string) {
	if name == "" {
		name = "(string)"
	}
	s.stack.push(newBufferSource(text, name, false, s.opts.pushbackCap()))
}

// Pop removes the current unit explicitly, e.g. when the lexer abandons
// a re-scan buffer early. Popping an empty stream panics.
func (s *Stream) Pop() {
	s.notePopped(s.stack.pop())
}

// Depth returns the number of active units. The preprocessor uses it
// for include-recursion limits.
func (s *Stream) Depth() int {
	return s.stack.depth()
}

// Pos returns the position of the next character, and false when no
// unit is active.
func (s *Stream) Pos() (source.Pos, bool) {
	if s.stack.depth() == 0 {
		return source.Pos{}, false
	}
	return s.stack.top().Pos(), true
}

// Position formats the current position for diagnostics. On an empty
// stream it returns the fixed UnknownPosition sentinel, never fails.
func (s *Stream) Position() string {
	pos, ok := s.Pos()
	if !ok {
		return UnknownPosition
	}
	return pos.String()
}

// Err returns the first non-EOF error any unit's underlying read
// produced, including units already popped.
func (s *Stream) Err() error {
	if s.err != nil {
		return s.err
	}
	if u := s.Current(); u != nil {
		return u.Err()
	}
	return nil
}

func (s *Stream) notePopped(u *Source) {
	if s.err == nil && u.Err() != nil {
		s.err = u.Err()
	}
}
