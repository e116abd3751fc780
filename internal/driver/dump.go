package driver

import (
	"fmt"

	"cfront/internal/cstream"
	"cfront/internal/project"
	"cfront/internal/source"
)

// DumpOptions configures Dump.
type DumpOptions struct {
	// Prelude is an optional file streamed before the main one through
	// an auto-pop unit, the way cc's -include prepends a header. Its
	// exhaustion is invisible in the output.
	Prelude string
	// PushbackCap overrides the stream's pushback capacity; 0 keeps
	// the default.
	PushbackCap int
	// MaxDepth caps stream nesting; 0 means project.DefaultMaxIncludeDepth.
	MaxDepth int
}

// DumpResult holds the fully normalized character stream of one file.
type DumpResult struct {
	Chars []cstream.Char
}

// Dump opens path (plus the optional prelude), streams it to EOF and
// returns every delivered character with its position. The handles are
// owned here: opened before pushing, closed after the stream is drained.
func Dump(path string, opts DumpOptions) (*DumpResult, error) {
	var handles source.Handles
	defer func() { _ = handles.Close() }()

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = project.DefaultMaxIncludeDepth
	}

	st := cstream.New(cstream.Options{PushbackCap: opts.PushbackCap})

	f, err := handles.Open(path)
	if err != nil {
		return nil, err
	}
	st.Push(f, source.NormalizePath(path))

	if opts.Prelude != "" {
		pf, err := handles.Open(opts.Prelude)
		if err != nil {
			return nil, err
		}
		st.Insert(pf, source.NormalizePath(opts.Prelude))
	}
	if st.Depth() > maxDepth {
		return nil, fmt.Errorf("%s: include depth %d exceeds limit %d", path, st.Depth(), maxDepth)
	}

	res := &DumpResult{}
	for {
		c := st.Read()
		if c == cstream.EOF {
			break
		}
		pos, _ := st.Pos()
		res.Chars = append(res.Chars, cstream.Char{C: c, Pos: pos})
	}
	if err := st.Err(); err != nil {
		return nil, fmt.Errorf("stream %s: %w", path, err)
	}
	return res, nil
}
