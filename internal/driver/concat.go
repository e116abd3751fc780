package driver

import (
	"bufio"
	"fmt"
	"io"

	"cfront/internal/cstream"
	"cfront/internal/source"
)

// Concat streams paths in order as one logical stream, writing the
// normalized characters to w. Every unit above the bottom one is
// auto-pop, so file boundaries are invisible: the result reads like a
// single translation unit that has already been newline-canonicalized,
// spliced, and newline-terminated per file.
func Concat(w io.Writer, paths []string, pushbackCap int) error {
	if len(paths) == 0 {
		return nil
	}

	var handles source.Handles
	defer func() { _ = handles.Close() }()

	st := cstream.New(cstream.Options{PushbackCap: pushbackCap})

	// Bottom of the stack is the last path; the first path ends up on
	// top and is read first.
	last := paths[len(paths)-1]
	f, err := handles.Open(last)
	if err != nil {
		return err
	}
	st.Push(f, source.NormalizePath(last))
	for i := len(paths) - 2; i >= 0; i-- {
		f, err := handles.Open(paths[i])
		if err != nil {
			return err
		}
		st.Insert(f, source.NormalizePath(paths[i]))
	}

	bw := bufio.NewWriter(w)
	for {
		c := st.Read()
		if c == cstream.EOF {
			break
		}
		if err := bw.WriteByte(byte(c)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if err := st.Err(); err != nil {
		return fmt.Errorf("stream: %w", err)
	}
	return bw.Flush()
}
