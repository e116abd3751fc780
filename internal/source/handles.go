package source

import (
	"fmt"
	"os"
)

// Handles tracks OS files opened on behalf of a character stream.
//
// The stream layer never closes a handle it reads from: whichever layer
// opens a handle is responsible for closing it after the corresponding
// unit has been popped (or the whole stream torn down). Handles makes
// that step explicit — the driver opens every file through a Handles
// value and closes the lot once streaming is finished.
type Handles struct {
	files []*os.File
}

// Open opens path for reading and records the handle for later Close.
func (h *Handles) Open(path string) (*os.File, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	h.files = append(h.files, f)
	return f, nil
}

// Close closes every recorded handle and forgets them.
// Returns the first close error, if any.
func (h *Handles) Close() error {
	var first error
	for _, f := range h.files {
		if err := f.Close(); err != nil && first == nil {
			first = fmt.Errorf("close %s: %w", f.Name(), err)
		}
	}
	h.files = nil
	return first
}

// Count returns the number of handles currently tracked.
func (h *Handles) Count() int {
	return len(h.files)
}
