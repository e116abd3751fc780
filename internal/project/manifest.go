package project

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Manifest is the typed shape of cfront.toml.
type Manifest struct {
	Stream  StreamConfig  `toml:"stream"`
	Scan    ScanConfig    `toml:"scan"`
	Include IncludeConfig `toml:"include"`
}

// StreamConfig tunes the character stream itself.
type StreamConfig struct {
	// PushbackCap bounds the per-unit pushback buffer; 0 keeps the
	// built-in default.
	PushbackCap int `toml:"pushback_cap"`
}

// ScanConfig tunes the source-hygiene scanner.
type ScanConfig struct {
	// Jobs caps scan parallelism; 0 means GOMAXPROCS.
	Jobs int `toml:"jobs"`
	// CacheDir holds cached scan reports; empty disables the cache.
	CacheDir string `toml:"cache_dir"`
	// Exts are the file extensions scanned; default .c and .h.
	Exts []string `toml:"exts"`
}

// IncludeConfig tunes textual inclusion.
type IncludeConfig struct {
	// Dirs are searched for prelude/include files.
	Dirs []string `toml:"dirs"`
	// MaxDepth caps stream nesting depth; 0 keeps the default.
	MaxDepth int `toml:"max_depth"`
}

// DefaultMaxIncludeDepth bounds stream nesting when the manifest does
// not say otherwise. Matches the include recursion limit of common C
// preprocessors' headroom rather than any hard requirement.
const DefaultMaxIncludeDepth = 32

// DefaultManifest returns the configuration used without a cfront.toml.
func DefaultManifest() Manifest {
	return Manifest{
		Scan:    ScanConfig{Exts: []string{".c", ".h"}},
		Include: IncludeConfig{MaxDepth: DefaultMaxIncludeDepth},
	}
}

// LoadManifest decodes path into a Manifest, filling defaults for
// anything the file leaves out.
func LoadManifest(path string) (Manifest, error) {
	m := DefaultManifest()
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Manifest{}, fmt.Errorf("%s: unknown manifest key %q", path, undecoded[0].String())
	}
	if m.Include.MaxDepth <= 0 {
		m.Include.MaxDepth = DefaultMaxIncludeDepth
	}
	if len(m.Scan.Exts) == 0 {
		m.Scan.Exts = []string{".c", ".h"}
	}
	return m, nil
}
