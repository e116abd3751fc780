package source

import (
	"os"
	"path/filepath"
)

// NormalizePath приводит путь к единому виду для кроссплатформенных дифов.
func NormalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath resolves p against the current working directory.
func AbsolutePath(p string) (string, error) {
	return filepath.Abs(p)
}

// RelativePath rewrites p relative to baseDir.
func RelativePath(p, baseDir string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.Rel(baseDir, abs)
}

// BaseName returns the last path element.
func BaseName(p string) string {
	return filepath.Base(p)
}

// FormatPath formats a file path for display.
// mode: "absolute", "relative", "basename", "auto"
// baseDir: база для относительных путей (игнорируется в других режимах)
func FormatPath(p, mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(p); err == nil {
			return abs
		}
		return p

	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(p, baseDir); err == nil {
			return rel
		}
		return p

	case "basename":
		return BaseName(p)

	case "auto":
		// Auto: короткий или относительный путь — как есть, иначе basename
		if len(p) < 40 || !filepath.IsAbs(p) {
			return p
		}
		return BaseName(p)

	default:
		return p
	}
}
