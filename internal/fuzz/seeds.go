package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addHandwrittenSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.c и *.h файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".c" && ext != ".h" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

// addHandwrittenSeeds covers the interesting corners of the normalization
// rules: every newline flavor, splices in each flavor, splices at the end
// of input, escaped backslashes, and missing final newlines.
func addHandwrittenSeeds(f *testing.F) {
	seeds := []string{
		"",
		"int main(void) { return 0; }\n",
		"a\r\nb\rc\n",
		"#define LONG \\\n    1\n",
		"a\\\r\nb\n",
		"a\\\rb\n",
		"trailing\\",
		"\\",
		"\\\\\n",
		"\\\n\\\n",
		"no newline at end",
		"\r",
		"\xEF\xBB\xBFint x;\n",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
