package driver

import (
	"context"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"cfront/internal/diag"
	"cfront/internal/source"
)

// ScanOptions configures ScanDir.
type ScanOptions struct {
	// Jobs caps parallelism; 0 means GOMAXPROCS.
	Jobs int
	// Exts selects the files scanned; empty means .c and .h.
	Exts []string
	// Cache, when non-nil, lets unchanged files skip rescanning.
	Cache *DiskCache
	// Progress receives per-file events; may be nil.
	Progress ProgressSink
	// MaxDiagnostics bounds findings per file.
	MaxDiagnostics int
}

// FileReport is the scan outcome of one file.
type FileReport struct {
	Path      string
	Report    *Report
	FromCache bool
	Err       error
}

// ListSourceFiles возвращает отсортированный список файлов с нужными
// расширениями в директории.
func ListSourceFiles(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = []string{".c", ".h"}
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ScanDir scans every matching file under dir in parallel and returns
// per-file reports plus one merged, sorted diagnostic bag. A failed
// file carries its error in its FileReport; ScanDir itself fails only
// when the directory walk or the context does.
func ScanDir(ctx context.Context, dir string, opts ScanOptions) ([]FileReport, *diag.Bag, error) {
	files, err := ListSourceFiles(dir, opts.Exts)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, diag.NewBag(1), nil
	}

	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}
	if maxDiagnostics > math.MaxUint16 {
		maxDiagnostics = math.MaxUint16
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	for _, path := range files {
		emit(opts.Progress, path, StageLoad, StatusQueued, nil, 0)
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	results := make([]FileReport, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = scanOne(path, opts, maxDiagnostics)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	// Bag ёмкостью ограничен uint16; произведение на большом дереве
	// легко его превышает, зажимаем до максимума
	mergedLimit := int64(maxDiagnostics) * int64(len(files))
	if mergedLimit > math.MaxUint16 {
		mergedLimit = math.MaxUint16
	}
	merged := diag.NewBag(int(mergedLimit))
	for i := range results {
		if results[i].Report == nil {
			continue
		}
		merged.Merge(results[i].Report.Bag())
	}
	merged.Sort()
	return results, merged, nil
}

func scanOne(path string, opts ScanOptions, maxDiagnostics int) FileReport {
	started := time.Now()
	emit(opts.Progress, path, StageLoad, StatusWorking, nil, 0)

	// #nosec G304 -- path came from the directory walk
	content, err := os.ReadFile(path)
	if err != nil {
		emit(opts.Progress, path, StageLoad, StatusError, err, time.Since(started))
		return FileReport{Path: path, Err: err}
	}

	norm := source.NormalizePath(path)
	key := contentKey(norm, content)
	if cached, ok := opts.Cache.Load(key); ok {
		emit(opts.Progress, path, StageCache, StatusDone, nil, time.Since(started))
		return FileReport{Path: path, Report: cached, FromCache: true}
	}

	emit(opts.Progress, path, StageStream, StatusWorking, nil, 0)
	report := scanContent(norm, content, maxDiagnostics)
	if err := opts.Cache.Store(key, report); err != nil {
		// кэш — только ускорение; ошибка не валит скан
		emit(opts.Progress, path, StageCache, StatusError, err, time.Since(started))
	}
	emit(opts.Progress, path, StageStream, StatusDone, nil, time.Since(started))
	return FileReport{Path: path, Report: report}
}
