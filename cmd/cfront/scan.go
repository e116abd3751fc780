package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cfront/internal/diag"
	"cfront/internal/diagfmt"
	"cfront/internal/driver"
	"cfront/internal/observ"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] path",
	Short: "Report source hygiene of C files",
	Long:  `Scan inspects files for the conditions the character input layer repairs silently: CRLF and lone CR line endings, line splices, missing final newlines and byte order marks`,
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	scanCmd.Flags().Int("jobs", 0, "maximum parallel scans (0 = number of CPUs)")
	scanCmd.Flags().Bool("ui", false, "show interactive progress")
	scanCmd.Flags().Bool("no-cache", false, "ignore and do not update the scan cache")
	scanCmd.Flags().String("manifest", "", "path to cfront.toml")
}

func runScan(cmd *cobra.Command, args []string) error {
	path := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	withUI, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	manifestFlag, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return fmt.Errorf("failed to get manifest flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings")

	manifest, projectRoot, err := resolveManifest(manifestFlag)
	if err != nil {
		return err
	}
	if jobs <= 0 {
		jobs = manifest.Scan.Jobs
	}

	timer := observ.NewTimer()

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("scan %s: %w", path, err)
	}

	// одиночный файл — без пула и кэша
	if !info.IsDir() {
		phase := timer.Begin("scan")
		report, err := driver.Scan(path, maxDiagnostics)
		timer.End(phase, path)
		if err != nil {
			return err
		}
		if err := renderScanBag(cmd, format, report.Bag()); err != nil {
			return err
		}
		if !quiet {
			printScanSummary(cmd, 1, 0, report.Clean())
		}
		if showTimings {
			fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
		}
		return nil
	}

	opts := driver.ScanOptions{
		Jobs:           jobs,
		Exts:           manifest.Scan.Exts,
		MaxDiagnostics: maxDiagnostics,
	}
	if !noCache && manifest.Scan.CacheDir != "" {
		cacheDir := manifest.Scan.CacheDir
		if !filepath.IsAbs(cacheDir) {
			cacheDir = filepath.Join(projectRoot, cacheDir)
		}
		cache, err := driver.NewDiskCache(cacheDir)
		if err != nil {
			return err
		}
		opts.Cache = cache
	}

	phase := timer.Begin("scan")
	var results []driver.FileReport
	var bag *diag.Bag
	if withUI && isTerminal(os.Stdout) {
		results, bag, err = runScanWithUI(cmd.Context(), path, opts)
	} else {
		results, bag, err = driver.ScanDir(cmd.Context(), path, opts)
	}
	timer.End(phase, path)
	if err != nil {
		return err
	}

	failed := 0
	clean := true
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
			continue
		}
		if !r.Report.Clean() {
			clean = false
		}
	}

	if err := renderScanBag(cmd, format, bag); err != nil {
		return err
	}
	if !quiet {
		printScanSummary(cmd, len(results), failed, clean && failed == 0)
	}
	if showTimings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) could not be scanned", failed)
	}
	return nil
}

func printScanSummary(cmd *cobra.Command, scanned, failed int, clean bool) {
	verdict := "clean"
	if !clean {
		verdict = "needs repairs"
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "scanned %d file(s), %d failed: %s\n", scanned, failed, verdict)
}

func renderScanBag(cmd *cobra.Command, format string, bag *diag.Bag) error {
	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, bag, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stdout),
			ShowNotes: true,
		})
		return nil
	case "json":
		return diagfmt.JSON(os.Stdout, bag, diagfmt.JSONOpts{})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
