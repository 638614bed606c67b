package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/oluyemi-1/plagiarism-backend/internal/extract"
	"github.com/oluyemi-1/plagiarism-backend/internal/report"
	"github.com/oluyemi-1/plagiarism-backend/internal/worker"
)

var (
	batchWorkers int
	batchOutDir  string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir|file...>",
	Short: "Analyze many documents concurrently",
	Long: `Batch analyzes every supported document in a directory, or an explicit
list of files, over a bounded worker pool. Each document gets its own
report; one failing document never stops the batch.

Example:
  plagiarism batch ./submissions
  plagiarism batch a.txt b.pdf c.docx --workers 4 --out reports/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchWorkers, "workers", 3, "concurrent analyses")
	batchCmd.Flags().StringVar(&batchOutDir, "out", "", "directory for per-document JSON reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "overall batch timeout")
}

func runBatch(cmd *cobra.Command, args []string) error {
	paths, err := collectPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no supported documents found (accepted: %v)", extract.SupportedExtensions())
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := buildApp(cfg)
	if err != nil {
		return err
	}

	if batchOutDir != "" {
		if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Analyzing %d documents with %d workers\n\n", len(paths), batchWorkers)

	pool := worker.NewPool(a.analyzer, batchWorkers)
	results := pool.Run(ctx, paths)

	var failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAILED %s: %v\n", res.Path, res.Err)
			continue
		}

		report.PrintSummary(os.Stdout, res.Report)

		if batchOutDir != "" {
			data, err := report.RenderJSON(res.Report)
			if err != nil {
				return err
			}
			name := res.Report.Filename + ".report.json"
			if err := os.WriteFile(filepath.Join(batchOutDir, name), data, 0o644); err != nil {
				return fmt.Errorf("write report for %s: %w", res.Path, err)
			}
		}
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d analyzed, %d failed\n", len(results)-failed, failed)
	if failed == len(results) {
		return fmt.Errorf("all %d documents failed", failed)
	}
	return nil
}

// collectPaths expands directory arguments into supported files
func collectPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", arg, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !extract.Supported(entry.Name()) {
				continue
			}
			paths = append(paths, filepath.Join(arg, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
