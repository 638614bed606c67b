// Package worker runs batch document analysis over a bounded pool.
package worker

import (
	"context"
	"sync"

	"github.com/oluyemi-1/plagiarism-backend/internal/extract"
	"github.com/oluyemi-1/plagiarism-backend/internal/model"
)

// Analyzer is the per-document pipeline the pool drives
type Analyzer interface {
	Analyze(ctx context.Context, text, filename string) (*model.Report, error)
}

// Result pairs one input path with its report or failure
type Result struct {
	Path   string
	Report *model.Report
	Err    error
}

// Pool analyzes many documents concurrently with a fixed worker count
type Pool struct {
	analyzer Analyzer
	workers  int
}

// NewPool creates a pool over the given analyzer
func NewPool(analyzer Analyzer, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{analyzer: analyzer, workers: workers}
}

// Run analyzes every path and returns results in input order. A failed
// document never stops the batch; its error is carried in its Result.
func (p *Pool) Run(ctx context.Context, paths []string) []Result {
	results := make([]Result, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.analyzeFile(ctx, paths[i])
			}
		}()
	}

	for i := range paths {
		if err := ctx.Err(); err != nil {
			// Mark everything not yet dispatched and stop feeding
			for j := i; j < len(paths); j++ {
				results[j] = Result{Path: paths[j], Err: err}
			}
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

func (p *Pool) analyzeFile(ctx context.Context, path string) Result {
	content, err := extract.FromFile(path)
	if err != nil {
		return Result{Path: path, Err: err}
	}

	report, err := p.analyzer.Analyze(ctx, content.Text, content.Filename)
	if err != nil {
		return Result{Path: path, Err: err}
	}
	return Result{Path: path, Report: report}
}
