package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oluyemi-1/plagiarism-backend/internal/model"
)

type stubAnalyzer struct {
	failOn string
}

func (s *stubAnalyzer) Analyze(_ context.Context, text, filename string) (*model.Report, error) {
	if s.failOn != "" && filename == s.failOn {
		return nil, errors.New("analysis blew up")
	}
	return &model.Report{
		Filename:  filename,
		Status:    "completed",
		WordCount: len(strings.Fields(text)),
	}, nil
}

func writeDocs(t *testing.T, texts map[string]string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(texts))
	for name, text := range texts {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}
	return paths
}

func TestPoolRun(t *testing.T) {
	paths := writeDocs(t, map[string]string{
		"a.txt": "first document text",
		"b.txt": "second document text",
		"c.txt": "third document text",
	})

	pool := NewPool(&stubAnalyzer{}, 2)
	results := pool.Run(context.Background(), paths)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, res := range results {
		if res.Path != paths[i] {
			t.Errorf("result %d out of order: %q", i, res.Path)
		}
		if res.Err != nil {
			t.Errorf("result %d errored: %v", i, res.Err)
		}
		if res.Report == nil || res.Report.Status != "completed" {
			t.Errorf("result %d missing report", i)
		}
	}
}

func TestPoolFailedDocumentIsolated(t *testing.T) {
	paths := writeDocs(t, map[string]string{
		"good.txt": "a perfectly fine document",
		"bad.txt":  "this one fails analysis",
	})

	pool := NewPool(&stubAnalyzer{failOn: "bad.txt"}, 2)
	results := pool.Run(context.Background(), paths)

	var failed, succeeded int
	for _, res := range results {
		if res.Err != nil {
			failed++
		} else {
			succeeded++
		}
	}
	if failed != 1 || succeeded != 1 {
		t.Errorf("failed/succeeded = %d/%d, want 1/1", failed, succeeded)
	}
}

func TestPoolUnreadableFile(t *testing.T) {
	paths := writeDocs(t, map[string]string{"good.txt": "a fine document"})
	paths = append(paths, filepath.Join(t.TempDir(), "missing.txt"))

	pool := NewPool(&stubAnalyzer{}, 1)
	results := pool.Run(context.Background(), paths)

	if results[0].Err != nil {
		t.Errorf("good document errored: %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Error("missing file did not error")
	}
}

func TestPoolCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	paths := writeDocs(t, map[string]string{
		"a.txt": "text one",
		"b.txt": "text two",
	})

	pool := NewPool(&stubAnalyzer{}, 1)
	results := pool.Run(ctx, paths)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for i, res := range results {
		if !errors.Is(res.Err, context.Canceled) {
			t.Errorf("result %d: err = %v, want context.Canceled", i, res.Err)
		}
	}
}
