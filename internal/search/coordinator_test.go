package search

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/oluyemi-1/plagiarism-backend/internal/cache"
	"github.com/oluyemi-1/plagiarism-backend/internal/model"
)

// fakeProvider serves canned candidates and counts calls
type fakeProvider struct {
	name       string
	candidates []model.Candidate
	err        error

	mu    sync.Mutex
	calls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Search(_ context.Context, _ string, _ int) ([]model.Candidate, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func cand(title, url string) model.Candidate {
	return model.Candidate{Title: title, URL: url, Snippet: "snippet for " + title}
}

func segments(n int) []model.Segment {
	segs := make([]model.Segment, n)
	for i := range segs {
		segs[i] = model.Segment{ID: i, NormalizedText: fmt.Sprintf("segment %d text", i)}
	}
	return segs
}

func TestCoordinatorRetrieve(t *testing.T) {
	a := &fakeProvider{name: "a", candidates: []model.Candidate{cand("Alpha", "https://a.example/1")}}
	b := &fakeProvider{name: "b", candidates: []model.Candidate{cand("Beta", "https://b.example/1")}}

	c := NewCoordinator([]Provider{a, b}, nil, model.SearchConfig{BatchSize: 3, MaxResults: 5}, 0)

	retrieval, err := c.Retrieve(context.Background(), segments(2))
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}

	if len(retrieval.BySegment) != 2 {
		t.Fatalf("expected candidates for 2 segments, got %d", len(retrieval.BySegment))
	}
	for id, list := range retrieval.BySegment {
		if len(list) != 2 {
			t.Errorf("segment %d: expected 2 candidates, got %d", id, len(list))
		}
	}
	// Every (segment, provider) pair queried once
	if a.callCount() != 2 || b.callCount() != 2 {
		t.Errorf("call counts = %d/%d, want 2/2", a.callCount(), b.callCount())
	}
}

func TestCoordinatorProviderOrderStable(t *testing.T) {
	a := &fakeProvider{name: "a", candidates: []model.Candidate{cand("Alpha", "https://a.example/1")}}
	b := &fakeProvider{name: "b", candidates: []model.Candidate{cand("Beta", "https://b.example/1")}}

	c := NewCoordinator([]Provider{a, b}, nil, model.SearchConfig{BatchSize: 3, MaxResults: 5}, 0)

	var first []model.Candidate
	for i := 0; i < 10; i++ {
		retrieval, err := c.Retrieve(context.Background(), segments(1))
		if err != nil {
			t.Fatalf("Retrieve: %v", err)
		}
		got := retrieval.BySegment[0]
		if first == nil {
			first = got
			continue
		}
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: candidate order changed:\n%+v\n%+v", i, got, first)
		}
	}
	if first[0].Title != "Alpha" || first[1].Title != "Beta" {
		t.Errorf("candidates not in provider order: %+v", first)
	}
}

func TestCoordinatorFailureAbsorbed(t *testing.T) {
	ok := &fakeProvider{name: "ok", candidates: []model.Candidate{cand("Alpha", "https://a.example/1")}}
	bad := &fakeProvider{name: "bad", err: errors.New("timeout")}

	c := NewCoordinator([]Provider{ok, bad}, nil, model.SearchConfig{BatchSize: 3, MaxResults: 5}, 0)

	retrieval, err := c.Retrieve(context.Background(), segments(1))
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(retrieval.BySegment[0]) != 1 {
		t.Errorf("expected the healthy provider's candidate, got %d", len(retrieval.BySegment[0]))
	}
	if len(retrieval.Failures) != 1 {
		t.Fatalf("expected 1 recorded failure, got %d", len(retrieval.Failures))
	}
	if retrieval.Failures[0].Provider != "bad" {
		t.Errorf("failure provider = %q", retrieval.Failures[0].Provider)
	}
}

func TestCoordinatorDedupAndCap(t *testing.T) {
	dup := cand("Same Paper", "https://x.example/paper")
	a := &fakeProvider{name: "a", candidates: []model.Candidate{dup, cand("One", "https://x.example/1")}}
	b := &fakeProvider{name: "b", candidates: []model.Candidate{dup, cand("Two", "https://x.example/2"), cand("Three", "https://x.example/3")}}

	c := NewCoordinator([]Provider{a, b}, nil, model.SearchConfig{BatchSize: 3, MaxResults: 3}, 0)

	retrieval, err := c.Retrieve(context.Background(), segments(1))
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}

	got := retrieval.BySegment[0]
	if len(got) != 3 {
		t.Fatalf("expected dedup then cap to 3, got %d", len(got))
	}
	seen := map[string]bool{}
	for _, cnd := range got {
		if seen[cnd.URL] {
			t.Errorf("duplicate url survived: %q", cnd.URL)
		}
		seen[cnd.URL] = true
	}
	if got[0].Title != "Same Paper" {
		t.Errorf("first occurrence not kept first: %+v", got[0])
	}
}

func TestCoordinatorBatchDelay(t *testing.T) {
	p := &fakeProvider{name: "p", candidates: []model.Candidate{cand("Alpha", "https://a.example/1")}}

	delay := 50 * time.Millisecond
	c := NewCoordinator([]Provider{p}, nil, model.SearchConfig{BatchSize: 2, BatchDelay: delay, MaxResults: 5}, 0)

	// 4 segments at batch size 2 means one inter-batch wait
	start := time.Now()
	if _, err := c.Retrieve(context.Background(), segments(4)); err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if elapsed := time.Since(start); elapsed < delay {
		t.Errorf("batches not paced: elapsed %v < %v", elapsed, delay)
	}
	if p.callCount() != 4 {
		t.Errorf("call count = %d, want 4", p.callCount())
	}
}

func TestCoordinatorCache(t *testing.T) {
	p := &fakeProvider{name: "p", candidates: []model.Candidate{cand("Alpha", "https://a.example/1")}}

	mem := cache.NewMemoryCache(time.Minute, 0)
	c := NewCoordinator([]Provider{p}, mem, model.SearchConfig{BatchSize: 3, MaxResults: 5}, time.Minute)

	segs := segments(1)
	if _, err := c.Retrieve(context.Background(), segs); err != nil {
		t.Fatalf("first Retrieve: %v", err)
	}
	retrieval, err := c.Retrieve(context.Background(), segs)
	if err != nil {
		t.Fatalf("second Retrieve: %v", err)
	}

	if p.callCount() != 1 {
		t.Errorf("expected the second lookup served from cache, provider called %d times", p.callCount())
	}
	if len(retrieval.BySegment[0]) != 1 {
		t.Errorf("cached result missing: %+v", retrieval.BySegment)
	}
}

func TestCoordinatorNoProviders(t *testing.T) {
	c := NewCoordinator(nil, nil, model.SearchConfig{BatchSize: 3}, 0)

	retrieval, err := c.Retrieve(context.Background(), segments(3))
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(retrieval.BySegment) != 0 {
		t.Errorf("expected empty retrieval, got %+v", retrieval.BySegment)
	}
}

func TestSearchAll(t *testing.T) {
	a := &fakeProvider{name: "a", candidates: []model.Candidate{cand("Alpha", "https://a.example/1")}}
	bad := &fakeProvider{name: "bad", err: errors.New("down")}

	c := NewCoordinator([]Provider{a, bad}, nil, model.SearchConfig{BatchSize: 3, MaxResults: 5}, 0)

	candidates, failures := c.SearchAll(context.Background(), "some query", 0)
	if len(candidates) != 1 || candidates[0].Title != "Alpha" {
		t.Errorf("candidates = %+v", candidates)
	}
	if len(failures) != 1 || failures[0].Provider != "bad" {
		t.Errorf("failures = %+v", failures)
	}
}
