package search

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/oluyemi-1/plagiarism-backend/internal/cache"
	"github.com/oluyemi-1/plagiarism-backend/internal/model"
)

// Coordinator fans segment lookups out across all configured providers.
// Segments are processed in sequential batches with an enforced delay
// between batches; within a batch every (segment, provider) lookup runs
// concurrently. Provider failures are recorded and absorbed — they only
// ever mean fewer candidates.
type Coordinator struct {
	providers  []Provider
	cache      cache.Cache
	cacheTTL   time.Duration
	batchSize  int
	batchDelay time.Duration
	maxResults int
}

// Retrieval is the aggregated candidate pool for one analysis run
type Retrieval struct {
	BySegment map[int][]model.Candidate
	Failures  []*model.ProviderError
}

// Candidates returns the flattened pool across all segments
func (r *Retrieval) Candidates() []model.Candidate {
	var all []model.Candidate
	for _, list := range r.BySegment {
		all = append(all, list...)
	}
	return all
}

// NewCoordinator creates a retrieval coordinator. A nil cache disables
// caching.
func NewCoordinator(providers []Provider, c cache.Cache, cfg model.SearchConfig, cacheTTL time.Duration) *Coordinator {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 3
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Coordinator{
		providers:  providers,
		cache:      c,
		cacheTTL:   cacheTTL,
		batchSize:  batchSize,
		batchDelay: cfg.BatchDelay,
		maxResults: maxResults,
	}
}

// Retrieve looks every segment up against every provider and returns
// the deduplicated per-segment candidate pool.
func (c *Coordinator) Retrieve(ctx context.Context, segments []model.Segment) (*Retrieval, error) {
	retrieval := &Retrieval{BySegment: make(map[int][]model.Candidate)}
	if len(c.providers) == 0 || len(segments) == 0 {
		return retrieval, nil
	}

	// The pacer yields immediately for the first batch and enforces the
	// configured delay before each one after that.
	pacer := rate.NewLimiter(rate.Every(c.batchDelay), 1)
	if c.batchDelay <= 0 {
		pacer = rate.NewLimiter(rate.Inf, 1)
	}

	for start := 0; start < len(segments); start += c.batchSize {
		if err := pacer.Wait(ctx); err != nil {
			return nil, err
		}

		end := start + c.batchSize
		if end > len(segments) {
			end = len(segments)
		}
		c.retrieveBatch(ctx, segments[start:end], retrieval)
	}

	return retrieval, nil
}

// retrieveBatch runs one concurrent fan-out and joins all calls before
// returning. Results are slotted by (segment, provider) index so the
// merged order is deterministic regardless of completion order.
func (c *Coordinator) retrieveBatch(ctx context.Context, batch []model.Segment, retrieval *Retrieval) {
	type slot struct {
		candidates []model.Candidate
		failure    *model.ProviderError
	}

	slots := make([]slot, len(batch)*len(c.providers))
	var wg sync.WaitGroup

	for si, seg := range batch {
		for pi, provider := range c.providers {
			wg.Add(1)
			go func(idx int, seg model.Segment, provider Provider) {
				defer wg.Done()

				candidates, err := c.search(ctx, provider, seg.NormalizedText)
				if err != nil {
					slots[idx].failure = &model.ProviderError{
						Provider: provider.Name(),
						Query:    seg.NormalizedText,
						Err:      err,
					}
					return
				}
				slots[idx].candidates = candidates
			}(si*len(c.providers)+pi, seg, provider)
		}
	}
	wg.Wait()

	for si, seg := range batch {
		var merged []model.Candidate
		for pi := range c.providers {
			s := slots[si*len(c.providers)+pi]
			if s.failure != nil {
				log.Printf("search: %v", s.failure)
				retrieval.Failures = append(retrieval.Failures, s.failure)
				continue
			}
			merged = append(merged, s.candidates...)
		}

		deduped := dedupeCandidates(merged)
		if len(deduped) > c.maxResults {
			deduped = deduped[:c.maxResults]
		}
		if len(deduped) > 0 {
			retrieval.BySegment[seg.ID] = deduped
		}
	}
}

// search consults the cache before hitting the live provider
func (c *Coordinator) search(ctx context.Context, provider Provider, query string) ([]model.Candidate, error) {
	key := cache.Key(provider.Name(), query)
	if c.cache != nil {
		if data, ok := c.cache.Get(key); ok {
			var cached []model.Candidate
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	candidates, err := provider.Search(ctx, query, c.maxResults)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if data, err := json.Marshal(candidates); err == nil {
			_ = c.cache.Set(key, data, c.cacheTTL)
		}
	}
	return candidates, nil
}

// SearchAll queries every provider once for a single query. Used by the
// diagnostic search endpoint; same partial-failure semantics as Retrieve.
func (c *Coordinator) SearchAll(ctx context.Context, query string, maxResults int) ([]model.Candidate, []*model.ProviderError) {
	if maxResults <= 0 {
		maxResults = c.maxResults
	}

	type outcome struct {
		candidates []model.Candidate
		failure    *model.ProviderError
	}

	outcomes := make([]outcome, len(c.providers))
	var wg sync.WaitGroup
	for i, provider := range c.providers {
		wg.Add(1)
		go func(i int, provider Provider) {
			defer wg.Done()
			candidates, err := c.search(ctx, provider, query)
			if err != nil {
				outcomes[i].failure = &model.ProviderError{Provider: provider.Name(), Query: query, Err: err}
				return
			}
			outcomes[i].candidates = candidates
		}(i, provider)
	}
	wg.Wait()

	var all []model.Candidate
	var failures []*model.ProviderError
	for _, r := range outcomes {
		if r.failure != nil {
			failures = append(failures, r.failure)
			continue
		}
		all = append(all, r.candidates...)
	}

	deduped := dedupeCandidates(all)
	if len(deduped) > maxResults {
		deduped = deduped[:maxResults]
	}
	return deduped, failures
}

// dedupeCandidates drops duplicates by normalized (title-prefix, url),
// keeping the first occurrence
func dedupeCandidates(candidates []model.Candidate) []model.Candidate {
	seen := make(map[string]bool, len(candidates))
	deduped := make([]model.Candidate, 0, len(candidates))
	for _, cand := range candidates {
		key := candidateKey(cand)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, cand)
	}
	return deduped
}

func candidateKey(c model.Candidate) string {
	title := strings.ToLower(strings.TrimSpace(c.Title))
	if len(title) > 50 {
		title = title[:50]
	}
	return title + "|" + strings.TrimSpace(c.URL)
}
