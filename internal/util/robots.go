package util

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsChecker caches robots.txt verdicts per host so the web-search
// scrapers stay polite without refetching on every query.
type RobotsChecker struct {
	cache      map[string]*robotstxt.RobotsData
	mu         sync.RWMutex
	httpClient *http.Client
	userAgent  string
}

// NewRobotsChecker creates a robots.txt checker
func NewRobotsChecker(userAgent string, timeout time.Duration) *RobotsChecker {
	return &RobotsChecker{
		cache:      make(map[string]*robotstxt.RobotsData),
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// IsAllowed reports whether the URL may be fetched. Failure to obtain or
// parse robots.txt allows the fetch by default.
func (r *RobotsChecker) IsAllowed(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	data, err := r.robotsData(ctx, parsed.Scheme, parsed.Host)
	if err != nil {
		return true
	}
	return data.TestAgent(parsed.Path, r.userAgent)
}

func (r *RobotsChecker) robotsData(ctx context.Context, scheme, host string) (*robotstxt.RobotsData, error) {
	r.mu.RLock()
	data, ok := r.cache[host]
	r.mu.RUnlock()
	if ok {
		return data, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", scheme, host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var parsed *robotstxt.RobotsData
	if resp.StatusCode == http.StatusNotFound {
		// No robots.txt means everything is allowed
		parsed, _ = robotstxt.FromStatusAndBytes(http.StatusNotFound, nil)
	} else {
		parsed, err = robotstxt.FromResponse(resp)
		if err != nil {
			return nil, fmt.Errorf("parse robots.txt: %w", err)
		}
	}

	r.mu.Lock()
	r.cache[host] = parsed
	r.mu.Unlock()

	return parsed, nil
}
