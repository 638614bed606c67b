// Package search implements the external candidate providers and the
// retrieval coordinator that fans segment lookups out across them.
package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/oluyemi-1/plagiarism-backend/internal/model"
	"github.com/oluyemi-1/plagiarism-backend/internal/util"
)

// Provider is the capability interface over one external source of
// candidates. Implementations parse their native response format into
// Candidate records; malformed fields degrade to empty strings.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) ([]model.Candidate, error)
}

// NewProviders builds the configured adapters. Unknown provider names
// are a configuration error.
func NewProviders(cfg *model.Config) ([]Provider, error) {
	base := newHTTPProvider(cfg.HTTP)
	robots := util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	limiter := NewLimiter(1, 2)

	providers := make([]Provider, 0, len(cfg.Search.Providers))
	for _, name := range cfg.Search.Providers {
		switch name {
		case "bing":
			providers = append(providers, NewBing(base, robots, limiter))
		case "duckduckgo":
			providers = append(providers, NewDuckDuckGo(base, robots, limiter))
		case "arxiv":
			providers = append(providers, NewArxiv(base))
		case "crossref":
			providers = append(providers, NewCrossRef(base))
		case "semanticscholar":
			providers = append(providers, NewSemanticScholar(base))
		case "pubmed":
			providers = append(providers, NewPubMed(base))
		default:
			return nil, fmt.Errorf("unknown search provider: %q", name)
		}
	}
	return providers, nil
}

// httpProvider carries the HTTP plumbing shared by all adapters
type httpProvider struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
}

func newHTTPProvider(cfg model.HTTPConfig) *httpProvider {
	return &httpProvider{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBytes,
	}
}

// get issues one bounded GET with the identifying header and returns the
// body capped at maxBytes. Non-2xx statuses are errors.
func (p *httpProvider) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json, application/xml, text/xml, text/html;q=0.9, */*;q=0.8")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// truncateQuery caps a query at max bytes without splitting a word
func truncateQuery(query string, max int) string {
	query = strings.TrimSpace(query)
	if len(query) <= max {
		return query
	}
	cut := query[:max]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return cut
}

// cleanQuery strips characters that strict APIs reject and collapses
// whitespace
func cleanQuery(query string, max int) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range query {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return truncateQuery(strings.TrimSpace(b.String()), max)
}

// firstAuthors joins up to n author names
func firstAuthors(names []string, n int) string {
	if len(names) > n {
		names = names[:n]
	}
	return strings.Join(names, ", ")
}

// clip shortens snippet text to roughly n bytes on a rune boundary,
// appending an ellipsis
func clip(text string, n int) string {
	text = strings.TrimSpace(text)
	if len(text) <= n {
		return text
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n] + "..."
}
