package search

import (
	"context"
	"net/url"

	"golang.org/x/net/html"

	"github.com/oluyemi-1/plagiarism-backend/internal/model"
	"github.com/oluyemi-1/plagiarism-backend/internal/util"
)

const bingSearchURL = "https://www.bing.com/search"

// Bing scrapes the Bing web search result page
type Bing struct {
	*httpProvider
	robots  *util.RobotsChecker
	limiter *Limiter
}

// NewBing creates the Bing scraping adapter
func NewBing(base *httpProvider, robots *util.RobotsChecker, limiter *Limiter) *Bing {
	return &Bing{httpProvider: base, robots: robots, limiter: limiter}
}

// Name returns the adapter name
func (b *Bing) Name() string {
	return "bing"
}

// Search scrapes one result page for the query
func (b *Bing) Search(ctx context.Context, query string, maxResults int) ([]model.Candidate, error) {
	searchURL := bingSearchURL + "?q=" + url.QueryEscape(truncateQuery(query, 100))

	if !b.robots.IsAllowed(ctx, searchURL) {
		return nil, nil
	}
	if err := b.limiter.Wait(ctx, searchURL); err != nil {
		return nil, err
	}

	body, err := b.get(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	doc, err := parseHTML(body)
	if err != nil {
		return nil, err
	}

	return b.parseResults(doc, maxResults), nil
}

// parseResults walks the b_algo result blocks
func (b *Bing) parseResults(doc *html.Node, maxResults int) []model.Candidate {
	blocks := findAll(doc, func(n *html.Node) bool {
		return isElement(n, "li") && hasClass(n, "b_algo")
	})

	var candidates []model.Candidate
	for _, block := range blocks {
		if len(candidates) >= maxResults {
			break
		}

		heading := findFirst(block, func(n *html.Node) bool { return isElement(n, "h2") })
		if heading == nil {
			continue
		}
		link := findFirst(heading, func(n *html.Node) bool { return isElement(n, "a") })
		snippet := findFirst(block, func(n *html.Node) bool { return isElement(n, "p") })
		if link == nil || snippet == nil {
			continue
		}

		title := nodeText(heading)
		href := attr(link, "href")
		text := nodeText(snippet)
		if title == "" || href == "" || text == "" {
			continue
		}

		domain := hostOf(href)
		candidates = append(candidates, model.Candidate{
			Snippet:    text,
			Title:      title,
			URL:        href,
			Domain:     domain,
			SourceType: model.ClassifySourceType(domain),
			Provider:   b.Name(),
		})
	}
	return candidates
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}
