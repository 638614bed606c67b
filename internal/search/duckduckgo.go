package search

import (
	"context"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/oluyemi-1/plagiarism-backend/internal/model"
	"github.com/oluyemi-1/plagiarism-backend/internal/util"
)

const duckduckgoSearchURL = "https://html.duckduckgo.com/html/"

// DuckDuckGo scrapes the HTML-only DuckDuckGo results page
type DuckDuckGo struct {
	*httpProvider
	robots  *util.RobotsChecker
	limiter *Limiter
}

// NewDuckDuckGo creates the DuckDuckGo scraping adapter
func NewDuckDuckGo(base *httpProvider, robots *util.RobotsChecker, limiter *Limiter) *DuckDuckGo {
	return &DuckDuckGo{httpProvider: base, robots: robots, limiter: limiter}
}

// Name returns the adapter name
func (d *DuckDuckGo) Name() string {
	return "duckduckgo"
}

// Search scrapes one result page for the query
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]model.Candidate, error) {
	searchURL := duckduckgoSearchURL + "?q=" + url.QueryEscape(truncateQuery(query, 100))

	if !d.robots.IsAllowed(ctx, searchURL) {
		return nil, nil
	}
	if err := d.limiter.Wait(ctx, searchURL); err != nil {
		return nil, err
	}

	body, err := d.get(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	doc, err := parseHTML(body)
	if err != nil {
		return nil, err
	}

	return d.parseResults(doc, maxResults), nil
}

func (d *DuckDuckGo) parseResults(doc *html.Node, maxResults int) []model.Candidate {
	blocks := findAll(doc, func(n *html.Node) bool {
		return isElement(n, "div") && (hasClass(n, "web-result") || hasClass(n, "result"))
	})

	var candidates []model.Candidate
	for _, block := range blocks {
		if len(candidates) >= maxResults {
			break
		}

		link := findFirst(block, func(n *html.Node) bool {
			return isElement(n, "a") && hasClass(n, "result__a")
		})
		snippet := findFirst(block, func(n *html.Node) bool {
			return hasClass(n, "result__snippet")
		})
		if link == nil || snippet == nil {
			continue
		}

		title := nodeText(link)
		href := attr(link, "href")
		text := nodeText(snippet)

		// The HTML-only endpoint serves relative redirect links
		if strings.HasPrefix(href, "/") {
			href = "https://duckduckgo.com" + href
		}
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
			Provider:   d.Name(),
		})
	}
	return candidates
}
