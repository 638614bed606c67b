package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/oluyemi-1/plagiarism-backend/internal/model"
)

const arxivBaseURL = "http://export.arxiv.org/api/query"

// Arxiv queries the arXiv Atom API
type Arxiv struct {
	*httpProvider
}

// NewArxiv creates the arXiv adapter
func NewArxiv(base *httpProvider) *Arxiv {
	return &Arxiv{httpProvider: base}
}

// Name returns the adapter name
func (a *Arxiv) Name() string {
	return "arxiv"
}

type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string `xml:"id"`
	Title     string `xml:"title"`
	Summary   string `xml:"summary"`
	Published string `xml:"published"`
	Authors   []struct {
		Name string `xml:"name"`
	} `xml:"author"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Search queries the Atom API and parses the feed
func (a *Arxiv) Search(ctx context.Context, query string, maxResults int) ([]model.Candidate, error) {
	params := url.Values{}
	params.Set("search_query", "all:"+cleanQuery(query, 200))
	params.Set("start", "0")
	params.Set("max_results", fmt.Sprint(maxResults))
	params.Set("sortBy", "relevance")
	params.Set("sortOrder", "descending")

	body, err := a.get(ctx, arxivBaseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parse atom feed: %w", err)
	}

	candidates := make([]model.Candidate, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		title := whitespaceRun.ReplaceAllString(strings.TrimSpace(entry.Title), " ")
		abstract := whitespaceRun.ReplaceAllString(strings.TrimSpace(entry.Summary), " ")
		if title == "" || abstract == "" {
			continue
		}

		names := make([]string, 0, len(entry.Authors))
		for _, author := range entry.Authors {
			if name := strings.TrimSpace(author.Name); name != "" {
				names = append(names, name)
			}
		}

		published := entry.Published
		if idx := strings.IndexByte(published, 'T'); idx > 0 {
			published = published[:idx]
		}

		candidates = append(candidates, model.Candidate{
			Snippet:    clip(abstract, 200),
			Title:      title,
			URL:        entry.ID,
			Domain:     hostOf(entry.ID),
			Author:     firstAuthors(names, 3),
			SourceType: "preprint",
			Provider:   a.Name(),
			Published:  published,
		})
	}
	return candidates, nil
}
