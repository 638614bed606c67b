package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/oluyemi-1/plagiarism-backend/internal/model"
)

const semanticScholarBaseURL = "https://api.semanticscholar.org/graph/v1/paper/search"

// SemanticScholar queries the Semantic Scholar graph API
type SemanticScholar struct {
	*httpProvider
}

// NewSemanticScholar creates the Semantic Scholar adapter
func NewSemanticScholar(base *httpProvider) *SemanticScholar {
	return &SemanticScholar{httpProvider: base}
}

// Name returns the adapter name
func (s *SemanticScholar) Name() string {
	return "semanticscholar"
}

type semanticScholarResponse struct {
	Data []struct {
		Title    string `json:"title"`
		Year     int    `json:"year"`
		Abstract string `json:"abstract"`
		URL      string `json:"url"`
		Venue    string `json:"venue"`
		Authors  []struct {
			Name string `json:"name"`
		} `json:"authors"`
		CitationCount int `json:"citationCount"`
	} `json:"data"`
}

// Search queries the paper search endpoint
func (s *SemanticScholar) Search(ctx context.Context, query string, maxResults int) ([]model.Candidate, error) {
	params := url.Values{}
	params.Set("query", truncateQuery(query, 500))
	params.Set("limit", fmt.Sprint(maxResults))
	params.Set("fields", "title,authors,year,abstract,url,venue,citationCount")

	body, err := s.get(ctx, semanticScholarBaseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp semanticScholarResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse semantic scholar response: %w", err)
	}

	candidates := make([]model.Candidate, 0, len(resp.Data))
	for _, paper := range resp.Data {
		title := paper.Title
		if title == "" {
			title = "Untitled"
		}
		if paper.URL == "" {
			continue
		}

		var names []string
		for _, author := range paper.Authors {
			if author.Name != "" {
				names = append(names, author.Name)
			}
		}

		year := ""
		if paper.Year > 0 {
			year = fmt.Sprint(paper.Year)
		}

		var snippetParts []string
		if paper.Venue != "" {
			snippetParts = append(snippetParts, "Published in "+paper.Venue)
		}
		if year != "" {
			snippetParts = append(snippetParts, "("+year+")")
		}
		if paper.CitationCount > 0 {
			snippetParts = append(snippetParts, fmt.Sprintf("Cited %d times", paper.CitationCount))
		}
		if paper.Abstract != "" {
			snippetParts = append(snippetParts, clip(paper.Abstract, 150))
		}
		snippet := strings.Join(snippetParts, ". ")
		if snippet == "" {
			snippet = "Academic paper"
		}

		candidates = append(candidates, model.Candidate{
			Snippet:    snippet,
			Title:      title,
			URL:        paper.URL,
			Domain:     hostOf(paper.URL),
			Author:     firstAuthors(names, 3),
			SourceType: "academic",
			Provider:   s.Name(),
			Published:  year,
		})
	}
	return candidates, nil
}
