package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/oluyemi-1/plagiarism-backend/internal/model"
)

const crossrefBaseURL = "https://api.crossref.org/works"

// CrossRef queries the CrossRef works API for published papers
type CrossRef struct {
	*httpProvider
}

// NewCrossRef creates the CrossRef adapter
func NewCrossRef(base *httpProvider) *CrossRef {
	return &CrossRef{httpProvider: base}
}

// Name returns the adapter name
func (c *CrossRef) Name() string {
	return "crossref"
}

type crossrefResponse struct {
	Message struct {
		Items []crossrefItem `json:"items"`
	} `json:"message"`
}

type crossrefItem struct {
	Title          []string `json:"title"`
	ContainerTitle []string `json:"container-title"`
	URL            string   `json:"URL"`
	DOI            string   `json:"DOI"`
	Author         []struct {
		Given  string `json:"given"`
		Family string `json:"family"`
	} `json:"author"`
	PublishedPrint  crossrefDate `json:"published-print"`
	PublishedOnline crossrefDate `json:"published-online"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

func (d crossrefDate) year() string {
	if len(d.DateParts) > 0 && len(d.DateParts[0]) > 0 {
		return fmt.Sprint(d.DateParts[0][0])
	}
	return ""
}

// Search queries the works endpoint sorted by relevance
func (c *CrossRef) Search(ctx context.Context, query string, maxResults int) ([]model.Candidate, error) {
	params := url.Values{}
	params.Set("query", truncateQuery(query, 500))
	params.Set("rows", fmt.Sprint(maxResults))
	params.Set("sort", "relevance")
	params.Set("order", "desc")

	body, err := c.get(ctx, crossrefBaseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp crossrefResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse crossref response: %w", err)
	}

	candidates := make([]model.Candidate, 0, len(resp.Message.Items))
	for _, item := range resp.Message.Items {
		title := "Untitled"
		if len(item.Title) > 0 && item.Title[0] != "" {
			title = item.Title[0]
		}

		itemURL := item.URL
		if itemURL == "" && item.DOI != "" {
			itemURL = "https://doi.org/" + item.DOI
		}
		if itemURL == "" {
			continue
		}

		var names []string
		for _, author := range item.Author {
			if author.Family == "" {
				continue
			}
			names = append(names, strings.TrimSpace(author.Given+" "+author.Family))
		}

		journal := ""
		if len(item.ContainerTitle) > 0 {
			journal = item.ContainerTitle[0]
		}
		year := item.PublishedPrint.year()
		if year == "" {
			year = item.PublishedOnline.year()
		}

		var snippetParts []string
		if journal != "" {
			snippetParts = append(snippetParts, "Published in "+journal)
		}
		if year != "" {
			snippetParts = append(snippetParts, "("+year+")")
		}
		snippet := strings.Join(snippetParts, ". ")
		if snippet == "" {
			snippet = "Academic publication"
		}

		candidates = append(candidates, model.Candidate{
			Snippet:    snippet,
			Title:      title,
			URL:        itemURL,
			Domain:     hostOf(itemURL),
			Author:     firstAuthors(names, 3),
			SourceType: "journal",
			Provider:   c.Name(),
			Published:  year,
		})
	}
	return candidates, nil
}
