package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/oluyemi-1/plagiarism-backend/internal/model"
)

const pubmedBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// PubMed queries the NCBI eutils API. It is a two-phase flow: esearch
// resolves PMIDs for the query, esummary fetches their metadata.
type PubMed struct {
	*httpProvider
	baseURL string
}

// NewPubMed creates the PubMed adapter
func NewPubMed(base *httpProvider) *PubMed {
	return &PubMed{httpProvider: base, baseURL: pubmedBaseURL}
}

// Name returns the adapter name
func (p *PubMed) Name() string {
	return "pubmed"
}

type pubmedSearchResponse struct {
	Result struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type pubmedSummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

type pubmedSummary struct {
	Title           string `json:"title"`
	FullJournalName string `json:"fulljournalname"`
	PubDate         string `json:"pubdate"`
	Authors         []struct {
		Name string `json:"name"`
	} `json:"authors"`
}

// Search resolves PMIDs and fetches their summaries
func (p *PubMed) Search(ctx context.Context, query string, maxResults int) ([]model.Candidate, error) {
	pmids, err := p.searchIDs(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	if len(pmids) == 0 {
		return nil, nil
	}
	return p.fetchSummaries(ctx, pmids)
}

func (p *PubMed) searchIDs(ctx context.Context, query string, maxResults int) ([]string, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", truncateQuery(query, 500))
	params.Set("retmax", fmt.Sprint(maxResults))
	params.Set("retmode", "json")
	params.Set("sort", "relevance")

	body, err := p.get(ctx, p.baseURL+"/esearch.fcgi?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp pubmedSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse esearch response: %w", err)
	}
	return resp.Result.IDList, nil
}

func (p *PubMed) fetchSummaries(ctx context.Context, pmids []string) ([]model.Candidate, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(pmids, ","))
	params.Set("retmode", "json")

	body, err := p.get(ctx, p.baseURL+"/esummary.fcgi?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp pubmedSummaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse esummary response: %w", err)
	}

	candidates := make([]model.Candidate, 0, len(pmids))
	for _, pmid := range pmids {
		raw, ok := resp.Result[pmid]
		if !ok {
			continue
		}
		var summary pubmedSummary
		if err := json.Unmarshal(raw, &summary); err != nil {
			continue
		}
		if summary.Title == "" {
			continue
		}

		var names []string
		for _, author := range summary.Authors {
			if author.Name != "" {
				names = append(names, author.Name)
			}
		}

		year := ""
		if fields := strings.Fields(summary.PubDate); len(fields) > 0 {
			year = fields[0]
		}

		var snippetParts []string
		if summary.FullJournalName != "" {
			snippetParts = append(snippetParts, "Published in "+summary.FullJournalName)
		}
		if year != "" {
			snippetParts = append(snippetParts, "("+year+")")
		}
		snippetParts = append(snippetParts, "Medical/Life Sciences research")

		paperURL := "https://pubmed.ncbi.nlm.nih.gov/" + pmid + "/"
		candidates = append(candidates, model.Candidate{
			Snippet:    strings.Join(snippetParts, ". "),
			Title:      summary.Title,
			URL:        paperURL,
			Domain:     "pubmed.ncbi.nlm.nih.gov",
			Author:     firstAuthors(names, 3),
			SourceType: "journal",
			Provider:   p.Name(),
			Published:  year,
		})
	}
	return candidates, nil
}
