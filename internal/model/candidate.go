package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Candidate is a snippet of external text proposed as a possible match source.
// Candidates live only for the duration of one analysis run.
type Candidate struct {
	Snippet    string `json:"snippet"`              // The text that may overlap the document
	Title      string `json:"title"`                // Title of the source page/paper
	URL        string `json:"url"`                  // Full URL
	Domain     string `json:"domain,omitempty"`     // Host part of the URL
	Author     string `json:"author,omitempty"`     // Author(s), when the provider exposes them
	SourceType string `json:"sourceType"`           // academic, preprint, journal, news, encyclopedia, reference, web
	Provider   string `json:"provider"`             // Name of the adapter that produced the candidate
	Published  string `json:"published,omitempty"`  // Publication date, provider-native format
}

// Source is the deduplicated projection of a Candidate, unique by (title, url)
type Source struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Domain     string `json:"domain,omitempty"`
	Author     string `json:"author,omitempty"`
	SourceType string `json:"sourceType"`
	Published  string `json:"published,omitempty"`
}

// SourceFromCandidate projects a candidate onto its deduplicated source record
func SourceFromCandidate(c Candidate) Source {
	return Source{
		ID:         SourceID(c.URL),
		Title:      c.Title,
		URL:        c.URL,
		Domain:     c.Domain,
		Author:     c.Author,
		SourceType: c.SourceType,
		Published:  c.Published,
	}
}

// SourceID derives a stable short identifier from a source URL
func SourceID(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "src_" + hex.EncodeToString(sum[:])[:8]
}

// SourceKey builds the dedup key for a source: normalized (title, url)
func SourceKey(title, url string) string {
	return strings.ToLower(strings.TrimSpace(title)) + "|" + strings.TrimSpace(url)
}

// ClassifySourceType buckets a domain into a coarse source category
func ClassifySourceType(domain string) string {
	d := strings.ToLower(domain)
	switch {
	case strings.Contains(d, "arxiv"):
		return "preprint"
	case strings.Contains(d, "pubmed") || strings.Contains(d, "jstor") ||
		strings.Contains(d, "springer") || strings.Contains(d, "sciencedirect"):
		return "journal"
	case strings.Contains(d, "wikipedia") || strings.Contains(d, "britannica"):
		return "encyclopedia"
	case strings.Contains(d, ".edu") || strings.Contains(d, "scholar") ||
		strings.Contains(d, "researchgate") || strings.Contains(d, "semanticscholar"):
		return "academic"
	case strings.Contains(d, "news") || strings.Contains(d, "cnn") ||
		strings.Contains(d, "bbc") || strings.Contains(d, "reuters") ||
		strings.Contains(d, "times"):
		return "news"
	default:
		return "web"
	}
}
