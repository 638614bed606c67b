package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/oluyemi-1/plagiarism-backend/internal/model"
)

func sampleReport() *model.Report {
	src := journalSource()
	matches := []model.Match{{
		SegmentID:    0,
		OriginalText: "The gut microbiome shapes the immune system.",
		MatchedText:  "the gut microbiome shapes the immune system",
		Similarity:   0.92,
		MatchType:    model.MatchExact,
		StartIndex:   0,
		EndIndex:     44,
		Source:       src,
	}}
	return &model.Report{
		DocumentID:        "doc-1",
		OverallSimilarity: 0.42,
		RiskLevel:         model.RiskHigh,
		Status:            "completed",
		AnalyzedAt:        time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC),
		Filename:          "essay.txt",
		WordCount:         120,
		CharacterCount:    700,
		SegmentsAnalyzed:  6,
		Matches:           matches,
		Sources:           []model.Source{src},
		Summary:           model.Summarize(matches, []model.Source{src}),
	}
}

func TestRenderJSONContract(t *testing.T) {
	data, err := RenderJSON(sampleReport())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, field := range []string{
		"documentId", "overallSimilarity", "riskLevel", "status",
		"analyzedAt", "filename", "matches", "sources",
	} {
		if _, ok := decoded[field]; !ok {
			t.Errorf("missing contract field %q", field)
		}
	}
	if decoded["riskLevel"] != "High" {
		t.Errorf("riskLevel = %v", decoded["riskLevel"])
	}
}

func TestRenderMarkdown(t *testing.T) {
	md := RenderMarkdown(sampleReport())

	for _, want := range []string{
		"# Plagiarism Report: essay.txt",
		"42.0%",
		"High",
		"## Matches (1)",
		"> The gut microbiome shapes the immune system.",
		"## Sources (1)",
		"## Bibliography (APA)",
		"Smith J (2023).",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRenderMarkdownNoMatches(t *testing.T) {
	r := sampleReport()
	r.Matches = nil
	r.Sources = nil
	r.OverallSimilarity = 0
	r.RiskLevel = model.RiskLow

	md := RenderMarkdown(r)
	if !strings.Contains(md, "No matches found.") {
		t.Errorf("markdown missing empty-state line:\n%s", md)
	}
	if strings.Contains(md, "## Sources") {
		t.Errorf("sources section rendered for empty report")
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, sampleReport())

	out := buf.String()
	if !strings.Contains(out, "essay.txt") || !strings.Contains(out, "similarity: 42.0%") {
		t.Errorf("summary missing fields:\n%s", out)
	}
	if !strings.Contains(out, "matches: 1  sources: 1") {
		t.Errorf("summary counts wrong:\n%s", out)
	}
}
