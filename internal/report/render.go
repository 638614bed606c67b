package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/oluyemi-1/plagiarism-backend/internal/model"
)

// RenderJSON serializes the report as an indented JSON artifact
func RenderJSON(r *model.Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}

// RenderMarkdown produces the human-readable report artifact
func RenderMarkdown(r *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Plagiarism Report: %s\n\n", r.Filename)
	fmt.Fprintf(&b, "- **Document ID**: %s\n", r.DocumentID)
	fmt.Fprintf(&b, "- **Analyzed**: %s\n", r.AnalyzedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- **Overall similarity**: %.1f%%\n", r.OverallSimilarity*100)
	fmt.Fprintf(&b, "- **Risk level**: %s\n", r.RiskLevel)
	fmt.Fprintf(&b, "- **Words**: %d, characters: %d, segments analyzed: %d\n\n",
		r.WordCount, r.CharacterCount, r.SegmentsAnalyzed)

	if len(r.Matches) == 0 {
		b.WriteString("No matches found.\n")
	} else {
		fmt.Fprintf(&b, "## Matches (%d)\n\n", len(r.Matches))
		for i, m := range r.Matches {
			fmt.Fprintf(&b, "### %d. %s (%.0f%%, %s)\n\n", i+1, m.Source.Title, m.Similarity*100, m.MatchType)
			fmt.Fprintf(&b, "> %s\n\n", m.OriginalText)
			fmt.Fprintf(&b, "Matched against: %s\n\n", m.MatchedText)
			if m.Source.URL != "" {
				fmt.Fprintf(&b, "Source: <%s>\n\n", m.Source.URL)
			}
		}
	}

	if len(r.Sources) > 0 {
		fmt.Fprintf(&b, "## Sources (%d)\n\n", len(r.Sources))
		for _, src := range r.Sources {
			fmt.Fprintf(&b, "- [%s] %s (%s)", src.ID, src.Title, src.SourceType)
			if src.URL != "" {
				fmt.Fprintf(&b, " <%s>", src.URL)
			}
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
		b.WriteString("## Bibliography (APA)\n\n")
		b.WriteString(Bibliography(r.Sources, StyleAPA, r.AnalyzedAt))
		b.WriteByte('\n')
	}

	if r.LLM != nil && r.LLM.SummaryMD != "" {
		b.WriteString("\n## Summary\n\n")
		b.WriteString(r.LLM.SummaryMD)
		b.WriteByte('\n')
	}

	return b.String()
}

// PrintSummary writes a short colored summary for terminal use
func PrintSummary(w io.Writer, r *model.Report) {
	bold := color.New(color.Bold)
	riskColor := color.New(color.FgGreen)
	switch r.RiskLevel {
	case model.RiskMedium:
		riskColor = color.New(color.FgYellow)
	case model.RiskHigh:
		riskColor = color.New(color.FgRed)
	}

	_, _ = bold.Fprintf(w, "%s\n", r.Filename)
	fmt.Fprintf(w, "  similarity: %.1f%%  risk: ", r.OverallSimilarity*100)
	_, _ = riskColor.Fprintf(w, "%s\n", r.RiskLevel)
	fmt.Fprintf(w, "  matches: %d  sources: %d  segments: %d\n",
		len(r.Matches), len(r.Sources), r.SegmentsAnalyzed)

	for _, m := range r.Matches {
		fmt.Fprintf(w, "  [%4.0f%% %-13s] %q\n", m.Similarity*100, m.MatchType, clipText(m.OriginalText, 60))
	}
}

func clipText(text string, n int) string {
	if len(text) <= n {
		return text
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n] + "..."
}
