// Package llm generates an optional prose summary of a finished report
// through the OpenAI Chat Completions API. The summary is presentation
// only and never feeds back into scoring.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/oluyemi-1/plagiarism-backend/internal/model"
)

const (
	defaultModel   = openai.GPT4oMini
	defaultTimeout = 30 * time.Second
	maxTokens      = 600
)

// chatClient is the slice of the OpenAI client the summarizer uses
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Summarizer turns a finished report into a short prose assessment
type Summarizer struct {
	client chatClient
	model  string
}

// NewSummarizer creates the OpenAI-backed summarizer. A missing API key
// yields a disabled summarizer rather than an error, so the pipeline
// does not depend on LLM configuration.
func NewSummarizer(cfg model.LLMConfig) *Summarizer {
	if cfg.APIKey == "" {
		return &Summarizer{}
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	m := cfg.Model
	if m == "" {
		m = defaultModel
	}
	return &Summarizer{
		client: openai.NewClientWithConfig(clientConfig),
		model:  m,
	}
}

// Enabled reports whether a summary will be generated
func (s *Summarizer) Enabled() bool {
	return s != nil && s.client != nil
}

// Summarize generates the prose summary for a finished report
func (s *Summarizer) Summarize(ctx context.Context, report *model.Report) (*model.LLMSummary, error) {
	if !s.Enabled() {
		return &model.LLMSummary{Enabled: false}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You summarize plagiarism analysis reports. Describe the findings " +
					"factually; cite only the sources listed in the report.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(report),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize report: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("summarize report: empty response")
	}

	return &model.LLMSummary{
		Enabled:   true,
		Provider:  "openai",
		Model:     s.model,
		SummaryMD: strings.TrimSpace(resp.Choices[0].Message.Content),
	}, nil
}

// buildPrompt flattens the report findings into the user message
func buildPrompt(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Document: %s\n", report.Filename)
	fmt.Fprintf(&b, "Overall similarity: %.1f%% (risk: %s)\n", report.OverallSimilarity*100, report.RiskLevel)
	fmt.Fprintf(&b, "Segments analyzed: %d, matches: %d\n\n", report.SegmentsAnalyzed, len(report.Matches))

	if len(report.Matches) == 0 {
		b.WriteString("No matches were found.\n")
	} else {
		b.WriteString("Matches:\n")
		for _, m := range report.Matches {
			fmt.Fprintf(&b, "- %.0f%% %s: %q (source: %s, %s)\n",
				m.Similarity*100, m.MatchType, m.OriginalText, m.Source.Title, m.Source.URL)
		}
	}

	b.WriteString("\nWrite a short Markdown summary (3-5 sentences) of these findings.")
	return b.String()
}
