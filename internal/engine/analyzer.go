package engine

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oluyemi-1/plagiarism-backend/internal/corpus"
	"github.com/oluyemi-1/plagiarism-backend/internal/model"
	"github.com/oluyemi-1/plagiarism-backend/internal/search"
	"github.com/oluyemi-1/plagiarism-backend/internal/similarity"
)

// Retriever is the coordinator-shaped dependency of the analyzer. A nil
// retriever runs the analysis against the static corpus only.
type Retriever interface {
	Retrieve(ctx context.Context, segments []model.Segment) (*search.Retrieval, error)
}

// Summarizer generates an optional prose summary of a finished report.
// It runs after scoring and never feeds back into it.
type Summarizer interface {
	Enabled() bool
	Summarize(ctx context.Context, report *model.Report) (*model.LLMSummary, error)
}

// Analyzer orchestrates one document analysis: segmentation, corpus and
// provider candidate collection, similarity scoring, match resolution
// and coverage aggregation. Analyzers hold only read-only state and are
// safe for concurrent use.
type Analyzer struct {
	segmenter  *Segmenter
	corpus     *corpus.Matcher
	retriever  Retriever
	scorer     *similarity.Scorer
	summarizer Summarizer
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithRetriever attaches a live candidate retriever
func WithRetriever(r Retriever) Option {
	return func(a *Analyzer) { a.retriever = r }
}

// WithSummarizer attaches an optional report summarizer
func WithSummarizer(s Summarizer) Option {
	return func(a *Analyzer) { a.summarizer = s }
}

// NewAnalyzer creates an analyzer over the given corpus and config
func NewAnalyzer(m *corpus.Matcher, cfg model.AnalysisConfig, opts ...Option) *Analyzer {
	a := &Analyzer{
		segmenter: NewSegmenter(cfg.MinWordCount),
		corpus:    m,
		scorer:    similarity.NewScorer(cfg.SimilarityThreshold),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs the full pipeline for one document. The only errors it
// returns are a ValidationError for unanalyzable text, the caller's
// context error, and an InternalError for unexpected scoring failures.
func (a *Analyzer) Analyze(ctx context.Context, text, filename string) (*model.Report, error) {
	doc, err := a.segmenter.Segment(text)
	if err != nil {
		return nil, err
	}

	matches := a.corpusMatches(doc)

	if a.retriever != nil {
		retrieval, err := a.retriever.Retrieve(ctx, doc.Segments)
		if err != nil {
			return nil, err
		}
		matches = append(matches, a.scoreRetrieved(doc, retrieval)...)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolved := ResolveMatches(matches)
	result := Aggregate(resolved, doc.Segments, len(text))
	if result.OverallSimilarity < 0 || result.OverallSimilarity > 1 {
		return nil, &model.InternalError{
			Stage: "aggregate",
			Err:   fmt.Errorf("overall similarity %v out of range", result.OverallSimilarity),
		}
	}

	report := &model.Report{
		DocumentID:        uuid.NewString(),
		OverallSimilarity: result.OverallSimilarity,
		RiskLevel:         result.RiskLevel,
		Status:            "completed",
		AnalyzedAt:        time.Now().UTC(),
		Filename:          filename,
		WordCount:         len(strings.Fields(text)),
		CharacterCount:    len(text),
		SegmentsAnalyzed:  result.SegmentsAnalyzed,
		Matches:           result.Matches,
		Sources:           result.Sources,
		Summary:           model.Summarize(result.Matches, result.Sources),
	}

	if a.summarizer != nil && a.summarizer.Enabled() {
		llmSummary, err := a.summarizer.Summarize(ctx, report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: report summary generation failed: %v\n", err)
		} else if llmSummary != nil {
			report.LLM = llmSummary
		}
	}

	return report, nil
}

// corpusMatches maps known-phrase hits in the normalized document back
// to original-text regions and their covering segments. Hits landing
// entirely in discarded (sub-threshold) text are dropped.
func (a *Analyzer) corpusMatches(doc *Document) []model.Match {
	if a.corpus == nil {
		return nil
	}

	hits := a.corpus.FindAll(doc.Normalized)
	matches := make([]model.Match, 0, len(hits))
	for _, hit := range hits {
		start, end := doc.OriginalRange(hit.Start, hit.End)
		if end <= start {
			continue
		}
		seg, ok := doc.SegmentAt(start, end)
		if !ok {
			continue
		}
		matches = append(matches, model.Match{
			SegmentID:    seg.ID,
			OriginalText: doc.Text[start:end],
			MatchedText:  hit.Phrase,
			Similarity:   hit.Similarity,
			MatchType:    hit.Type,
			StartIndex:   start,
			EndIndex:     end,
			Source:       hit.Source,
		})
	}
	return matches
}

// scoreRetrieved scores every (segment, candidate) pair from the
// retrieved pool; pairs below the threshold never become matches
func (a *Analyzer) scoreRetrieved(doc *Document, retrieval *search.Retrieval) []model.Match {
	var matches []model.Match
	for _, seg := range doc.Segments {
		for _, cand := range retrieval.BySegment[seg.ID] {
			ratio := a.scorer.Ratio(seg.NormalizedText, cand.Snippet)
			if !a.scorer.Accepts(ratio) {
				continue
			}
			matches = append(matches, model.Match{
				SegmentID:    seg.ID,
				OriginalText: seg.Text,
				MatchedText:  cand.Snippet,
				Similarity:   ratio,
				MatchType:    model.ClassifyMatch(ratio),
				StartIndex:   seg.StartOffset,
				EndIndex:     seg.EndOffset,
				Source:       model.SourceFromCandidate(cand),
			})
		}
	}
	return matches
}
