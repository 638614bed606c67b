package model

import "time"

// MatchType classifies how closely a match tracks its source text
type MatchType string

const (
	MatchExact        MatchType = "exact"         // similarity >= 0.9
	MatchNearExact    MatchType = "near_exact"    // similarity >= 0.75
	MatchParaphrased  MatchType = "paraphrased"   // similarity >= 0.6
	MatchCommonPhrase MatchType = "common_phrase" // generic academic filler, fixed score
)

// ClassifyMatch maps a similarity ratio onto a match tier.
// Callers only pass values at or above the similarity threshold.
func ClassifyMatch(similarity float64) MatchType {
	switch {
	case similarity >= 0.9:
		return MatchExact
	case similarity >= 0.75:
		return MatchNearExact
	default:
		return MatchParaphrased
	}
}

// RiskLevel is the coarse classification derived from overall similarity
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"    // overall < 0.10
	RiskMedium RiskLevel = "Medium" // 0.10 <= overall < 0.40
	RiskHigh   RiskLevel = "High"   // overall >= 0.40
)

// ClassifyRisk maps an overall similarity value onto its risk tier
func ClassifyRisk(overall float64) RiskLevel {
	switch {
	case overall >= 0.40:
		return RiskHigh
	case overall >= 0.10:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Match is a scored association between one segment and one candidate
type Match struct {
	SegmentID    int       `json:"segmentId"`
	OriginalText string    `json:"originalText"` // Verbatim slice of the original document
	MatchedText  string    `json:"matchedText"`  // The candidate snippet or known phrase
	Similarity   float64   `json:"similarity"`   // In [0,1]
	MatchType    MatchType `json:"matchType"`
	StartIndex   int       `json:"startIndex"` // Original-text byte offset (inclusive)
	EndIndex     int       `json:"endIndex"`   // Original-text byte offset (exclusive)
	Source       Source    `json:"source"`
}

// AnalysisResult is the engine's output for a single document
type AnalysisResult struct {
	OverallSimilarity float64   `json:"overallSimilarity"`
	RiskLevel         RiskLevel `json:"riskLevel"`
	Matches           []Match   `json:"matches"`
	Sources           []Source  `json:"sources"`
	SegmentsAnalyzed  int       `json:"segmentsAnalyzed"`
	MatchesFound      int       `json:"matchesFound"`
}

// AnalysisSummary gives per-type counts for reporting
type AnalysisSummary struct {
	TotalMatches      int               `json:"totalMatches"`
	SourcesFound      int               `json:"sourcesFound"`
	HighestSimilarity float64           `json:"highestSimilarity"`
	MatchTypes        map[MatchType]int `json:"matchTypes"`
}

// Report is the externally visible analysis artifact.
// The JSON field names are the contract other components rely on.
type Report struct {
	DocumentID        string          `json:"documentId"`
	OverallSimilarity float64         `json:"overallSimilarity"`
	RiskLevel         RiskLevel       `json:"riskLevel"`
	Status            string          `json:"status"`
	AnalyzedAt        time.Time       `json:"analyzedAt"`
	Filename          string          `json:"filename"`
	WordCount         int             `json:"wordCount"`
	CharacterCount    int             `json:"characterCount"`
	SegmentsAnalyzed  int             `json:"segmentsAnalyzed"`
	Matches           []Match         `json:"matches"`
	Sources           []Source        `json:"sources"`
	Summary           AnalysisSummary `json:"summary"`

	LLM *LLMSummary `json:"llm,omitempty"` // Optional prose summary, never affects scoring
}

// LLMSummary holds an optional model-generated summary of a finished report
type LLMSummary struct {
	Enabled   bool   `json:"enabled"`
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	SummaryMD string `json:"summary_md,omitempty"`
}

// Summarize builds the per-type counts for a resolved match list
func Summarize(matches []Match, sources []Source) AnalysisSummary {
	summary := AnalysisSummary{
		TotalMatches: len(matches),
		SourcesFound: len(sources),
		MatchTypes: map[MatchType]int{
			MatchExact:        0,
			MatchNearExact:    0,
			MatchParaphrased:  0,
			MatchCommonPhrase: 0,
		},
	}
	for _, m := range matches {
		summary.MatchTypes[m.MatchType]++
		if m.Similarity > summary.HighestSimilarity {
			summary.HighestSimilarity = m.Similarity
		}
	}
	return summary
}
