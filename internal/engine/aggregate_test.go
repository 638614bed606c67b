package engine

import (
	"math"
	"testing"

	"github.com/oluyemi-1/plagiarism-backend/internal/model"
)

func TestAggregate_NoMatches(t *testing.T) {
	result := Aggregate(nil, []model.Segment{{ID: 0}}, 500)

	if result.OverallSimilarity != 0 {
		t.Errorf("overall = %v, want 0", result.OverallSimilarity)
	}
	if result.RiskLevel != model.RiskLow {
		t.Errorf("risk = %v, want Low", result.RiskLevel)
	}
	if result.MatchesFound != 0 || len(result.Sources) != 0 {
		t.Errorf("expected empty matches and sources")
	}
}

func TestAggregate_Coverage(t *testing.T) {
	matches := []model.Match{
		mkMatch(0, 0, 50, 0.95, "a"),
		mkMatch(1, 50, 100, 0.8, "b"),
	}

	result := Aggregate(matches, nil, 200)
	if math.Abs(result.OverallSimilarity-0.5) > 1e-9 {
		t.Errorf("overall = %v, want 0.5", result.OverallSimilarity)
	}
	if result.RiskLevel != model.RiskHigh {
		t.Errorf("risk = %v, want High", result.RiskLevel)
	}
}

func TestAggregate_OverlapCountedOnce(t *testing.T) {
	matches := []model.Match{
		mkMatch(0, 0, 60, 0.95, "a"),
		mkMatch(0, 40, 80, 0.7, "b"), // overlaps [40,60)
	}

	result := Aggregate(matches, nil, 100)
	if math.Abs(result.OverallSimilarity-0.8) > 1e-9 {
		t.Errorf("overall = %v, want 0.8 (union of [0,80))", result.OverallSimilarity)
	}
}

func TestAggregate_NestedSpans(t *testing.T) {
	matches := []model.Match{
		mkMatch(0, 0, 100, 0.95, "outer"),
		mkMatch(0, 20, 40, 0.7, "inner"),
	}

	result := Aggregate(matches, nil, 200)
	if math.Abs(result.OverallSimilarity-0.5) > 1e-9 {
		t.Errorf("overall = %v, want 0.5", result.OverallSimilarity)
	}
}

func TestAggregate_ClampedToOne(t *testing.T) {
	matches := []model.Match{mkMatch(0, 0, 500, 0.95, "a")}

	result := Aggregate(matches, nil, 100)
	if result.OverallSimilarity != 1.0 {
		t.Errorf("overall = %v, want clamped 1.0", result.OverallSimilarity)
	}
}

func TestAggregate_RiskThresholds(t *testing.T) {
	tests := []struct {
		covered int
		total   int
		want    model.RiskLevel
	}{
		{5, 100, model.RiskLow},     // 0.05
		{10, 100, model.RiskMedium}, // exactly 0.10
		{39, 100, model.RiskMedium}, // 0.39
		{40, 100, model.RiskHigh},   // exactly 0.40
		{90, 100, model.RiskHigh},
	}

	for _, tt := range tests {
		matches := []model.Match{mkMatch(0, 0, tt.covered, 0.95, "a")}
		result := Aggregate(matches, nil, tt.total)
		if result.RiskLevel != tt.want {
			t.Errorf("coverage %d/%d: risk = %v, want %v", tt.covered, tt.total, result.RiskLevel, tt.want)
		}
	}
}

func TestAggregate_Monotonicity(t *testing.T) {
	base := []model.Match{mkMatch(0, 0, 30, 0.95, "a")}
	before := Aggregate(base, nil, 200).OverallSimilarity

	// A match over a previously uncovered region strictly increases coverage
	extended := append([]model.Match{}, base...)
	extended = append(extended, mkMatch(1, 100, 150, 0.8, "b"))
	after := Aggregate(extended, nil, 200).OverallSimilarity
	if after <= before {
		t.Errorf("coverage did not increase: %v -> %v", before, after)
	}

	// A match inside an already covered region leaves the score unchanged
	redundant := append([]model.Match{}, base...)
	redundant = append(redundant, mkMatch(0, 5, 25, 0.99, "c"))
	same := Aggregate(redundant, nil, 200).OverallSimilarity
	if same != before {
		t.Errorf("fully covered region changed score: %v -> %v", before, same)
	}
}

func TestAggregate_SourcesDeduplicated(t *testing.T) {
	shared := model.Source{ID: "s1", Title: "Shared Title", URL: "https://example.com/x"}
	matches := []model.Match{
		{SegmentID: 0, StartIndex: 0, EndIndex: 10, Similarity: 0.9, Source: shared},
		{SegmentID: 1, StartIndex: 20, EndIndex: 30, Similarity: 0.8, Source: shared},
		{SegmentID: 2, StartIndex: 40, EndIndex: 50, Similarity: 0.7,
			Source: model.Source{ID: "s2", Title: "Other", URL: "https://example.com/y"}},
	}

	result := Aggregate(matches, nil, 100)
	if len(result.Sources) != 2 {
		t.Errorf("sources = %d, want 2", len(result.Sources))
	}
}
