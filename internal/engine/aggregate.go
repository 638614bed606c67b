package engine

import (
	"sort"

	"github.com/oluyemi-1/plagiarism-backend/internal/model"
)

// Aggregate folds the resolved matches into an overall score. The
// overall similarity is coverage-based: the union of character ranges
// touched by at least one match, divided by the document length, with
// overlapping regions counted once.
func Aggregate(matches []model.Match, segments []model.Segment, docLength int) model.AnalysisResult {
	overall := 0.0
	if docLength > 0 && len(matches) > 0 {
		overall = float64(coveredBytes(matches)) / float64(docLength)
	}
	if overall < 0 {
		overall = 0
	}
	if overall > 1 {
		overall = 1
	}

	return model.AnalysisResult{
		OverallSimilarity: overall,
		RiskLevel:         model.ClassifyRisk(overall),
		Matches:           matches,
		Sources:           collectSources(matches),
		SegmentsAnalyzed:  len(segments),
		MatchesFound:      len(matches),
	}
}

// coveredBytes computes the size of the union of all match ranges
func coveredBytes(matches []model.Match) int {
	type span struct{ start, end int }
	spans := make([]span, 0, len(matches))
	for _, m := range matches {
		if m.EndIndex > m.StartIndex {
			spans = append(spans, span{m.StartIndex, m.EndIndex})
		}
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end < spans[j].end
	})

	covered := 0
	currentEnd := -1
	for _, s := range spans {
		if s.start >= currentEnd {
			covered += s.end - s.start
			currentEnd = s.end
			continue
		}
		if s.end > currentEnd {
			covered += s.end - currentEnd
			currentEnd = s.end
		}
	}
	return covered
}

// collectSources builds the deduplicated source set referenced by the
// matches, unique by normalized (title, url), in match order
func collectSources(matches []model.Match) []model.Source {
	seen := make(map[string]bool, len(matches))
	sources := make([]model.Source, 0, len(matches))
	for _, m := range matches {
		key := model.SourceKey(m.Source.Title, m.Source.URL)
		if seen[key] {
			continue
		}
		seen[key] = true
		sources = append(sources, m.Source)
	}
	return sources
}
