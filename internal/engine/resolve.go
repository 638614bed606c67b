package engine

import (
	"sort"

	"github.com/oluyemi-1/plagiarism-backend/internal/model"
)

type regionKey struct {
	segmentID int
	start     int
	end       int
}

// ResolveMatches deduplicates raw matches so the same document region is
// never reported twice: when several candidates cleared the threshold on
// one (segment, start, end) region, the highest-similarity match wins.
// The result is sorted by descending similarity, ties broken by
// ascending start offset for determinism.
func ResolveMatches(matches []model.Match) []model.Match {
	best := make(map[regionKey]model.Match, len(matches))
	order := make([]regionKey, 0, len(matches))

	for _, m := range matches {
		key := regionKey{segmentID: m.SegmentID, start: m.StartIndex, end: m.EndIndex}
		existing, ok := best[key]
		if !ok {
			best[key] = m
			order = append(order, key)
			continue
		}
		if m.Similarity > existing.Similarity {
			best[key] = m
		}
	}

	resolved := make([]model.Match, 0, len(order))
	for _, key := range order {
		resolved = append(resolved, best[key])
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		if resolved[i].Similarity != resolved[j].Similarity {
			return resolved[i].Similarity > resolved[j].Similarity
		}
		return resolved[i].StartIndex < resolved[j].StartIndex
	})

	return resolved
}
