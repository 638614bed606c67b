package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/oluyemi-1/plagiarism-backend/internal/model"
)

// Segmenter splits document text into analyzable units
type Segmenter struct {
	minWords int
}

// NewSegmenter creates a segmenter with the given minimum word count
func NewSegmenter(minWords int) *Segmenter {
	if minWords <= 0 {
		minWords = 10
	}
	return &Segmenter{minWords: minWords}
}

// Document holds the segmented text plus the normalized copy used for
// phrase matching. Offsets in segments and matches always index the
// original text so reports can quote the source verbatim.
type Document struct {
	Text       string
	Normalized string
	Segments   []model.Segment

	offsets []int // normalized byte index -> original byte index
}

// OriginalRange maps a half-open range in the normalized text back to
// the corresponding range in the original text
func (d *Document) OriginalRange(normStart, normEnd int) (int, int) {
	if normStart < 0 || normEnd <= normStart || normEnd > len(d.offsets) {
		return 0, 0
	}
	return d.offsets[normStart], d.offsets[normEnd-1] + 1
}

// SegmentAt returns the segment overlapping the given original-text
// range, preferring the one containing its start
func (d *Document) SegmentAt(start, end int) (model.Segment, bool) {
	for _, seg := range d.Segments {
		if seg.Contains(start) {
			return seg, true
		}
	}
	for _, seg := range d.Segments {
		if seg.Overlaps(start, end) {
			return seg, true
		}
	}
	return model.Segment{}, false
}

// Segment normalizes the document and splits it into ordered,
// non-overlapping segments. It fails with a ValidationError when no
// fragment clears the minimum word count.
func (s *Segmenter) Segment(text string) (*Document, error) {
	normalized, offsets := normalizeWhitespace(text)

	doc := &Document{
		Text:       text,
		Normalized: normalized,
		offsets:    offsets,
	}

	id := 0
	fragStart := 0
	i := 0
	for i <= len(normalized) {
		atEnd := i == len(normalized)
		var r rune
		var size int
		if !atEnd {
			r, size = utf8.DecodeRuneInString(normalized[i:])
		}

		if atEnd || isSentenceEnd(r) {
			if seg, ok := s.buildSegment(doc, id, fragStart, i); ok {
				doc.Segments = append(doc.Segments, seg)
				id++
			}
			// Skip the whole punctuation run
			for i < len(normalized) {
				r, size = utf8.DecodeRuneInString(normalized[i:])
				if !isSentenceEnd(r) {
					break
				}
				i += size
			}
			if atEnd {
				break
			}
			fragStart = i
			continue
		}
		i += size
	}

	if len(doc.Segments) == 0 {
		return nil, &model.ValidationError{
			Reason: "document is empty or too short to analyze",
		}
	}

	return doc, nil
}

// buildSegment trims a normalized fragment and maps it back to the
// original text; fragments under the word threshold are discarded
func (s *Segmenter) buildSegment(doc *Document, id, normStart, normEnd int) (model.Segment, bool) {
	// Trim surrounding spaces in normalized coordinates
	for normStart < normEnd && doc.Normalized[normStart] == ' ' {
		normStart++
	}
	for normEnd > normStart && doc.Normalized[normEnd-1] == ' ' {
		normEnd--
	}
	if normStart >= normEnd {
		return model.Segment{}, false
	}

	fragment := doc.Normalized[normStart:normEnd]
	words := len(strings.Fields(fragment))
	if words < s.minWords {
		return model.Segment{}, false
	}

	start, end := doc.OriginalRange(normStart, normEnd)
	return model.Segment{
		ID:             id,
		Text:           doc.Text[start:end],
		NormalizedText: fragment,
		StartOffset:    start,
		EndOffset:      end,
		WordCount:      words,
	}, true
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// normalizeWhitespace collapses whitespace runs to single spaces and
// trims the result, keeping a per-byte map back to the original text
func normalizeWhitespace(text string) (string, []int) {
	var b strings.Builder
	b.Grow(len(text))
	offsets := make([]int, 0, len(text))

	pendingSpace := -1 // original offset of the first space in the current run
	for i, r := range text {
		if unicode.IsSpace(r) {
			if pendingSpace < 0 {
				pendingSpace = i
			}
			continue
		}
		if pendingSpace >= 0 && b.Len() > 0 {
			b.WriteByte(' ')
			offsets = append(offsets, pendingSpace)
		}
		pendingSpace = -1

		size := utf8.RuneLen(r)
		b.WriteRune(r)
		for k := 0; k < size; k++ {
			offsets = append(offsets, i+k)
		}
	}

	return b.String(), offsets
}
