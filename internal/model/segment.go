package model

// Segment represents one analyzable unit of document text
type Segment struct {
	ID             int    `json:"id"`                  // 0-based position in the document
	Text           string `json:"text"`                // Verbatim slice of the original text
	NormalizedText string `json:"normalizedText"`      // Whitespace-collapsed copy used for matching
	StartOffset    int    `json:"startOffset"`         // Byte offset into the original text (inclusive)
	EndOffset      int    `json:"endOffset"`           // Byte offset into the original text (exclusive)
	WordCount      int    `json:"wordCount"`           // Words in the normalized text
}

// Len returns the number of original-text bytes the segment spans
func (s Segment) Len() int {
	return s.EndOffset - s.StartOffset
}

// Contains reports whether the given original-text offset falls inside the segment
func (s Segment) Contains(offset int) bool {
	return offset >= s.StartOffset && offset < s.EndOffset
}

// Overlaps reports whether the half-open range [start, end) touches the segment
func (s Segment) Overlaps(start, end int) bool {
	return start < s.EndOffset && end > s.StartOffset
}
