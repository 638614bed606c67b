// Package corpus implements the static known-phrase matcher. The corpus
// is loaded once at startup, validated, and never mutated afterwards; it
// is safe for unlimited concurrent readers and never touches the network.
package corpus

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/oluyemi-1/plagiarism-backend/internal/model"
)

const (
	// Similarity assigned to exact containment of a known phrase
	exactPhraseSimilarity = 0.95
	// Fixed similarity for generic academic filler
	commonPhraseSimilarity = 0.70
)

// SourceMeta describes where a corpus entry's phrases come from
type SourceMeta struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	URL       string `yaml:"url"`
	Author    string `yaml:"author"`
	Domain    string `yaml:"domain"`
	Type      string `yaml:"type"`
	Published string `yaml:"published"`
}

// Entry maps one topic to a source and its known phrases
type Entry struct {
	Topic   string     `yaml:"topic"`
	Source  SourceMeta `yaml:"source"`
	Phrases []string   `yaml:"phrases"`
}

// File is the on-disk corpus format
type File struct {
	Entries       []Entry  `yaml:"entries"`
	CommonPhrases []string `yaml:"common_phrases"`
}

// Hit is one phrase occurrence found in a document. Offsets index the
// text that was searched; the engine maps them back to the original.
type Hit struct {
	Phrase     string
	Start      int
	End        int
	Similarity float64
	Type       model.MatchType
	Source     model.Source
}

// Matcher holds the immutable corpus
type Matcher struct {
	entries       []Entry
	commonPhrases []string
	commonSource  model.Source
}

// NewMatcher validates the corpus and builds a matcher. Malformed corpus
// data is a startup error, never a per-document one.
func NewMatcher(entries []Entry, commonPhrases []string) (*Matcher, error) {
	for i, e := range entries {
		if e.Topic == "" {
			return nil, fmt.Errorf("corpus entry %d: missing topic", i)
		}
		if e.Source.Title == "" || e.Source.URL == "" {
			return nil, fmt.Errorf("corpus entry %q: source requires title and url", e.Topic)
		}
		if len(e.Phrases) == 0 {
			return nil, fmt.Errorf("corpus entry %q: no phrases", e.Topic)
		}
		for _, p := range e.Phrases {
			if strings.TrimSpace(p) == "" {
				return nil, fmt.Errorf("corpus entry %q: empty phrase", e.Topic)
			}
		}
	}

	return &Matcher{
		entries:       entries,
		commonPhrases: commonPhrases,
		commonSource: model.Source{
			ID:         "common_phrase",
			Title:      "Common Academic Phrases",
			URL:        "https://academic-writing.edu/common-phrases",
			Domain:     "academic-writing.edu",
			Author:     "Academic Writing Guide",
			SourceType: "reference",
		},
	}, nil
}

// Load reads a corpus file in YAML format
func Load(path string) (*Matcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}

	phrases := file.CommonPhrases
	if len(phrases) == 0 {
		phrases = defaultCommonPhrases
	}

	return NewMatcher(file.Entries, phrases)
}

// FindAll searches the normalized document text for every known phrase
// and every common filler phrase, case-insensitively. The whole text is
// searched rather than individual segments so phrases spanning segment
// boundaries still hit.
func (m *Matcher) FindAll(normalized string) []Hit {
	// Lowercasing can change a rune's encoded length, so hits are found
	// in lowered coordinates and translated back before they are returned
	lower, offsets := foldCase(normalized)

	remap := func(found []Hit) []Hit {
		for i := range found {
			found[i].Start = offsets[found[i].Start]
			found[i].End = offsets[found[i].End]
		}
		return found
	}

	var hits []Hit
	for _, entry := range m.entries {
		source := model.Source{
			ID:         entry.Source.ID,
			Title:      entry.Source.Title,
			URL:        entry.Source.URL,
			Domain:     entry.Source.Domain,
			Author:     entry.Source.Author,
			SourceType: entry.Source.Type,
			Published:  entry.Source.Published,
		}
		if source.ID == "" {
			source.ID = model.SourceID(source.URL)
		}
		for _, phrase := range entry.Phrases {
			hits = append(hits, remap(findOccurrences(lower, phrase, exactPhraseSimilarity, model.MatchExact, source))...)
		}
	}

	for _, phrase := range m.commonPhrases {
		hits = append(hits, remap(findOccurrences(lower, phrase, commonPhraseSimilarity, model.MatchCommonPhrase, m.commonSource))...)
	}

	return hits
}

// findOccurrences reports every non-overlapping occurrence of phrase
func findOccurrences(lower, phrase string, similarity float64, matchType model.MatchType, source model.Source) []Hit {
	needle := strings.ToLower(strings.TrimSpace(phrase))
	if needle == "" {
		return nil
	}

	var hits []Hit
	from := 0
	for {
		idx := strings.Index(lower[from:], needle)
		if idx < 0 {
			break
		}
		start := from + idx
		hits = append(hits, Hit{
			Phrase:     phrase,
			Start:      start,
			End:        start + len(needle),
			Similarity: similarity,
			Type:       matchType,
			Source:     source,
		})
		from = start + len(needle)
	}
	return hits
}

// foldCase lowercases text rune by rune, keeping a per-byte map from
// the lowered string back to byte offsets in the input. The map has one
// extra entry so exclusive end offsets translate too.
func foldCase(text string) (string, []int) {
	var b strings.Builder
	b.Grow(len(text))
	offsets := make([]int, 0, len(text)+1)

	for i, r := range text {
		low := unicode.ToLower(r)
		b.WriteRune(low)
		for k := 0; k < utf8.RuneLen(low); k++ {
			offsets = append(offsets, i)
		}
	}
	offsets = append(offsets, len(text))

	return b.String(), offsets
}
