package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oluyemi-1/plagiarism-backend/internal/model"
)

func TestDefault_Validates(t *testing.T) {
	m := Default()
	if m == nil {
		t.Fatal("Default returned nil")
	}
}

func TestFindAll_ExactPhrase(t *testing.T) {
	m := Default()
	text := "Artificial intelligence and machine learning have revolutionized the world."

	hits := m.FindAll(text)

	var exact []Hit
	for _, h := range hits {
		if h.Type == model.MatchExact {
			exact = append(exact, h)
		}
	}
	if len(exact) != 1 {
		t.Fatalf("expected 1 exact hit, got %d", len(exact))
	}

	h := exact[0]
	if h.Similarity != 0.95 {
		t.Errorf("similarity = %v, want 0.95", h.Similarity)
	}
	if got := text[h.Start:h.End]; got != "Artificial intelligence and machine learning have revolutionized" {
		t.Errorf("hit range slices to %q", got)
	}
	if h.Source.ID != "src_001" {
		t.Errorf("source = %q, want src_001", h.Source.ID)
	}
}

func TestFindAll_CaseInsensitive(t *testing.T) {
	m := Default()

	hits := m.FindAll("MACHINE LEARNING ALGORITHMS are everywhere now")
	if len(hits) == 0 {
		t.Fatal("expected hit on uppercase text")
	}
}

func TestFindAll_CaseFoldChangesByteLength(t *testing.T) {
	m := Default()
	// U+0130 lowercases to a 1-byte rune, shrinking the lowered text by
	// one byte per occurrence. Offsets must still slice the input exactly.
	text := "İİİİİ harbor lights. Artificial intelligence and machine learning have revolutionized the world."

	var exact []Hit
	for _, h := range m.FindAll(text) {
		if h.Type == model.MatchExact {
			exact = append(exact, h)
		}
	}
	if len(exact) != 1 {
		t.Fatalf("expected 1 exact hit, got %d", len(exact))
	}

	h := exact[0]
	want := "Artificial intelligence and machine learning have revolutionized"
	if got := text[h.Start:h.End]; got != want {
		t.Errorf("hit range slices to %q, want %q", got, want)
	}
}

func TestFindAll_CommonPhrase(t *testing.T) {
	m := Default()

	hits := m.FindAll("research shows that nothing else here matches anything")
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	h := hits[0]
	if h.Type != model.MatchCommonPhrase {
		t.Errorf("type = %v, want common_phrase", h.Type)
	}
	if h.Similarity != 0.70 {
		t.Errorf("similarity = %v, want 0.70", h.Similarity)
	}
	if h.Source.ID != "common_phrase" {
		t.Errorf("source = %q", h.Source.ID)
	}
}

func TestFindAll_MultipleOccurrences(t *testing.T) {
	m := Default()
	text := "machine learning algorithms here, and machine learning algorithms there"

	var count int
	for _, h := range m.FindAll(text) {
		if h.Phrase == "machine learning algorithms" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected 2 occurrences, got %d", count)
	}
}

func TestFindAll_NoMatches(t *testing.T) {
	m := Default()
	if hits := m.FindAll("completely unrelated text about gardening tulips"); len(hits) != 0 {
		t.Errorf("expected no hits, got %d", len(hits))
	}
}

func TestNewMatcher_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{"missing topic", []Entry{{Source: SourceMeta{Title: "t", URL: "u"}, Phrases: []string{"p"}}}},
		{"missing source", []Entry{{Topic: "t", Phrases: []string{"p"}}}},
		{"no phrases", []Entry{{Topic: "t", Source: SourceMeta{Title: "t", URL: "u"}}}},
		{"empty phrase", []Entry{{Topic: "t", Source: SourceMeta{Title: "t", URL: "u"}, Phrases: []string{"  "}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMatcher(tt.entries, nil); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.yaml")

	content := `entries:
  - topic: testing
    source:
      id: src_test
      title: Testing Handbook
      url: https://example.org/testing
      domain: example.org
      type: academic
    phrases:
      - "table driven tests are the backbone"
common_phrases:
  - "as a matter of fact"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	hits := m.FindAll("everyone agrees table driven tests are the backbone of go code")
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].Source.ID != "src_test" {
		t.Errorf("source = %q", hits[0].Source.ID)
	}
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("entries:\n  - topic: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for malformed corpus")
	}
}
