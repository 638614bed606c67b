package similarity

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "Hello World", "hello world"},
		{"punctuation stripped", "Hello, World! (again)", "hello world again"},
		{"whitespace collapsed", "a \t b\n\nc", "a b c"},
		{"leading and trailing", "  trimmed  ", "trimmed"},
		{"digits kept", "86 billion neurons.", "86 billion neurons"},
		{"empty", "", ""},
		{"only punctuation", "?!...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRatio_Identity(t *testing.T) {
	texts := []string{
		"artificial intelligence and machine learning",
		"a",
		"the quick brown fox jumps over the lazy dog",
	}

	for _, text := range texts {
		if got := Ratio(text, text); got != 1.0 {
			t.Errorf("Ratio(%q, same) = %v, want 1.0", text, got)
		}
	}
}

func TestRatio_Symmetry(t *testing.T) {
	a := "machine learning enables computers to learn"
	b := "computers learn through machine learning techniques"

	if Ratio(a, b) != Ratio(b, a) {
		t.Errorf("Ratio not symmetric: %v vs %v", Ratio(a, b), Ratio(b, a))
	}
}

func TestRatio_Empty(t *testing.T) {
	if got := Ratio("nonempty", ""); got != 0.0 {
		t.Errorf("Ratio(a, \"\") = %v, want 0", got)
	}
	if got := Ratio("", ""); got != 1.0 {
		t.Errorf("Ratio(\"\", \"\") = %v, want 1", got)
	}
}

func TestRatio_KnownValue(t *testing.T) {
	// LCS of "abcd" and "abd" is "abd" (3): 2*3/(4+3)
	got := Ratio("abcd", "abd")
	want := 6.0 / 7.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Ratio(abcd, abd) = %v, want %v", got, want)
	}
}

func TestRatio_Disjoint(t *testing.T) {
	if got := Ratio("aaaa", "bbbb"); got != 0.0 {
		t.Errorf("Ratio of disjoint texts = %v, want 0", got)
	}
}

func TestScorer_Accepts(t *testing.T) {
	scorer := NewScorer(0.6)

	tests := []struct {
		ratio float64
		want  bool
	}{
		{0.59, false},
		{0.6, true},
		{0.95, true},
		{0.0, false},
	}

	for _, tt := range tests {
		if got := scorer.Accepts(tt.ratio); got != tt.want {
			t.Errorf("Accepts(%v) = %v, want %v", tt.ratio, got, tt.want)
		}
	}
}

func TestScorer_RatioNormalizes(t *testing.T) {
	scorer := NewScorer(0.6)

	// Same words, different case and punctuation, should be identical
	got := scorer.Ratio("Hello, World!", "hello world")
	if got != 1.0 {
		t.Errorf("normalized ratio = %v, want 1.0", got)
	}
}

func TestNewScorer_InvalidThreshold(t *testing.T) {
	if got := NewScorer(0).Threshold(); got != 0.6 {
		t.Errorf("zero threshold default = %v, want 0.6", got)
	}
	if got := NewScorer(1.5).Threshold(); got != 0.6 {
		t.Errorf("out-of-range threshold default = %v, want 0.6", got)
	}
}
