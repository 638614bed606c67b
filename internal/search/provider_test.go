package search

import (
	"strings"
	"testing"
)

func TestTruncateQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		max   int
		want  string
	}{
		{"short untouched", "hello world", 100, "hello world"},
		{"trimmed", "  hello  ", 100, "hello"},
		{"cuts on word boundary", "one two three four", 12, "one two"},
		{"no space in window", "abcdefghijklmnop", 5, "abcde"},
		{"exact fit", "hello", 5, "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateQuery(tt.query, tt.max); got != tt.want {
				t.Errorf("truncateQuery(%q, %d) = %q, want %q", tt.query, tt.max, got, tt.want)
			}
		})
	}
}

func TestCleanQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"strips punctuation", "hello, world!", "hello world"},
		{"collapses whitespace", "a   b\t\tc", "a b c"},
		{"keeps digits", "covid 19 vaccine", "covid 19 vaccine"},
		{"empty", "", ""},
		{"only punctuation", "!?.,;", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanQuery(tt.query, 200); got != tt.want {
				t.Errorf("cleanQuery(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestFirstAuthors(t *testing.T) {
	names := []string{"Smith J", "Doe A", "Brown K", "Lee M"}
	if got := firstAuthors(names, 3); got != "Smith J, Doe A, Brown K" {
		t.Errorf("firstAuthors = %q", got)
	}
	if got := firstAuthors(names[:1], 3); got != "Smith J" {
		t.Errorf("firstAuthors single = %q", got)
	}
	if got := firstAuthors(nil, 3); got != "" {
		t.Errorf("firstAuthors nil = %q", got)
	}
}

func TestClip(t *testing.T) {
	if got := clip("short", 100); got != "short" {
		t.Errorf("clip short = %q", got)
	}

	long := strings.Repeat("a", 150)
	got := clip(long, 100)
	if len(got) != 103 || !strings.HasSuffix(got, "...") {
		t.Errorf("clip long = %d bytes %q...", len(got), got[:10])
	}

	// Must not split a multi-byte rune
	multi := strings.Repeat("é", 60)
	got = clip(multi, 101)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("clip multi missing ellipsis: %q", got)
	}
	for _, r := range got {
		if r == '�' {
			t.Errorf("clip split a rune: %q", got)
		}
	}
}

func TestHostOf(t *testing.T) {
	if got := hostOf("https://example.org/path?q=1"); got != "example.org" {
		t.Errorf("hostOf = %q", got)
	}
	if got := hostOf("://bad"); got != "" {
		t.Errorf("hostOf invalid = %q", got)
	}
}
