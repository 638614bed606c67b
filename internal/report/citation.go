// Package report renders finished analyses: JSON and Markdown artifacts,
// a colored terminal summary, and academic citations for the matched
// sources.
package report

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/oluyemi-1/plagiarism-backend/internal/model"
)

// Style identifies a citation format
type Style string

const (
	StyleAPA     Style = "apa"
	StyleMLA     Style = "mla"
	StyleChicago Style = "chicago"
	StyleHarvard Style = "harvard"
	StyleIEEE    Style = "ieee"
)

// Styles lists the supported citation formats in display order
func Styles() []Style {
	return []Style{StyleAPA, StyleMLA, StyleChicago, StyleHarvard, StyleIEEE}
}

// Guideline describes one citation format for the formats endpoint
type Guideline struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// Guidelines returns the formatting guidelines per style
func Guidelines() map[Style]Guideline {
	return map[Style]Guideline{
		StyleAPA: {
			Name:        "APA (American Psychological Association)",
			Description: "Commonly used in psychology, education, and social sciences",
			Example:     "Author, A. A. (Year). Title of work. Retrieved from URL",
		},
		StyleMLA: {
			Name:        "MLA (Modern Language Association)",
			Description: "Commonly used in literature, arts, and humanities",
			Example:     `Author. "Title of Work." Website, Date. Web. Access Date.`,
		},
		StyleChicago: {
			Name:        "Chicago Manual of Style",
			Description: "Commonly used in history, literature, and arts",
			Example:     `Author. "Title of Work." Website. Accessed Date. URL.`,
		},
		StyleHarvard: {
			Name:        "Harvard Referencing",
			Description: "Commonly used in sciences and social sciences",
			Example:     "Author (Year) 'Title', Website, viewed Date, <URL>.",
		},
		StyleIEEE: {
			Name:        "IEEE Citation Style",
			Description: "Commonly used in engineering and computer science",
			Example:     `Author, "Title," Website, Year. [Online]. Available: URL`,
		},
	}
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// yearOf pulls a four-digit year out of a provider-native date string
func yearOf(published string) string {
	if match := yearPattern.FindString(published); match != "" {
		return match
	}
	return "n.d."
}

// titleSuffixes are site decorations stripped before citing
var titleSuffixes = []string{
	" - Wikipedia", " | Wikipedia",
	" - Google Scholar", " | Google Scholar",
	" - ResearchGate", " | ResearchGate",
}

func cleanTitle(title string) string {
	title = strings.Join(strings.Fields(title), " ")
	for _, suffix := range titleSuffixes {
		title = strings.TrimSuffix(title, suffix)
	}
	if title == "" {
		return "Untitled"
	}
	return strings.TrimSpace(title)
}

// Cite formats one source in the given style. The accessed time feeds the
// access-date fields of MLA, Chicago and Harvard citations.
func Cite(src model.Source, style Style, accessed time.Time) string {
	title := cleanTitle(src.Title)
	year := yearOf(src.Published)
	author := strings.TrimSpace(src.Author)

	switch style {
	case StyleMLA:
		date := accessed.Format("02 Jan 2006")
		if author != "" {
			return fmt.Sprintf("%s. %q %s, %s. Web. %s.", author, title+".", src.Domain, year, date)
		}
		return fmt.Sprintf("%q %s, %s. Web. %s.", title+".", src.Domain, year, date)

	case StyleChicago:
		date := accessed.Format("January 2, 2006")
		if author != "" {
			return fmt.Sprintf("%s. %q %s. Accessed %s. %s.", author, title+".", src.Domain, date, src.URL)
		}
		return fmt.Sprintf("%q %s. Accessed %s. %s.", title+".", src.Domain, date, src.URL)

	case StyleHarvard:
		date := accessed.Format("02 January 2006")
		if author != "" {
			return fmt.Sprintf("%s (%s) '%s', %s, viewed %s, <%s>.", author, year, title, src.Domain, date, src.URL)
		}
		return fmt.Sprintf("'%s' (%s), %s, viewed %s, <%s>.", title, year, src.Domain, date, src.URL)

	case StyleIEEE:
		if author != "" {
			return fmt.Sprintf("%s, %q %s, %s. [Online]. Available: %s", author, title+",", src.Domain, year, src.URL)
		}
		return fmt.Sprintf("%q %s, %s. [Online]. Available: %s", title+",", src.Domain, year, src.URL)

	default: // APA, journal and encyclopedia variants included
		switch {
		case src.SourceType == "encyclopedia" && author != "":
			return fmt.Sprintf("%s (%s). %s. In %s. Retrieved from %s", author, year, title, src.Domain, src.URL)
		case src.SourceType == "encyclopedia":
			return fmt.Sprintf("%s. (%s). In %s. Retrieved from %s", title, year, src.Domain, src.URL)
		case src.SourceType == "news" && author != "":
			return fmt.Sprintf("%s (%s). %s. %s. Retrieved from %s", author, year, title, src.Domain, src.URL)
		case src.SourceType == "news":
			return fmt.Sprintf("%s. (%s). %s. Retrieved from %s", title, year, src.Domain, src.URL)
		case author != "":
			return fmt.Sprintf("%s (%s). %s. Retrieved from %s", author, year, title, src.URL)
		default:
			return fmt.Sprintf("%s. (%s). Retrieved from %s", title, year, src.URL)
		}
	}
}

// Bibliography joins citations for all sources. IEEE entries are numbered;
// APA entries are separated by blank lines.
func Bibliography(sources []model.Source, style Style, accessed time.Time) string {
	entries := make([]string, 0, len(sources))
	for i, src := range sources {
		citation := Cite(src, style, accessed)
		if style == StyleIEEE {
			citation = fmt.Sprintf("[%d] %s", i+1, citation)
		}
		entries = append(entries, citation)
	}

	separator := "\n"
	if style == StyleAPA {
		separator = "\n\n"
	}
	return strings.Join(entries, separator)
}
