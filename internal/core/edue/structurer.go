package edue

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/jkatiyar/ai-enterprise-search/internal/core/domain"
)

// Section titles shorter than this may be headers.
const maxHeaderLength = 120

// Synthetic title for content that precedes any detected header.
const introductionTitle = "Introduction"

// headerShapeRe matches header-shaped lines: an uppercase letter
// followed by at least one more letter, digit, space, hyphen, colon or
// comma. A single-character line is never a header.
var headerShapeRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9\s\-:,]+$`)

// BuildDocument converts ordered per-page raw text into a structured
// document. A line opens a new section when it looks like a header;
// every other non-empty line is appended to the current section. Pages
// yielding no text contribute nothing. A document that produces zero
// sections is a terminal ingestion failure.
func BuildDocument(id, filename string, pages []domain.PageText) (*domain.StructuredDocument, error) {
	var sections []domain.Section
	var current *domain.Section

	flush := func() {
		if current != nil {
			sections = append(sections, *current)
			current = nil
		}
	}

	for _, page := range pages {
		for _, raw := range strings.Split(page.Text, "\n") {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}

			if isHeaderLine(line) {
				flush()
				current = &domain.Section{
					Title:      line,
					Paragraphs: []string{},
					Pages:      []int{page.Number},
				}
				continue
			}

			if current == nil {
				current = &domain.Section{
					Title:      introductionTitle,
					Paragraphs: []string{},
					Pages:      []int{page.Number},
				}
			}
			current.Paragraphs = append(current.Paragraphs, line)
			current.Pages = appendPage(current.Pages, page.Number)
		}
	}
	flush()

	if len(sections) == 0 {
		return nil, fmt.Errorf("structure document %s: %w", id, domain.ErrNoReadableContent)
	}

	return &domain.StructuredDocument{
		ID:       id,
		Filename: filename,
		Sections: sections,
	}, nil
}

// isHeaderLine applies the header heuristic: short, header-shaped and
// fully upper-case.
func isHeaderLine(line string) bool {
	if len(line) >= maxHeaderLength {
		return false
	}
	if !headerShapeRe.MatchString(line) {
		return false
	}
	return isAllUpper(line)
}

// isAllUpper reports whether the line contains at least one letter and
// no lower-case letters.
func isAllUpper(line string) bool {
	hasLetter := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// appendPage adds a page number unless it is already present.
func appendPage(pages []int, page int) []int {
	for _, p := range pages {
		if p == page {
			return pages
		}
	}
	return append(pages, page)
}
