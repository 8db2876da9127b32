package edue

import (
	"reflect"
	"testing"

	"github.com/jkatiyar/ai-enterprise-search/internal/core/domain"
)

func TestBuildDocumentDetectsHeadersAndSections(t *testing.T) {
	pages := []domain.PageText{
		{Number: 1, Text: "REVENUE GROWTH\nRevenue increased by 12% year-over-year.\nMargins held steady."},
		{Number: 2, Text: "COST STRUCTURE\nFixed costs declined."},
	}

	doc, err := BuildDocument("doc-1", "report.pdf", pages)
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Title != "REVENUE GROWTH" {
		t.Fatalf("unexpected first title %q", doc.Sections[0].Title)
	}
	if !reflect.DeepEqual(doc.Sections[0].Paragraphs, []string{
		"Revenue increased by 12% year-over-year.",
		"Margins held steady.",
	}) {
		t.Fatalf("unexpected paragraphs %v", doc.Sections[0].Paragraphs)
	}
	if !reflect.DeepEqual(doc.Sections[1].Pages, []int{2}) {
		t.Fatalf("unexpected pages %v", doc.Sections[1].Pages)
	}
}

func TestBuildDocumentSynthesizesIntroduction(t *testing.T) {
	pages := []domain.PageText{
		{Number: 1, Text: "This preamble has no header.\nSUMMARY\nAll good."},
	}

	doc, err := BuildDocument("doc-1", "a.pdf", pages)
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Title != "Introduction" {
		t.Fatalf("expected synthetic Introduction, got %q", doc.Sections[0].Title)
	}
}

func TestBuildDocumentSectionSpansPagesWithoutDuplicates(t *testing.T) {
	pages := []domain.PageText{
		{Number: 1, Text: "OVERVIEW\nLine one.\nLine two."},
		{Number: 2, Text: "Line three continues the section.\nLine four."},
	}

	doc, err := BuildDocument("doc-1", "a.pdf", pages)
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(doc.Sections))
	}
	if !reflect.DeepEqual(doc.Sections[0].Pages, []int{1, 2}) {
		t.Fatalf("unexpected pages %v", doc.Sections[0].Pages)
	}
}

func TestBuildDocumentSkipsEmptyPages(t *testing.T) {
	pages := []domain.PageText{
		{Number: 1, Text: ""},
		{Number: 2, Text: "INTRO\nBody text."},
	}

	doc, err := BuildDocument("doc-1", "a.pdf", pages)
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}
	if !reflect.DeepEqual(doc.Sections[0].Pages, []int{2}) {
		t.Fatalf("unexpected pages %v", doc.Sections[0].Pages)
	}
}

func TestBuildDocumentZeroSectionsIsHardFailure(t *testing.T) {
	_, err := BuildDocument("doc-1", "a.pdf", []domain.PageText{{Number: 1, Text: "  \n  "}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrNoReadableContent) {
		t.Fatalf("expected ErrNoReadableContent, got %v", err)
	}
}

func TestIsHeaderLine(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"REVENUE GROWTH", true},
		{"SECTION 2: COSTS", true},
		{"Revenue Growth", false},          // mixed case
		{"revenue growth", false},          // lower case
		{"12% GROWTH", false},              // does not start with a letter
		{"A", false},                       // single character
		{"AI", true},                       // two-letter acronym
		{"RISK FACTORS - LIQUIDITY", true}, // hyphen allowed
	}
	for _, tc := range cases {
		if got := isHeaderLine(tc.line); got != tc.want {
			t.Fatalf("isHeaderLine(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}
