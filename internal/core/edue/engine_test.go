package edue

import (
	"reflect"
	"strings"
	"testing"

	"github.com/jkatiyar/ai-enterprise-search/internal/core/domain"
)

func revenueDocument() *domain.StructuredDocument {
	return &domain.StructuredDocument{
		ID:       "doc-1",
		Filename: "report.pdf",
		Sections: []domain.Section{
			{
				Title:      "REVENUE GROWTH",
				Paragraphs: []string{"Revenue increased by 12% year-over-year."},
				Pages:      []int{3},
			},
		},
	}
}

func TestAnswerSectionPassMatch(t *testing.T) {
	result := Answer(revenueDocument(), "What is the revenue growth?")

	if !strings.Contains(result.Answer, "Revenue increased by 12% year-over-year.") {
		t.Fatalf("answer missing section evidence: %q", result.Answer)
	}
	if !reflect.DeepEqual(result.Pages, []int{3}) {
		t.Fatalf("unexpected pages %v", result.Pages)
	}
	if result.Confidence <= 0.4 || result.Confidence > ConfidenceCap {
		t.Fatalf("confidence out of expected range: %v", result.Confidence)
	}
}

func TestAnswerNoOverlapReturnsSentinel(t *testing.T) {
	result := Answer(revenueDocument(), "Who is the CEO?")

	want := domain.QueryResult{
		Answer:     "Information is not available.",
		Confidence: 0.05,
		Pages:      []int{},
	}
	if !reflect.DeepEqual(result, want) {
		t.Fatalf("expected sentinel, got %+v", result)
	}
	if !result.IsNoAnswer() {
		t.Fatalf("sentinel not recognized")
	}
}

func TestAnswerIsDeterministic(t *testing.T) {
	doc := &domain.StructuredDocument{
		ID: "doc-2",
		Sections: []domain.Section{
			{Title: "APPENDIX", Paragraphs: []string{
				"The network must sustain low latency under load. Latency requirements are defined per tier.",
				"Throughput targets follow the latency budget in every region.",
			}, Pages: []int{4, 5}},
		},
	}

	first := Answer(doc, "network latency requirements")
	second := Answer(doc, "network latency requirements")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("engine not deterministic: %+v vs %+v", first, second)
	}
}

func TestAnswerSentenceFallbackFiltersNoise(t *testing.T) {
	doc := &domain.StructuredDocument{
		ID: "doc-3",
		Sections: []domain.Section{
			{
				Title: "APPENDIX",
				Paragraphs: []string{
					"The network must sustain low latency under load. " +
						"Latency requirements are defined per network tier. " +
						"See https://example.com/specs for details. " +
						"What about throughput? " +
						"Short note.",
				},
				Pages: []int{7},
			},
		},
	}

	result := Answer(doc, "network latency requirements")

	if strings.Contains(result.Answer, "https://") {
		t.Fatalf("noise sentence leaked into answer: %q", result.Answer)
	}
	if strings.Contains(result.Answer, "What about throughput?") {
		t.Fatalf("question-shaped sentence leaked into answer: %q", result.Answer)
	}
	if !strings.Contains(result.Answer, "Latency requirements are defined per network tier.") {
		t.Fatalf("expected best sentence in answer, got %q", result.Answer)
	}
	if !reflect.DeepEqual(result.Pages, []int{7}) {
		t.Fatalf("unexpected pages %v", result.Pages)
	}
}

func TestAnswerFallbackSelectionIsBounded(t *testing.T) {
	paragraph := "Latency matters for network health. " +
		"Network latency is measured per request. " +
		"Every network hop adds latency overhead. " +
		"Network latency budgets are strict limits."
	doc := &domain.StructuredDocument{
		ID: "doc-4",
		Sections: []domain.Section{
			{Title: "MISCELLANEOUS", Paragraphs: []string{paragraph}, Pages: []int{1}},
		},
	}

	result := Answer(doc, "network latency")

	sentences := strings.Count(result.Answer, ".")
	if sentences > MaxFallbackSentences {
		t.Fatalf("expected at most %d sentences, got %d: %q", MaxFallbackSentences, sentences, result.Answer)
	}
}

func TestAnswerDeclarativeTransformWhatIs(t *testing.T) {
	result := Answer(revenueDocument(), "What is the revenue growth?")
	if !strings.HasPrefix(result.Answer, "the revenue growth is ") {
		t.Fatalf("expected declarative rewrite, got %q", result.Answer)
	}
}

func TestAnswerDeclarativeTransformHowAre(t *testing.T) {
	doc := &domain.StructuredDocument{
		ID: "doc-5",
		Sections: []domain.Section{
			{
				Title:      "SERVICES AND QUEUES",
				Paragraphs: []string{"Services publish events and queues deliver them."},
				Pages:      []int{2},
			},
		},
	}

	result := Answer(doc, "How are services and queues linked?")
	if result.IsNoAnswer() {
		t.Fatalf("expected an answer, got sentinel")
	}
	if !strings.Contains(result.Answer, "are connected as follows:") {
		t.Fatalf("expected relation rewrite, got %q", result.Answer)
	}
}

func TestAnswerCapsConfidenceWithoutPageAttribution(t *testing.T) {
	doc := &domain.StructuredDocument{
		ID: "doc-6",
		Sections: []domain.Section{
			{
				Title:      "REVENUE GROWTH",
				Paragraphs: []string{"Revenue increased by 12% year-over-year."},
				Pages:      []int{},
			},
		},
	}

	result := Answer(doc, "What is the revenue growth?")
	if result.Confidence > UntracedConfidenceCap {
		t.Fatalf("confidence %v exceeds untraced cap %v", result.Confidence, UntracedConfidenceCap)
	}
}

func TestAnswerNilSectionsIsSentinelNotPanic(t *testing.T) {
	result := Answer(&domain.StructuredDocument{ID: "doc-7"}, "anything")
	if !result.IsNoAnswer() {
		t.Fatalf("expected sentinel for missing sections, got %+v", result)
	}
}
