package usecase

import (
	"strings"

	"github.com/jkatiyar/ai-enterprise-search/internal/core/domain"
)

const explanationLabel = "\n\nExplanation:\n"

// mergeAnswers combines the authoritative deterministic answer with a
// supplementary generative explanation. The deterministic answer is
// always included verbatim; the explanation is appended as a labeled
// block only when it is non-empty and not already contained
// (case-insensitively) in the factual core, so the same fact never
// appears under two labels.
func mergeAnswers(edueResult domain.QueryResult, ragAnswer string) domain.MergedAnswer {
	factual := strings.TrimSpace(edueResult.Answer)
	explanation := strings.TrimSpace(ragAnswer)

	final := factual
	explanationSource := "none"
	if explanation != "" && !strings.Contains(strings.ToLower(factual), strings.ToLower(explanation)) {
		final = factual + explanationLabel + explanation
		explanationSource = domain.EngineRAG
	}

	pages := edueResult.Pages
	if pages == nil {
		pages = []int{}
	}

	return domain.MergedAnswer{
		FinalAnswer: final,
		Confidence:  edueResult.Confidence,
		Pages:       pages,
		Composition: domain.Composition{
			FactsSource:       domain.EngineEDUE,
			ExplanationSource: explanationSource,
		},
	}
}
