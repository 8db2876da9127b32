package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jkatiyar/ai-enterprise-search/internal/core/domain"
	"github.com/jkatiyar/ai-enterprise-search/internal/core/edue"
	"github.com/jkatiyar/ai-enterprise-search/internal/core/ports"
)

// DefaultHybridThreshold is the deterministic-engine confidence at or
// above which the secondary engine is skipped entirely.
const DefaultHybridThreshold = 0.6

// HybridQueryUseCase orchestrates the two engines per query. The
// deterministic engine always runs first; the expensive secondary
// engine runs only when the first result is not confident enough.
// Queries are stateless and independent of each other.
type HybridQueryUseCase struct {
	store     ports.StructuredDocumentStore
	secondary ports.RAGQueryService
	threshold float64
}

func NewHybridQueryUseCase(
	store ports.StructuredDocumentStore,
	secondary ports.RAGQueryService,
	threshold float64,
) *HybridQueryUseCase {
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultHybridThreshold
	}
	return &HybridQueryUseCase{
		store:     store,
		secondary: secondary,
		threshold: threshold,
	}
}

func (uc *HybridQueryUseCase) Query(ctx context.Context, documentID, question string) (*domain.HybridResult, error) {
	doc, err := uc.store.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("load structured document: %w", err)
	}

	edueResult := edue.Answer(doc, question)
	trace := []string{
		"edue engine executed",
		fmt.Sprintf("edue confidence %.2f observed against threshold %.2f", edueResult.Confidence, uc.threshold),
	}

	if edueResult.Confidence >= uc.threshold {
		trace = append(trace,
			"secondary engine skipped: edue confidence cleared threshold",
			"primary engine selected: edue",
		)
		merged := mergeAnswers(edueResult, "")
		return &domain.HybridResult{
			Query:         question,
			PrimaryEngine: domain.EngineEDUE,
			FinalAnswer:   merged.FinalAnswer,
			Confidence:    edue.Calibrate(edueResult.Confidence, edueResult.Pages, false),
			Pages:         merged.Pages,
			EDUE:          edueResult,
			RAG:           nil,
			Composition:   merged.Composition,
			Explanation:   trace,
		}, nil
	}

	trace = append(trace, "secondary engine executed")

	ragResult, ragErr := uc.secondary.Answer(ctx, question, 0, domain.SearchFilter{DocumentID: documentID})
	explanationText := ""
	secondaryFailed := false
	switch {
	case ragErr != nil:
		// A failing secondary engine never fails the hybrid query;
		// the deterministic result stands on its own.
		slog.Warn("secondary_engine_failed", "document_id", documentID, "error", ragErr)
		trace = append(trace, "secondary engine failed: continuing with edue result only")
		ragResult = nil
		secondaryFailed = true
	case usableSecondaryAnswer(ragResult):
		explanationText = ragResult.Answer
	default:
		trace = append(trace, "secondary engine returned no usable answer")
	}

	merged := mergeAnswers(edueResult, explanationText)

	// The deterministic result stayed below the threshold, so the
	// secondary engine wins arbitration whenever it contributed.
	primary := domain.EngineEDUE
	if merged.Composition.ExplanationSource == domain.EngineRAG {
		primary = domain.EngineRAG
	}
	trace = append(trace, "primary engine selected: "+primary)
	return &domain.HybridResult{
		Query:         question,
		PrimaryEngine: primary,
		FinalAnswer:   merged.FinalAnswer,
		Confidence:    edue.Calibrate(edueResult.Confidence, edueResult.Pages, true),
		Pages:         merged.Pages,
		EDUE:          edueResult,
		RAG:           ragResult,
		Composition:   merged.Composition,
		Explanation:   trace,

		SecondaryConsulted: true,
		SecondaryFailed:    secondaryFailed,
	}, nil
}

// usableSecondaryAnswer reports whether the secondary engine produced
// actual explanatory content rather than its own no-answer marker.
func usableSecondaryAnswer(answer *domain.RAGAnswer) bool {
	if answer == nil {
		return false
	}
	text := strings.TrimSpace(answer.Answer)
	return text != "" && !strings.EqualFold(text, domain.NoAnswerText) &&
		!strings.EqualFold(text, strings.TrimSuffix(domain.NoAnswerText, "."))
}
