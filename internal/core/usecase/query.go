package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jkatiyar/ai-enterprise-search/internal/core/domain"
	"github.com/jkatiyar/ai-enterprise-search/internal/core/ports"
)

const defaultRAGLimit = 5

// RAGQueryUseCase is the secondary engine: embed the question, search
// the vector index, then generate a strictly grounded answer from the
// retrieved context.
type RAGQueryUseCase struct {
	embedder  ports.Embedder
	vectorDB  ports.VectorStore
	generator ports.AnswerGenerator

	// highScoreThreshold is the retrieval score at or above which the
	// coarse confidence label becomes "high".
	highScoreThreshold float64
}

func NewRAGQueryUseCase(
	embedder ports.Embedder,
	vectorDB ports.VectorStore,
	generator ports.AnswerGenerator,
	highScoreThreshold float64,
) *RAGQueryUseCase {
	if highScoreThreshold <= 0 {
		highScoreThreshold = 0.55
	}
	return &RAGQueryUseCase{
		embedder:           embedder,
		vectorDB:           vectorDB,
		generator:          generator,
		highScoreThreshold: highScoreThreshold,
	}
}

func (uc *RAGQueryUseCase) Answer(
	ctx context.Context,
	question string,
	limit int,
	filter domain.SearchFilter,
) (*domain.RAGAnswer, error) {
	if limit <= 0 {
		limit = defaultRAGLimit
	}

	queryVector, err := uc.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	chunks, err := uc.vectorDB.Search(ctx, queryVector, limit, filter)
	if err != nil {
		return nil, fmt.Errorf("search vector db: %w", err)
	}
	if len(chunks) == 0 {
		return &domain.RAGAnswer{
			Query:      question,
			Answer:     domain.NoAnswerText,
			Confidence: domain.RAGConfidenceLow,
			Sources:    []domain.RAGSource{},
		}, nil
	}

	answerText, err := uc.generator.GenerateAnswer(ctx, question, chunks)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &domain.RAGAnswer{
		Query:      question,
		Answer:     strings.TrimSpace(answerText),
		Confidence: uc.confidenceLabel(chunks),
		Sources:    sourcesFromChunks(chunks),
	}, nil
}

func (uc *RAGQueryUseCase) confidenceLabel(chunks []domain.RetrievedChunk) domain.RAGConfidence {
	for _, chunk := range chunks {
		if chunk.Score >= uc.highScoreThreshold {
			return domain.RAGConfidenceHigh
		}
	}
	return domain.RAGConfidenceLow
}

func sourcesFromChunks(chunks []domain.RetrievedChunk) []domain.RAGSource {
	out := make([]domain.RAGSource, 0, len(chunks))
	for _, chunk := range chunks {
		source := chunk.Filename
		if source == "" {
			source = chunk.DocumentID
		}
		out = append(out, domain.RAGSource{
			Source: source,
			Page:   chunk.Page,
			Score:  chunk.Score,
		})
	}
	return out
}
