package usecase

import (
	"context"
	"fmt"

	"github.com/jkatiyar/ai-enterprise-search/internal/core/domain"
	"github.com/jkatiyar/ai-enterprise-search/internal/core/edue"
	"github.com/jkatiyar/ai-enterprise-search/internal/core/ports"
)

// EDUEQueryUseCase answers a question with the deterministic engine
// only: no embeddings, no language model.
type EDUEQueryUseCase struct {
	store ports.StructuredDocumentStore
}

func NewEDUEQueryUseCase(store ports.StructuredDocumentStore) *EDUEQueryUseCase {
	return &EDUEQueryUseCase{store: store}
}

// Query runs the engine against the stored structured document. An
// unknown document id is a lookup error; a question the document
// cannot answer is the in-band sentinel result, not an error.
func (uc *EDUEQueryUseCase) Query(ctx context.Context, documentID, question string) (*domain.EngineResult, error) {
	doc, err := uc.store.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("load structured document: %w", err)
	}

	return &domain.EngineResult{
		Engine:   domain.EngineEDUE,
		Question: question,
		Result:   edue.Answer(doc, question),
	}, nil
}
