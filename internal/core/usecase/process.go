package usecase

import (
	"context"
	"fmt"

	"github.com/jkatiyar/ai-enterprise-search/internal/core/domain"
	"github.com/jkatiyar/ai-enterprise-search/internal/core/edue"
	"github.com/jkatiyar/ai-enterprise-search/internal/core/ports"
)

// ProcessDocumentUseCase turns an uploaded file into query-ready
// state: extracted pages become the structured section model for the
// deterministic engine, and page-attributed chunks are embedded into
// the vector index for the secondary engine.
type ProcessDocumentUseCase struct {
	repo      ports.DocumentRepository
	extractor ports.PageExtractor
	store     ports.StructuredDocumentStore
	chunker   ports.Chunker
	embedder  ports.Embedder
	vectorDB  ports.VectorStore
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	extractor ports.PageExtractor,
	store ports.StructuredDocumentStore,
	chunker ports.Chunker,
	embedder ports.Embedder,
	vectorDB ports.VectorStore,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:      repo,
		extractor: extractor,
		store:     store,
		chunker:   chunker,
		embedder:  embedder,
		vectorDB:  vectorDB,
	}
}

func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	if err := uc.markStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	if err := uc.processPipeline(ctx, documentID); err != nil {
		if failErr := uc.markStatus(ctx, documentID, domain.StatusFailed, err.Error()); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.markStatus(ctx, documentID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}
	return nil
}

func (uc *ProcessDocumentUseCase) processPipeline(ctx context.Context, documentID string) error {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("fetch document by id: %w", err)
	}

	pages, err := uc.extractor.ExtractPages(ctx, doc)
	if err != nil {
		return fmt.Errorf("extract pages: %w", err)
	}

	structured, err := edue.BuildDocument(doc.ID, doc.Filename, pages)
	if err != nil {
		return err
	}

	if err := uc.store.Save(ctx, structured); err != nil {
		return fmt.Errorf("save structured document: %w", err)
	}

	chunks := uc.chunkPages(pages)
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := uc.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}

	if err := uc.vectorDB.IndexChunks(ctx, doc, chunks, vectors); err != nil {
		return fmt.Errorf("index chunks: %w", err)
	}
	return nil
}

// chunkPages splits page text page by page so every chunk keeps its
// source page for answer attribution.
func (uc *ProcessDocumentUseCase) chunkPages(pages []domain.PageText) []domain.Chunk {
	var chunks []domain.Chunk
	index := 0
	for _, page := range pages {
		for _, text := range uc.chunker.Split(page.Text) {
			chunks = append(chunks, domain.Chunk{
				Text:  text,
				Page:  page.Number,
				Index: index,
			})
			index++
		}
	}
	return chunks
}

func (uc *ProcessDocumentUseCase) markStatus(ctx context.Context, documentID string, status domain.DocumentStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, documentID, status, errMessage)
}
