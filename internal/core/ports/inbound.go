package ports

import (
	"context"
	"io"

	"github.com/jkatiyar/ai-enterprise-search/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload.
// Upload is idempotent on content: byte-identical uploads return the
// already-known document without reprocessing.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentReader is the inbound read model for document metadata.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
}

// DocumentProcessor is the inbound contract for asynchronous document
// processing.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}

// EDUEQueryService answers a question against a stored document using
// only the deterministic engine.
type EDUEQueryService interface {
	Query(ctx context.Context, documentID, question string) (*domain.EngineResult, error)
}

// HybridQueryService runs the deterministic engine and, when its
// confidence is insufficient, the secondary vector engine, then
// arbitrates between them.
type HybridQueryService interface {
	Query(ctx context.Context, documentID, question string) (*domain.HybridResult, error)
}

// RAGQueryService is the secondary engine: embedding search plus
// grounded generation.
type RAGQueryService interface {
	Answer(ctx context.Context, question string, limit int, filter domain.SearchFilter) (*domain.RAGAnswer, error)
}
