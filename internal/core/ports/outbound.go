package ports

import (
	"context"
	"io"

	"github.com/jkatiyar/ai-enterprise-search/internal/core/domain"
)

// DocumentRepository persists and reads document metadata.
type DocumentRepository interface {
	// Create inserts the document. Inserting an id that already
	// exists is not an error: ids are content hashes, so the row is
	// identical by construction.
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
}

// StructuredDocumentStore owns the id -> structured document mapping
// and is the single source of truth for "does this id exist".
type StructuredDocumentStore interface {
	// Save is insert-once: saving an id that already exists keeps
	// the stored value and returns nil.
	Save(ctx context.Context, doc *domain.StructuredDocument) error
	GetByID(ctx context.Context, id string) (*domain.StructuredDocument, error)
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes ingestion events.
type MessageQueue interface {
	PublishDocumentIngested(ctx context.Context, documentID string) error
	SubscribeDocumentIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// PageExtractor extracts ordered per-page text from a stored document.
type PageExtractor interface {
	ExtractPages(ctx context.Context, doc *domain.Document) ([]domain.PageText, error)
}

// Chunker splits text into overlapping chunks for the vector index.
type Chunker interface {
	Split(text string) []string
}

// Embedder builds vectors for chunks and query text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorStore indexes chunks and performs semantic search.
type VectorStore interface {
	IndexChunks(ctx context.Context, doc *domain.Document, chunks []domain.Chunk, vectors [][]float32) error
	Search(ctx context.Context, queryVector []float32, limit int, filter domain.SearchFilter) ([]domain.RetrievedChunk, error)
}

// AnswerGenerator produces a grounded answer from retrieved context.
type AnswerGenerator interface {
	GenerateAnswer(ctx context.Context, question string, chunks []domain.RetrievedChunk) (string, error)
}
