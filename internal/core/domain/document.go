package domain

import "time"

type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "uploaded"
	StatusProcessing DocumentStatus = "processing"
	StatusReady      DocumentStatus = "ready"
	StatusFailed     DocumentStatus = "failed"
)

// Document is the metadata record of an uploaded file. Its ID is the
// SHA-256 hash of the file content, so re-uploading identical bytes
// always maps to the same document.
type Document struct {
	ID          string         `json:"id"`
	Filename    string         `json:"filename"`
	MimeType    string         `json:"mime_type"`
	StoragePath string         `json:"storage_path"`
	Status      DocumentStatus `json:"status"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// PageText is the raw extracted text of a single source page, 1-based.
type PageText struct {
	Number int
	Text   string
}

// Section is a titled, page-anchored grouping of paragraph text.
// Pages holds every 1-based page number the section's paragraphs came
// from, without duplicates, in first-touched order.
type Section struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
	Pages      []int    `json:"pages"`
}

// StructuredDocument is the section-level view of a document consumed
// by the deterministic query engine. It is immutable once built;
// sections appear in reading order and that order is meaningful.
type StructuredDocument struct {
	ID       string    `json:"id"`
	Filename string    `json:"filename"`
	Sections []Section `json:"sections"`
}

// Chunk is a page-attributed slice of extracted text destined for the
// vector index.
type Chunk struct {
	Text  string
	Page  int
	Index int
}
