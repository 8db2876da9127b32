// Package extractor turns stored source files into per-page plain text.
// The format is picked from the file extension; every backend returns
// pages in reading order with 1-based page numbers.
package extractor

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jkatiyar/ai-enterprise-search/internal/core/domain"
	"github.com/jkatiyar/ai-enterprise-search/internal/core/ports"
)

type Extractor struct {
	storage ports.ObjectStorage
}

func NewExtractor(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

func (e *Extractor) ExtractPages(ctx context.Context, doc *domain.Document) ([]domain.PageText, error) {
	reader, err := e.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open source document: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read source document: %w", err)
	}

	switch normalizedExtension(doc.Filename) {
	case ".pdf":
		return pdfPages(raw)
	case ".xlsx", ".xlsm":
		return spreadsheetPages(raw)
	default:
		return plaintextPages(raw, doc.Filename)
	}
}

func normalizedExtension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
