package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jkatiyar/ai-enterprise-search/internal/core/domain"
)

// SectionStore persists structured documents with sections as JSONB.
// Structure is derived deterministically from the source bytes, so the
// first stored value for an id is also the final one.
type SectionStore struct {
	db *sql.DB
}

func NewSectionStore(db *sql.DB) *SectionStore {
	return &SectionStore{db: db}
}

func (s *SectionStore) Save(ctx context.Context, doc *domain.StructuredDocument) error {
	sectionsJSON, err := json.Marshal(doc.Sections)
	if err != nil {
		return fmt.Errorf("marshal sections: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO structured_documents (id, filename, sections, created_at)
VALUES ($1,$2,$3,$4)
ON CONFLICT (id) DO NOTHING
`, doc.ID, doc.Filename, sectionsJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert structured document: %w", err)
	}
	return nil
}

func (s *SectionStore) GetByID(ctx context.Context, id string) (*domain.StructuredDocument, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, filename, sections
FROM structured_documents
WHERE id = $1
`, id)

	var doc domain.StructuredDocument
	var sectionsRaw []byte
	if err := row.Scan(&doc.ID, &doc.Filename, &sectionsRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "get structured document", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan structured document: %w", err)
	}
	if err := json.Unmarshal(sectionsRaw, &doc.Sections); err != nil {
		return nil, fmt.Errorf("unmarshal sections: %w", err)
	}
	return &doc, nil
}
