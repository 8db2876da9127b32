package extractor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jkatiyar/ai-enterprise-search/internal/core/domain"
)

// plaintextPages handles text formats without page structure of their
// own. Form feeds split the content into pages; without them the whole
// file is page 1.
func plaintextPages(raw []byte, filename string) ([]domain.PageText, error) {
	if !utf8.Valid(raw) {
		return nil, domain.WrapError(domain.ErrInvalidInput, "extract text",
			fmt.Errorf("unsupported binary format: %s", filename))
	}

	parts := strings.Split(string(raw), "\f")
	pages := make([]domain.PageText, 0, len(parts))
	for i, part := range parts {
		text := strings.TrimSpace(part)
		if text == "" {
			continue
		}
		pages = append(pages, domain.PageText{Number: i + 1, Text: text})
	}
	return pages, nil
}
