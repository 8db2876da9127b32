package extractor

import (
	"bytes"
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/jkatiyar/ai-enterprise-search/internal/core/domain"
)

// pdfPages extracts plain text page by page. Pages the library cannot
// decode are skipped rather than failing the whole document; a PDF
// with zero decodable pages surfaces later as no readable content.
func pdfPages(raw []byte) ([]domain.PageText, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	pages := make([]domain.PageText, 0, reader.NumPage())
	for number := 1; number <= reader.NumPage(); number++ {
		page := reader.Page(number)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		pages = append(pages, domain.PageText{Number: number, Text: text})
	}
	return pages, nil
}
