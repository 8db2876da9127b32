package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jkatiyar/ai-enterprise-search/internal/core/domain"
)

// spreadsheetPages maps each worksheet to one page, in workbook order.
// Rows become lines and cells are joined with single spaces, so the
// sheet name acts as a section header for the structurer.
func spreadsheetPages(raw []byte) ([]domain.PageText, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	pages := make([]domain.PageText, 0, len(sheets))
	for i, sheet := range sheets {
		rows, err := workbook.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}

		var builder strings.Builder
		builder.WriteString(strings.ToUpper(sheet))
		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, " "))
			if line == "" {
				continue
			}
			builder.WriteString("\n")
			builder.WriteString(line)
		}
		pages = append(pages, domain.PageText{Number: i + 1, Text: builder.String()})
	}
	return pages, nil
}
