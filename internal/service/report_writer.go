package service

import (
	"fmt"
	"unicode/utf8"

	"red-tag-extractor/internal/domain"

	"github.com/xuri/excelize/v2"
)

// columnPadding is added to the longest value when sizing a column
const columnPadding = 2

// buildWorkbook writes the report into a fresh two-sheet workbook.
// Any failure here is a data failure and aborts the publish.
func buildWorkbook(report *domain.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), domain.SheetExtractedText); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(domain.SheetTagCounts); err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet %q: %w", domain.SheetTagCounts, err)
	}

	if err := writeRecords(f, report.Records); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeTagCounts(f, report.TagCounts); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeRecords(f *excelize.File, records []domain.Record) error {
	sheet := domain.SheetExtractedText
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{domain.ColumnExtractedText, domain.ColumnTag}); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	for i, rec := range records {
		row := i + 2
		if err := setCell(f, sheet, 1, row, rec.Code); err != nil {
			return err
		}
		// absent tags stay as empty cells
		if rec.HasTag() {
			if err := setCell(f, sheet, 2, row, rec.TagValue()); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeTagCounts(f *excelize.File, counts []domain.TagCount) error {
	sheet := domain.SheetTagCounts
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{domain.ColumnTag, domain.ColumnCount}); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	for i, tc := range counts {
		row := i + 2
		if err := setCell(f, sheet, 1, row, tc.Tag); err != nil {
			return err
		}
		if err := setCell(f, sheet, 2, row, tc.Count); err != nil {
			return err
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// autosizeColumns widens each column of the records sheet to its longest
// value plus padding. It is cosmetic: failures are logged and never abort
// the publish.
func autosizeColumns(f *excelize.File, report *domain.Report, logger domain.Logger) {
	sheet := domain.SheetExtractedText
	widths := []int{
		utf8.RuneCountInString(domain.ColumnExtractedText),
		utf8.RuneCountInString(domain.ColumnTag),
	}
	for _, rec := range report.Records {
		widths[0] = max(widths[0], utf8.RuneCountInString(rec.Code))
		widths[1] = max(widths[1], utf8.RuneCountInString(rec.TagValue()))
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			logger.Warn("Column width skipped", "sheet", sheet, "column", i+1, "error", err)
			continue
		}
		if err := f.SetColWidth(sheet, col, col, float64(w+columnPadding)); err != nil {
			logger.Warn("Column width skipped", "sheet", sheet, "column", col, "error", err)
		}
	}
}

// readTagCounts parses the Tag Counts sheet of an open workbook
func readTagCounts(f *excelize.File) ([]domain.TagCount, error) {
	rows, err := f.GetRows(domain.SheetTagCounts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", domain.SheetTagCounts, err)
	}

	counts := make([]domain.TagCount, 0, len(rows))
	for i, row := range rows {
		if i == 0 || len(row) < 2 || row[0] == "" {
			continue
		}
		var n int
		if _, err := fmt.Sscanf(row[1], "%d", &n); err != nil {
			return nil, fmt.Errorf("%s row %d: bad count %q: %w", domain.SheetTagCounts, i+1, row[1], err)
		}
		counts = append(counts, domain.TagCount{Tag: row[0], Count: n})
	}
	return counts, nil
}
