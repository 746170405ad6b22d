// Package xlsx provides the low-level spreadsheet access used by the
// import and export pipelines: sheet selection, header-row detection and
// single-sheet workbook writing. It knows nothing about students; it only
// deals in sheets, rows and cells.
package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// PickSheet returns the first name from preferred that exists in the
// workbook. When none match it falls back to the workbook's first sheet
// and reports matched=false so the caller can log a warning. An empty
// name means the workbook has no sheets at all.
func PickSheet(f *excelize.File, preferred []string) (name string, matched bool) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", false
	}

	for _, want := range preferred {
		for _, have := range sheets {
			if have == want {
				return have, true
			}
		}
	}
	return sheets[0], false
}

// FindHeaderCell scans rows top-to-bottom and, within each row, cells
// left-to-right, returning the position of the first cell whose text
// contains marker. This is deliberately a substring heuristic: real input
// files carry banner rows of arbitrary length above the header, and the
// marker may sit inside longer label text.
func FindHeaderCell(rows [][]string, marker string) (row, col int, ok bool) {
	for r, cells := range rows {
		for c, cell := range cells {
			if strings.Contains(cell, marker) {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// HeaderIndex maps each trimmed header label to its column position.
// When a label repeats, the leftmost occurrence wins.
func HeaderIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, label := range header {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		if _, exists := idx[label]; !exists {
			idx[label] = i
		}
	}
	return idx
}

// Cell returns the trimmed value at position i, or "" when the row is
// shorter than i+1 cells. Spreadsheet rows are ragged: trailing empty
// cells are simply absent.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// WriteSheet writes a workbook with a single sheet containing the header
// row followed by the data rows.
func WriteSheet(path, sheet string, header []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet %q: %w", sheet, err)
	}

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}
