package importers

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Spreadsheet column order. Trailing columns may be missing.
const (
	columnWord = iota
	columnPinyin
	columnDefinition
	columnPartOfSpeech
	columnTags
	columnNotes
)

// XLSXConverter holds rows read from a spreadsheet.
// The first row is a header and is skipped.
type XLSXConverter struct {
	path string
	rows [][]string
}

// OpenXLSX reads every row of sheet from the file at path. An empty sheet
// name selects the first sheet.
func OpenXLSX(path, sheet string) (*XLSXConverter, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("spreadsheet %s has no sheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return &XLSXConverter{path: path, rows: rows}, nil
}

// NewXLSXConverter wraps rows already read, header included.
func NewXLSXConverter(rows [][]string) *XLSXConverter {
	return &XLSXConverter{rows: rows}
}

func (c *XLSXConverter) Convert() ([]RawWord, Source) {
	source := Source{Name: "xlsx", FilePath: c.path}
	if len(c.rows) < 2 {
		return nil, source
	}

	out := make([]RawWord, 0, len(c.rows)-1)
	for i, row := range c.rows[1:] {
		if isBlankRow(row) {
			continue
		}
		out = append(out, RawWord{
			Row:          i + 2,
			Word:         cell(row, columnWord),
			Pinyin:       cell(row, columnPinyin),
			Definitions:  splitList(cell(row, columnDefinition), ";"),
			PartOfSpeech: cell(row, columnPartOfSpeech),
			Tags:         splitList(cell(row, columnTags), ","),
			Notes:        cell(row, columnNotes),
		})
	}
	return out, source
}

var _ Converter = (*XLSXConverter)(nil)

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func splitList(value, sep string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
