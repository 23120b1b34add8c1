package parser

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Grid is a fully materialized rows×columns view of a report sheet.
// Cell values are the formatted text excelize returns.
type Grid [][]string

var (
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04} // PK..
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0} // legacy compound file
)

// DetectFileKind sniffs the container format from the leading bytes.
func DetectFileKind(content []byte) FileKind {
	switch {
	case bytes.HasPrefix(content, zipMagic):
		return FileKindXLSX
	case bytes.HasPrefix(content, oleMagic):
		return FileKindXLS
	default:
		return FileKindUnknown
	}
}

// GridFromBytes opens the first sheet of an xlsx document as a Grid.
// Legacy .xls content is reported as unsupported; converting it is an
// upstream responsibility (LibreOffice headless in the original intake).
func GridFromBytes(content []byte) (Grid, error) {
	if DetectFileKind(content) == FileKindXLS {
		return nil, fmt.Errorf("legacy .xls container detected: convert to .xlsx before import")
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return Grid(rows), nil
}

// cell returns the trimmed cell text at col, or "" when the row is
// shorter than col. Report rows are ragged, short rows are normal.
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// parseNumeric coerces a cell to float64, returning 0 for blank or
// non-numeric content.
func parseNumeric(value string) float64 {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	// pt-BR decimal comma
	s = strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return 0
}
