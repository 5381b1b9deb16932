package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Load reads a table from a .csv or .xlsx file. For spreadsheets the first
// sheet is used.
func Load(path string) (*Frame, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer f.Close()
		return LoadCSV(f)
	case ".xlsx":
		return LoadXLSX(path, "")
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrFormat, ext)
	}
}

// LoadCSV reads a table whose header is "group,<field>,..." and whose rows
// hold one group each.
func LoadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return fromRecords(records)
}

// LoadXLSX reads a table laid out like LoadCSV from a spreadsheet sheet.
// An empty sheet name selects the first sheet.
func LoadXLSX(path, sheet string) (*Frame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return fromRecords(rows)
}

func fromRecords(records [][]string) (*Frame, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: need a header and at least one row", ErrFormat)
	}

	header := records[0]
	if len(header) < 2 || !strings.EqualFold(strings.TrimSpace(header[0]), "group") {
		return nil, fmt.Errorf("%w: first column must be \"group\"", ErrFormat)
	}

	frame := NewFrame()
	for i, rec := range records[1:] {
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		group := strings.ToLower(strings.TrimSpace(rec[0]))
		for j := 1; j < len(header) && j < len(rec); j++ {
			cell := strings.TrimSpace(rec[j])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %q: %v", ErrFormat, i+2, header[j], err)
			}
			frame.Set(group, strings.TrimSpace(header[j]), v)
		}
	}

	if err := frame.Validate(); err != nil {
		return nil, err
	}
	return frame, nil
}
