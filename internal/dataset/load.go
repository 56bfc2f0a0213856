package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ErrMalformed indicates an upload that cannot be read as a table with a header row
var ErrMalformed = errors.New("malformed dataset")

// ErrUnsupportedFormat indicates a file extension with no loader
var ErrUnsupportedFormat = errors.New("unsupported file format")

var timeLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// LoadFile reads a CSV or XLSX file chosen by extension
func LoadFile(path string) (*Dataset, error) {
	name := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", name, err)
		}
		defer f.Close()
		if strings.EqualFold(filepath.Ext(path), ".tsv") {
			return parseDelimited(f, name, '\t')
		}
		return ParseCSV(f, name)
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, "")
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// ParseCSV reads a comma separated table whose first record is the header
func ParseCSV(r io.Reader, name string) (*Dataset, error) {
	return parseDelimited(r, name, ',')
}

func parseDelimited(r io.Reader, name string, comma rune) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	return fromRecords(records, name)
}

// LoadXLSX reads a worksheet; an empty sheet name selects the first sheet
func LoadXLSX(path, sheet string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, filepath.Base(path), err)
	}
	defer f.Close()
	return readWorkbook(f, filepath.Base(path), sheet)
}

func readWorkbook(f *excelize.File, name, sheet string) (*Dataset, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %s: workbook has no sheets", ErrMalformed, name)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
	}
	return fromRecords(rows, name)
}

func fromRecords(records [][]string, name string) (*Dataset, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: missing header row", ErrMalformed, name)
	}

	header := records[0]
	cols := make([]Column, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("col%d", i)
		}
		cols[i] = Column{Name: h}
	}

	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		for i := range cols {
			var v any
			if i < len(rec) {
				v = ParseCell(rec[i])
			}
			cols[i].Values = append(cols[i].Values, v)
		}
	}

	ds := &Dataset{Name: name, Columns: cols}
	ds.Reclassify()
	return ds, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// missingTokens are cell texts read as missing values, as spreadsheet exports write them
var missingTokens = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true, "-1.#QNAN": true,
	"-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true, "<NA>": true, "N/A": true,
	"NA": true, "NULL": true, "NaN": true, "None": true, "n/a": true, "nan": true, "null": true,
}

// ParseCell converts raw cell text into float64, time.Time, string or nil
func ParseCell(s string) any {
	s = strings.TrimSpace(s)
	if missingTokens[s] {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return s
}
