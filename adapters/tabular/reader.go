// Package tabular reads survey datasets and flat target tables from CSV and
// Excel files. Reading is caller-side convenience; the diagnostic core only
// ever sees the in-memory forms.
package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"weightcheck/domain/survey"
	"weightcheck/internal"
)

// DefaultSheet is the Excel sheet read when none is configured
const DefaultSheet = "Sheet1"

// Reader handles reading Excel and CSV files
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
	log      *internal.Logger
}

// NewReader creates a reader for a CSV or Excel file, detected by extension
func NewReader(filePath string) *Reader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &Reader{
		filePath: filePath,
		fileType: fileType,
		sheet:    DefaultSheet,
		log:      internal.DefaultLogger,
	}
}

// WithSheet overrides the Excel sheet name
func (r *Reader) WithSheet(sheet string) *Reader {
	if sheet != "" {
		r.sheet = sheet
	}
	return r
}

// ReadDataset reads the file into a column-oriented survey dataset
func (r *Reader) ReadDataset() (*survey.Dataset, error) {
	raw, err := r.readRaw()
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(r.filePath), filepath.Ext(r.filePath))
	data := survey.NewDataset(name)
	for i, header := range raw.Headers {
		column := make([]string, len(raw.Rows))
		for j, row := range raw.Rows {
			column[j] = row[i]
		}
		if err := data.AddColumn(header, column); err != nil {
			return nil, fmt.Errorf("building dataset from %s: %w", r.filePath, err)
		}
	}
	r.log.Debug("read dataset %q: %d rows, %d columns", name, data.Len(), len(raw.Headers))
	return data, nil
}

// ReadTargetTable reads the file as flat (variable, level, proportion)
// rows. The three columns are matched by header name, so extra columns and
// any column order are accepted.
func (r *Reader) ReadTargetTable() ([]survey.TargetRow, error) {
	raw, err := r.readRaw()
	if err != nil {
		return nil, err
	}

	idx := make(map[string]int, len(raw.Headers))
	for i, h := range raw.Headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"variable", "level", "proportion"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("target file %s is missing required column %q", r.filePath, required)
		}
	}

	rows := make([]survey.TargetRow, 0, len(raw.Rows))
	for i, row := range raw.Rows {
		prop, err := strconv.ParseFloat(strings.TrimSpace(row[idx["proportion"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("target file %s row %d: cannot parse proportion %q", r.filePath, i+1, row[idx["proportion"]])
		}
		rows = append(rows, survey.TargetRow{
			Variable:   strings.TrimSpace(row[idx["variable"]]),
			Level:      strings.TrimSpace(row[idx["level"]]),
			Proportion: prop,
		})
	}
	r.log.Debug("read target table %s: %d rows", r.filePath, len(rows))
	return rows, nil
}

// readRaw reads headers and string rows from the underlying file
func (r *Reader) readRaw() (*RawTable, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// readCSV reads a CSV file with a header row
func (r *Reader) readCSV() (*RawTable, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file %s is empty", r.filePath)
	}
	return rawFromRecords(records), nil
}

// readExcel reads the configured sheet of an Excel file
func (r *Reader) readExcel() (*RawTable, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", r.sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s of %s is empty", r.sheet, r.filePath)
	}
	return rawFromRecords(rows), nil
}

// rawFromRecords splits records into headers and rows, padding short rows
// to header width. Excel drops trailing empty cells.
func rawFromRecords(records [][]string) *RawTable {
	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	raw := &RawTable{Headers: headers, Rows: make([][]string, 0, len(records)-1)}
	for _, record := range records[1:] {
		row := make([]string, len(headers))
		for i := range headers {
			if i < len(record) {
				row[i] = strings.TrimSpace(record[i])
			}
		}
		raw.Rows = append(raw.Rows, row)
	}
	return raw
}
