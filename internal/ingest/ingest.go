// Package ingest reads a survey export from disk into the in-memory
// table model. Supported formats: .xlsx (first row is the header) and
// CSV/TSV. Files are read once at pipeline start.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/botsift/botsift-cli/internal/table"
)

// Options selects the worksheet and CSV dialect.
type Options struct {
	// SheetName selects an .xlsx worksheet by name; empty means use
	// SheetIndex.
	SheetName string
	// SheetIndex is the 1-based worksheet index; 0 means the first.
	SheetIndex int
	// Delimiter for CSV. If 0, it is sniffed from the extension
	// (',' for .csv, '\t' for .tsv).
	Delimiter rune
}

// Load reads path into a table, dispatching on the file extension.
func Load(path string, opt Options) (*table.Table, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		return LoadXLSX(path, opt.SheetName, opt.SheetIndex)
	case strings.HasSuffix(lower, ".csv"), strings.HasSuffix(lower, ".tsv"):
		return LoadCSV(path, opt.Delimiter)
	default:
		return nil, fmt.Errorf("unsupported input format: %s", path)
	}
}

// LoadCSV reads a CSV/TSV file into a table. The first record is the
// header; short rows are padded with missing cells.
func LoadCSV(path string, delim rune) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	if delim == 0 {
		delim = ','
		if strings.HasSuffix(strings.ToLower(path), ".tsv") {
			delim = '\t'
		}
	}
	r := csv.NewReader(f)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty file", path)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	var records [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		records = append(records, append([]string(nil), rec...))
	}
	return table.FromRecords(header, records)
}
