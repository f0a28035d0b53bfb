package ingestion

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const utf8BOM = "\xef\xbb\xbf"

// LoadOptions controls how export files are parsed
type LoadOptions struct {
	// SkipRows is the number of rows before the header row.
	// Citation Report exports carry a 10-row preamble.
	SkipRows int
}

// Export is one parsed export file: a header row and the data rows beneath it.
type Export struct {
	Path   string
	Header []string
	Rows   [][]string
	index  map[string]int
}

// ColumnIndex returns the position of the named header cell
func (e *Export) ColumnIndex(name string) (int, bool) {
	i, ok := e.index[name]
	return i, ok
}

// Column returns the values beneath the named header, or false if there is no such header
func (e *Export) Column(name string) ([]string, bool) {
	i, ok := e.index[name]
	if !ok {
		return nil, false
	}
	values := make([]string, len(e.Rows))
	for r, row := range e.Rows {
		if i < len(row) {
			values[r] = row[i]
		}
	}
	return values, true
}

// ReadExports parses every file in paths, in order
func ReadExports(paths []string, opts LoadOptions) ([]*Export, error) {
	exports := make([]*Export, 0, len(paths))
	for _, path := range paths {
		exp, err := ReadExport(path, opts)
		if err != nil {
			return nil, err
		}
		exports = append(exports, exp)
	}
	return exports, nil
}

// ReadExport parses a single export file, choosing the reader from the file extension
func ReadExport(path string, opts LoadOptions) (*Export, error) {
	var (
		records [][]string
		err     error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		records, err = readWorkbook(path)
	case ".csv":
		records, err = readDelimited(path, ',')
	case ".txt", ".tsv":
		records, err = readDelimited(path, '\t')
	case ".xls":
		return nil, &UnsupportedFormatError{
			Path: path,
			Hint: "legacy .xls workbooks are not supported; re-export as .xlsx or tab-delimited text",
		}
	default:
		return nil, &UnsupportedFormatError{Path: path}
	}
	if err != nil {
		return nil, &ReadError{Path: path, Cause: err}
	}

	return newExport(path, records, opts.SkipRows), nil
}

func newExport(path string, records [][]string, skipRows int) *Export {
	exp := &Export{Path: path, index: make(map[string]int)}
	if skipRows >= len(records) {
		return exp
	}
	records = records[skipRows:]

	header := make([]string, len(records[0]))
	for i, cell := range records[0] {
		if i == 0 {
			cell = strings.TrimPrefix(cell, utf8BOM)
		}
		header[i] = strings.TrimSpace(cell)
	}
	exp.Header = header
	for i, name := range header {
		if name == "" {
			continue
		}
		if _, dup := exp.index[name]; !dup {
			exp.index[name] = i
		}
	}

	for _, rec := range records[1:] {
		if blankRow(rec) {
			continue
		}
		row := make([]string, len(header))
		copy(row, rec)
		exp.Rows = append(exp.Rows, row)
	}
	return exp
}

func blankRow(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// readWorkbook returns the rows of the first sheet of an xlsx workbook.
// Cells are read as stored, not as displayed, so number formats such as "#,##0"
// or "0.0" do not leak thousands separators or rounding into the values.
func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	return f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}

// readDelimited reads a comma or tab separated export
func readDelimited(path string, comma rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = comma
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
