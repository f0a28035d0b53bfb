package ingestion

import (
	"fmt"

	"github.com/jonathan/citation-mailer/internal/table"
)

// LoadTable reads the requested columns from every file and concatenates them in file order.
// A column missing from any file fails with a table.MissingColumnError naming that file.
func LoadTable(paths, columns []string, opts LoadOptions) (*table.ColumnTable, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no export files given")
	}
	exports, err := ReadExports(paths, opts)
	if err != nil {
		return nil, err
	}
	return BuildTable(exports, columns)
}

// BuildTable assembles a table from already parsed exports
func BuildTable(exports []*Export, columns []string) (*table.ColumnTable, error) {
	t := table.New()
	for _, col := range columns {
		var values []string
		for _, exp := range exports {
			part, ok := exp.Column(col)
			if !ok {
				return nil, &table.MissingColumnError{Column: col, File: exp.Path}
			}
			values = append(values, part...)
		}
		t.Set(col, values)
	}
	return t, nil
}
