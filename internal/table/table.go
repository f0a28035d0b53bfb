package table

import (
	"math"
	"strconv"
	"strings"
)

// ColumnTable maps column names to row-aligned value sequences.
// Cells are kept as the text read from the export; numeric interpretation happens on demand.
// Column order is the order in which columns were first set.
type ColumnTable struct {
	names   []string
	columns map[string][]string
}

// New creates an empty ColumnTable
func New() *ColumnTable {
	return &ColumnTable{columns: make(map[string][]string)}
}

// Set stores values under name, replacing any existing column of that name.
// The slice is copied so later changes by the caller do not leak into the table.
// Set does not check row alignment; use Validate for that.
func (t *ColumnTable) Set(name string, values []string) {
	if _, ok := t.columns[name]; !ok {
		t.names = append(t.names, name)
	}
	t.columns[name] = append([]string(nil), values...)
}

// Has reports whether the table contains a column named name
func (t *ColumnTable) Has(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Column returns a copy of the named column
func (t *ColumnTable) Column(name string) ([]string, error) {
	values, ok := t.columns[name]
	if !ok {
		return nil, &MissingColumnError{Column: name}
	}
	return append([]string(nil), values...), nil
}

// Columns returns the column names in insertion order
func (t *ColumnTable) Columns() []string {
	return append([]string(nil), t.names...)
}

// Len returns the number of rows, taken from the first column.
// An empty table has zero rows.
func (t *ColumnTable) Len() int {
	if len(t.names) == 0 {
		return 0
	}
	return len(t.columns[t.names[0]])
}

// Value returns the cell at row in the named column
func (t *ColumnTable) Value(name string, row int) (string, error) {
	values, ok := t.columns[name]
	if !ok {
		return "", &MissingColumnError{Column: name}
	}
	if row < 0 || row >= len(values) {
		return "", &ColumnLengthMismatchError{Column: name, Want: row + 1, Got: len(values)}
	}
	return values[row], nil
}

// Float parses the cell at row in the named column as a float64.
// Empty cells read as zero.
func (t *ColumnTable) Float(name string, row int) (float64, error) {
	raw, err := t.Value(name, row)
	if err != nil {
		return 0, err
	}
	return ParseFloat(name, row, raw)
}

// Validate checks that every column has the same length as the first one
func (t *ColumnTable) Validate() error {
	want := t.Len()
	for _, name := range t.names {
		if got := len(t.columns[name]); got != want {
			return &ColumnLengthMismatchError{Column: name, Want: want, Got: got}
		}
	}
	return nil
}

// Clone returns a deep copy of the table
func (t *ColumnTable) Clone() *ColumnTable {
	clone := New()
	for _, name := range t.names {
		clone.Set(name, t.columns[name])
	}
	return clone
}

// Row returns the values of every column at index i, keyed by column name
func (t *ColumnTable) Row(i int) (map[string]string, error) {
	row := make(map[string]string, len(t.names))
	for _, name := range t.names {
		v, err := t.Value(name, i)
		if err != nil {
			return nil, err
		}
		row[name] = v
	}
	return row, nil
}

// Slice returns a new table holding rows [0, n) of every column
func (t *ColumnTable) Slice(n int) (*ColumnTable, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if n > t.Len() {
		n = t.Len()
	}
	out := New()
	for _, name := range t.names {
		out.Set(name, t.columns[name][:n])
	}
	return out, nil
}

// ParseFloat interprets a spreadsheet cell as a number.
// Empty cells read as zero; anything else that does not parse to a finite number is a ValueError.
func ParseFloat(column string, row int, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ValueError{Column: column, Row: row, Value: raw, Cause: err}
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, &ValueError{Column: column, Row: row, Value: raw, Cause: errNotFinite}
	}
	return f, nil
}
