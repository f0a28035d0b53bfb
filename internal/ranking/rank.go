// Package ranking orders merged publication tables by a citation metric.
package ranking

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/citation-mailer/internal/table"
)

// Sort returns a copy of t with every column permuted by the order of the reference column.
//
// The permutation is stable, so rows with equal reference values keep their input order.
// When every non-empty reference value is numeric the column sorts by value. A column
// that is mostly numeric but holds a non-numeric cell fails with a table.ValueError naming
// that cell. Any other column sorts by text. Empty reference cells sort last in both directions.
func Sort(t *table.ColumnTable, reference string, descending bool) (*table.ColumnTable, error) {
	refValues, err := t.Column(reference)
	if err != nil {
		return nil, err
	}

	// Every column must be row-aligned with the reference column
	for _, name := range t.Columns() {
		values, _ := t.Column(name)
		if len(values) != len(refValues) {
			return nil, &table.ColumnLengthMismatchError{Column: name, Want: len(refValues), Got: len(values)}
		}
	}

	perm, err := Permutation(reference, refValues, descending)
	if err != nil {
		return nil, err
	}

	out := table.New()
	for _, name := range t.Columns() {
		values, _ := t.Column(name)
		sorted := make([]string, len(perm))
		for i, src := range perm {
			sorted[i] = values[src]
		}
		out.Set(name, sorted)
	}
	return out, nil
}

// Permutation returns the row indices of values in sorted order.
// perm[i] is the input row that lands at output position i. column only names the
// values in errors.
func Permutation(column string, values []string, descending bool) ([]int, error) {
	keys, numeric, err := sortKeys(column, values)
	if err != nil {
		return nil, err
	}

	perm := make([]int, len(values))
	for i := range perm {
		perm[i] = i
	}

	less := func(a, b int) bool {
		ka, kb := keys[perm[a]], keys[perm[b]]
		if ka.empty != kb.empty {
			return kb.empty
		}
		if ka.empty {
			return false
		}
		if numeric {
			if descending {
				return ka.num > kb.num
			}
			return ka.num < kb.num
		}
		if descending {
			return ka.text > kb.text
		}
		return ka.text < kb.text
	}

	sort.SliceStable(perm, less)
	return perm, nil
}

// Numeric reports whether every non-empty value parses as a number, i.e. whether
// Sort orders the column by value rather than by text.
func Numeric(values []string) bool {
	for _, raw := range values {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		if _, ok := parseNumber(s); !ok {
			return false
		}
	}
	return true
}

type sortKey struct {
	text  string
	num   float64
	empty bool
}

// sortKeys decides between numeric and text ordering for a column.
// More numeric than non-numeric cells means the column is numeric and every
// non-numeric cell is an error.
func sortKeys(column string, values []string) ([]sortKey, bool, error) {
	keys := make([]sortKey, len(values))
	numbers, texts, firstText := 0, 0, -1
	for i, raw := range values {
		s := strings.TrimSpace(raw)
		keys[i].text = s
		if s == "" {
			keys[i].empty = true
			continue
		}
		f, ok := parseNumber(s)
		if !ok {
			texts++
			if firstText < 0 {
				firstText = i
			}
			continue
		}
		numbers++
		keys[i].num = f
	}

	if texts == 0 {
		return keys, true, nil
	}
	if numbers > texts {
		return nil, false, &table.ValueError{
			Column: column,
			Row:    firstText,
			Value:  values[firstText],
			Cause:  fmt.Errorf("not a number in a numeric column"),
		}
	}
	return keys, false, nil
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Top returns the first n rows of a ranked table
func Top(t *table.ColumnTable, n int) (*table.ColumnTable, error) {
	if n > t.Len() {
		return nil, &InsufficientRecordsError{Requested: n, Available: t.Len()}
	}
	return t.Slice(n)
}
