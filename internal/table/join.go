package table

import "strings"

// CanonicalKey returns the form of a cell used for join matching.
// Keys match by exact string equality after trimming surrounding whitespace.
func CanonicalKey(raw string) string {
	return strings.TrimSpace(raw)
}

// Join left-joins columns from source onto target by matching keyColumn.
//
// Every target row must find a source row with an equal canonical key, otherwise a
// JoinKeyNotFoundError names the first row without one. When source holds the key more
// than once the first occurrence wins. Empty keys never match. The returned table holds
// every target column followed by the added columns; an added column that already
// exists in target replaces it in place. Neither input is modified.
func Join(target, source *ColumnTable, keyColumn string, columns []string) (*ColumnTable, error) {
	targetKeys, err := target.Column(keyColumn)
	if err != nil {
		return nil, err
	}
	sourceKeys, err := source.Column(keyColumn)
	if err != nil {
		return nil, err
	}

	added := make(map[string][]string, len(columns))
	for _, col := range columns {
		values, err := source.Column(col)
		if err != nil {
			return nil, err
		}
		if len(values) != len(sourceKeys) {
			return nil, &ColumnLengthMismatchError{Column: col, Want: len(sourceKeys), Got: len(values)}
		}
		added[col] = values
	}

	// first-row index; equivalent to scanning source top to bottom for each target row
	index := make(map[string]int, len(sourceKeys))
	for j, raw := range sourceKeys {
		key := CanonicalKey(raw)
		if key == "" {
			continue
		}
		if _, seen := index[key]; !seen {
			index[key] = j
		}
	}

	matches := make([]int, len(targetKeys))
	for i, raw := range targetKeys {
		key := CanonicalKey(raw)
		j, ok := index[key]
		if key == "" || !ok {
			return nil, &JoinKeyNotFoundError{KeyColumn: keyColumn, Key: key, Row: i}
		}
		matches[i] = j
	}

	out := target.Clone()
	for _, col := range columns {
		values := make([]string, len(matches))
		for i, j := range matches {
			values[i] = added[col][j]
		}
		out.Set(col, values)
	}
	return out, nil
}
