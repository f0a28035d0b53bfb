package pipeline

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/jonathan/citation-mailer/internal/table"
)

// Web of Science column headers read by the pipeline
const (
	ColumnAuthors        = "Authors"
	ColumnTitle          = "Article Title"
	ColumnEmails         = "Email Addresses"
	ColumnYear           = "Publication Year"
	ColumnTotalCitations = "Total Citations"
	ColumnAveragePerYear = "Average per Year"
)

// authorsInFilename is how much of the raw authors field goes into an output filename
const authorsInFilename = 20

// intValue reads a numeric cell that must be present, truncating any fraction ("2019.0" -> 2019)
func intValue(column string, row int, raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, &table.ValueError{Column: column, Row: row, Value: raw}
	}
	f, err := table.ParseFloat(column, row, raw)
	if err != nil {
		return 0, err
	}
	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, &table.ValueError{Column: column, Row: row, Value: raw}
	}
	return int(f), nil
}

// formatInt renders a numeric cell as an integer string
func formatInt(column string, row int, raw string) (string, error) {
	n, err := intValue(column, row, raw)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(n), nil
}

// formatRate renders a citation rate exactly as written, without float rounding noise
// and without trailing zeros ("12.50" -> "12.5").
func formatRate(column string, row int, raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", &table.ValueError{Column: column, Row: row, Value: raw}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", &table.ValueError{Column: column, Row: row, Value: raw, Cause: err}
	}
	return d.String(), nil
}

// Recipients splits an e-mail addresses field into individual addresses
func Recipients(field string) []string {
	var out []string
	for _, part := range strings.Split(field, ";") {
		if addr := strings.TrimSpace(part); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// OutputFilename expands pattern for one record and makes the result safe to use as a file name.
// Recognised fields: {index} (1-based), {authors} (start of the raw authors field), {year}.
func OutputFilename(pattern string, index int, authors, year string) string {
	runes := []rune(authors)
	if len(runes) > authorsInFilename {
		runes = runes[:authorsInFilename]
	}
	name := strings.NewReplacer(
		"{index}", strconv.Itoa(index+1),
		"{authors}", string(runes),
		"{year}", year,
	).Replace(pattern)
	return sanitizeFilename(name)
}

func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == filepath.Separator, r == '/', r == '\\':
			return '_'
		case strings.ContainsRune(`:*?"<>|`, r):
			return '_'
		case unicode.IsControl(r):
			return '_'
		}
		return r
	}, name)
}
