package ingestion

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/citation-mailer/internal/table"
)

// Scan window for per-year citation columns
const (
	FirstYear = 1980
	LastYear  = 2029
)

// YearSeries maps a calendar year to the citation counts found under that year's column
type YearSeries map[int][]float64

// Years returns the years present in the series in ascending order
func (s YearSeries) Years() []int {
	years := make([]int, 0, len(s))
	for y := FirstYear; y <= LastYear; y++ {
		if _, ok := s[y]; ok {
			years = append(years, y)
		}
	}
	return years
}

// ExtractYearSeries reads the per-year citation columns of Citation Report exports
func ExtractYearSeries(paths []string, opts LoadOptions) (YearSeries, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no export files given")
	}
	exports, err := ReadExports(paths, opts)
	if err != nil {
		return nil, err
	}
	return BuildYearSeries(exports)
}

// BuildYearSeries collects, for every year in the scan window, that year's column from each
// export that has one. Years no export carries are left out of the result.
func BuildYearSeries(exports []*Export) (YearSeries, error) {
	series := make(YearSeries)
	for year := FirstYear; year <= LastYear; year++ {
		var counts []float64
		found := false
		for _, exp := range exports {
			col, ok := yearColumn(exp, year)
			if !ok {
				continue
			}
			found = true
			label := strconv.Itoa(year)
			for row, raw := range col {
				v, err := table.ParseFloat(label, row, raw)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", exp.Path, err)
				}
				counts = append(counts, v)
			}
		}
		if found {
			series[year] = counts
		}
	}
	return series, nil
}

// yearColumn finds a header that names year, accepting "2019" and "2019.0" spellings
func yearColumn(exp *Export, year int) ([]string, bool) {
	for _, h := range exp.Header {
		if headerYear(h) == year {
			return exp.Column(h)
		}
	}
	return nil, false
}

func headerYear(h string) int {
	h = strings.TrimSpace(h)
	if y, err := strconv.Atoi(h); err == nil {
		return y
	}
	if f, err := strconv.ParseFloat(h, 64); err == nil && f == float64(int(f)) {
		return int(f)
	}
	return 0
}
