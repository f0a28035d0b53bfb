package ingestion

import (
	"errors"
	"testing"

	"github.com/jonathan/citation-mailer/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractYearSeries_ConcatenatesAcrossFiles(t *testing.T) {
	first := writeText(t, "cr1.txt", "DOI\t2019\t2020\n10.1/a\t1\t2\n10.1/b\t3\t\n")
	second := writeText(t, "cr2.txt", "DOI\t2020\t2021\n10.1/c\t5\t8\n")

	series, err := ExtractYearSeries([]string{first, second}, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 3}, series[2019])
	assert.Equal(t, []float64{2, 0, 5}, series[2020])
	assert.Equal(t, []float64{8}, series[2021])
	assert.Equal(t, []int{2019, 2020, 2021}, series.Years())
}

func TestExtractYearSeries_AbsentYearsOmitted(t *testing.T) {
	path := writeText(t, "cr.txt", "DOI\t1979\t2019\t2030\n10.1/a\t1\t2\t3\n")

	series, err := ExtractYearSeries([]string{path}, LoadOptions{})
	require.NoError(t, err)

	_, has2018 := series[2018]
	_, has1979 := series[1979]
	_, has2030 := series[2030]
	assert.False(t, has2018)
	assert.False(t, has1979, "years before the scan window are ignored")
	assert.False(t, has2030, "years after the scan window are ignored")
	assert.Len(t, series, 1)
}

func TestExtractYearSeries_FloatHeaders(t *testing.T) {
	path := writeWorkbook(t, "cr.xlsx", [][]any{
		{"DOI", 2019, 2020.0},
		{"10.1/a", 4, 6},
	})

	series, err := ExtractYearSeries([]string{path}, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []float64{4}, series[2019])
	assert.Equal(t, []float64{6}, series[2020])
}

func TestExtractYearSeries_NonNumericCell(t *testing.T) {
	path := writeText(t, "cr.txt", "DOI\t2019\n10.1/a\tmany\n")

	_, err := ExtractYearSeries([]string{path}, LoadOptions{})
	var valueErr *table.ValueError
	require.True(t, errors.As(err, &valueErr))
	assert.Equal(t, "2019", valueErr.Column)
}
