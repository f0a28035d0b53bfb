package ranking

import (
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/jonathan/citation-mailer/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankedFixture() *table.ColumnTable {
	t := table.New()
	t.Set("DOI", []string{"a", "b", "c", "d", "e"})
	t.Set("Average per Year", []string{"2.5", "10", "2.5", "", "7.25"})
	t.Set("Authors", []string{"A, a", "B, b", "C, c", "D, d", "E, e"})
	return t
}

// rowTuples rebuilds each row as one string so alignment can be compared as a set
func rowTuples(t *testing.T, tbl *table.ColumnTable) []string {
	t.Helper()
	tuples := make([]string, 0, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		row, err := tbl.Row(i)
		require.NoError(t, err)
		tuples = append(tuples, fmt.Sprintf("%s|%s|%s", row["DOI"], row["Average per Year"], row["Authors"]))
	}
	sort.Strings(tuples)
	return tuples
}

func TestSort_DescendingNumeric(t *testing.T) {
	out, err := Sort(rankedFixture(), "Average per Year", true)
	require.NoError(t, err)

	dois, _ := out.Column("DOI")
	assert.Equal(t, []string{"b", "e", "a", "c", "d"}, dois)
}

func TestSort_Ascending(t *testing.T) {
	out, err := Sort(rankedFixture(), "Average per Year", false)
	require.NoError(t, err)

	dois, _ := out.Column("DOI")
	assert.Equal(t, []string{"a", "c", "e", "b", "d"}, dois)
}

func TestSort_PreservesRowAlignment(t *testing.T) {
	in := rankedFixture()
	for _, desc := range []bool{true, false} {
		out, err := Sort(in, "Average per Year", desc)
		require.NoError(t, err)
		assert.Equal(t, rowTuples(t, in), rowTuples(t, out))
	}
}

func TestSort_StableOnTies(t *testing.T) {
	out, err := Sort(rankedFixture(), "Average per Year", true)
	require.NoError(t, err)

	authors, _ := out.Column("Authors")
	// a and c share 2.5 and must keep input order
	assert.Equal(t, "A, a", authors[2])
	assert.Equal(t, "C, c", authors[3])
}

func TestSort_NumericNotLexical(t *testing.T) {
	tbl := table.New()
	tbl.Set("n", []string{"9", "10", "100"})

	out, err := Sort(tbl, "n", true)
	require.NoError(t, err)
	values, _ := out.Column("n")
	assert.Equal(t, []string{"100", "10", "9"}, values)
}

func TestSort_TextColumn(t *testing.T) {
	tbl := table.New()
	tbl.Set("title", []string{"beta", "alpha", "10"})

	out, err := Sort(tbl, "title", false)
	require.NoError(t, err)
	values, _ := out.Column("title")
	assert.Equal(t, []string{"10", "alpha", "beta"}, values)
}

func TestSort_MostlyNumericColumnWithText(t *testing.T) {
	tbl := table.New()
	tbl.Set("Average per Year", []string{"9.5", "12.0", "n/a", "3"})

	for _, desc := range []bool{true, false} {
		_, err := Sort(tbl, "Average per Year", desc)
		var valueErr *table.ValueError
		require.True(t, errors.As(err, &valueErr), "descending=%v", desc)
		assert.Equal(t, "Average per Year", valueErr.Column)
		assert.Equal(t, 2, valueErr.Row)
		assert.Equal(t, "n/a", valueErr.Value)
	}
}

func TestSort_NaNCountsAsText(t *testing.T) {
	tbl := table.New()
	tbl.Set("Average per Year", []string{"1", "NaN", "2"})

	_, err := Sort(tbl, "Average per Year", true)
	var valueErr *table.ValueError
	require.True(t, errors.As(err, &valueErr))
	assert.Equal(t, 1, valueErr.Row)
}

func TestNumeric(t *testing.T) {
	assert.True(t, Numeric([]string{"1", " 2.5 ", "", "-3e2"}))
	assert.True(t, Numeric(nil))
	assert.False(t, Numeric([]string{"1", "two"}))
	assert.False(t, Numeric([]string{"NaN"}))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	in := rankedFixture()
	_, err := Sort(in, "Average per Year", true)
	require.NoError(t, err)

	dois, _ := in.Column("DOI")
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, dois)
}

func TestSort_LengthMismatch(t *testing.T) {
	tbl := rankedFixture()
	tbl.Set("Short", []string{"x"})

	_, err := Sort(tbl, "Average per Year", true)
	var mismatch *table.ColumnLengthMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "Short", mismatch.Column)
	assert.Equal(t, 5, mismatch.Want)
}

func TestSort_MissingReference(t *testing.T) {
	_, err := Sort(rankedFixture(), "Total Citations", true)
	var missing *table.MissingColumnError
	assert.True(t, errors.As(err, &missing))
}

func TestTop_Insufficient(t *testing.T) {
	_, err := Top(rankedFixture(), 6)
	var insufficient *InsufficientRecordsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 6, insufficient.Requested)
	assert.Equal(t, 5, insufficient.Available)
}

func TestTop_Exact(t *testing.T) {
	out, err := Top(rankedFixture(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, out.Len())
}

func TestYearTotals(t *testing.T) {
	totals := YearTotals(map[int][]float64{
		2021: {1, 2, 3},
		2019: {4},
	})
	assert.Equal(t, []YearTotal{{Year: 2019, Citations: 4}, {Year: 2021, Citations: 6}}, totals)
}
