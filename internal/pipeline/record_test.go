package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/citation-mailer/internal/table"
)

func TestFormatRate(t *testing.T) {
	tests := map[string]string{
		"12.50": "12.5",
		"7":     "7",
		"3.0":   "3",
		" 0.25": "0.25",
	}
	for raw, want := range tests {
		got, err := formatRate(ColumnAveragePerYear, 0, raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
}

func TestFormatRate_Invalid(t *testing.T) {
	_, err := formatRate(ColumnAveragePerYear, 4, "n/a")
	var valueErr *table.ValueError
	require.True(t, errors.As(err, &valueErr))
	assert.Equal(t, 4, valueErr.Row)

	_, err = formatRate(ColumnAveragePerYear, 0, " ")
	require.True(t, errors.As(err, &valueErr))
}

func TestFormatInt(t *testing.T) {
	got, err := formatInt(ColumnYear, 0, "2019.0")
	require.NoError(t, err)
	assert.Equal(t, "2019", got)

	_, err = formatInt(ColumnYear, 0, "")
	require.Error(t, err)
}

func TestFormatInt_NonFinite(t *testing.T) {
	for _, raw := range []string{"Inf", "-inf", "NaN", "1e300"} {
		_, err := formatInt(ColumnTotalCitations, 3, raw)
		var valueErr *table.ValueError
		require.True(t, errors.As(err, &valueErr), raw)
		assert.Equal(t, ColumnTotalCitations, valueErr.Column)
		assert.Equal(t, 3, valueErr.Row)
		assert.Equal(t, raw, valueErr.Value)
	}
}

func TestRecipients(t *testing.T) {
	assert.Equal(t, []string{"a@x.org", "b@y.org"}, Recipients(" a@x.org ;b@y.org; "))
	assert.Nil(t, Recipients(""))
}

func TestOutputFilename(t *testing.T) {
	name := OutputFilename("EMAIL_{index}_{authors}_{year}.eml", 0, "Lee, K.; Park, J.; Kim, S.", "2019")
	assert.Equal(t, "EMAIL_1_Lee, K.; Park, J.; K_2019.eml", name)
}

func TestOutputFilename_SanitizesSeparators(t *testing.T) {
	name := OutputFilename("{index}-{authors}.html", 9, "O'Neil/Smith: A", "")
	assert.Equal(t, "10-O'Neil_Smith_ A.html", name)
}
