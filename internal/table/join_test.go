package table

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func citationReport() *ColumnTable {
	cr := New()
	cr.Set("DOI", []string{"10.1/b", "10.1/a"})
	cr.Set("Total Citations", []string{"40", "12"})
	return cr
}

func publications() *ColumnTable {
	wos := New()
	wos.Set("DOI", []string{"10.1/a", " 10.1/b ", "10.1/c"})
	wos.Set("Authors", []string{"Lee, K.", "Smith, J.; Doe, A.", "Nobody, N."})
	wos.Set("Publication Year", []string{"2019", "2020", "2021"})
	return wos
}

func TestJoin_AddsMatchedColumns(t *testing.T) {
	out, err := Join(citationReport(), publications(), "DOI", []string{"Authors", "Publication Year"})
	require.NoError(t, err)

	authors, err := out.Column("Authors")
	require.NoError(t, err)
	assert.Equal(t, []string{"Smith, J.; Doe, A.", "Lee, K."}, authors)

	years, err := out.Column("Publication Year")
	require.NoError(t, err)
	assert.Equal(t, []string{"2020", "2019"}, years)

	assert.Equal(t, []string{"DOI", "Total Citations", "Authors", "Publication Year"}, out.Columns())
}

func TestJoin_DoesNotMutateInputs(t *testing.T) {
	target := citationReport()
	_, err := Join(target, publications(), "DOI", []string{"Authors"})
	require.NoError(t, err)
	assert.False(t, target.Has("Authors"))
}

func TestJoin_SelfJoinReturnsKeyColumn(t *testing.T) {
	wos := publications()
	out, err := Join(wos, wos, "DOI", []string{"DOI"})
	require.NoError(t, err)

	before, _ := wos.Column("DOI")
	after, _ := out.Column("DOI")
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("key column changed (-before +after):\n%s", diff)
	}
}

func TestJoin_FirstMatchWins(t *testing.T) {
	source := New()
	source.Set("DOI", []string{"10.1/a", "10.1/a"})
	source.Set("Authors", []string{"First, F.", "Second, S."})

	target := New()
	target.Set("DOI", []string{"10.1/a"})

	out, err := Join(target, source, "DOI", []string{"Authors"})
	require.NoError(t, err)
	v, _ := out.Value("Authors", 0)
	assert.Equal(t, "First, F.", v)
}

func TestJoin_KeyNotFound(t *testing.T) {
	target := New()
	target.Set("DOI", []string{"10.1/a", "10.9/missing"})

	_, err := Join(target, publications(), "DOI", []string{"Authors"})
	var notFound *JoinKeyNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "10.9/missing", notFound.Key)
	assert.Equal(t, 1, notFound.Row)
}

func TestJoin_EmptyKeyNeverMatches(t *testing.T) {
	source := New()
	source.Set("DOI", []string{""})
	source.Set("Authors", []string{"Ghost, G."})

	target := New()
	target.Set("DOI", []string{"  "})

	_, err := Join(target, source, "DOI", []string{"Authors"})
	var notFound *JoinKeyNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Contains(t, err.Error(), "empty DOI")
}

func TestJoin_MissingColumn(t *testing.T) {
	_, err := Join(citationReport(), publications(), "DOI", []string{"Email Addresses"})
	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Email Addresses", missing.Column)
}

func TestJoin_ReplacesExistingColumn(t *testing.T) {
	target := citationReport()
	target.Set("Authors", []string{"old", "old"})

	out, err := Join(target, publications(), "DOI", []string{"Authors"})
	require.NoError(t, err)
	assert.Equal(t, []string{"DOI", "Total Citations", "Authors"}, out.Columns())
	v, _ := out.Value("Authors", 1)
	assert.Equal(t, "Lee, K.", v)
}
