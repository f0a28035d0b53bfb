package rendering

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFill_ReplacesInOrder(t *testing.T) {
	got, err := Fill("Hello !NAME!, you wrote !TITLE! in !YEAR!",
		[]string{"!NAME!", "!TITLE!", "!YEAR!"},
		[]string{"Ada", "Paper X", "1990"})
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada, you wrote Paper X in 1990", got)
}

func TestFill_ReplacesEveryOccurrence(t *testing.T) {
	got, err := Fill("!N! and !N!", []string{"!N!"}, []string{"Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Ada and Ada", got)
}

func TestFill_ChainedSubstitution(t *testing.T) {
	// a value holding a later token is rewritten by that later step
	got, err := Fill("Title: !TITLE!",
		[]string{"!TITLE!", "!YEAR!"},
		[]string{"Review of !YEAR!", "1990"})
	require.NoError(t, err)
	assert.Equal(t, "Title: Review of 1990", got)
}

func TestFill_EarlierTokenInLaterValueNotRewritten(t *testing.T) {
	got, err := Fill("!YEAR! / !TITLE!",
		[]string{"!YEAR!", "!TITLE!"},
		[]string{"1990", "About !YEAR!"})
	require.NoError(t, err)
	assert.Equal(t, "1990 / About !YEAR!", got)
}

func TestFill_ArityMismatch(t *testing.T) {
	_, err := Fill("x", []string{"!A!", "!B!"}, []string{"a"})
	var arity *ArityMismatchError
	require.True(t, errors.As(err, &arity))
	assert.Equal(t, 2, arity.Placeholders)
	assert.Equal(t, 1, arity.Values)
}

func TestCollisions(t *testing.T) {
	found := Collisions(
		[]string{"!TITLE!", "!YEAR!"},
		[]string{"Review of !YEAR!", "About !TITLE!"})
	require.Len(t, found, 1)
	assert.Equal(t, Collision{Value: 0, Placeholder: 1, Token: "!YEAR!"}, found[0])
}

func TestResidual(t *testing.T) {
	left := Residual("Dear !AUTHOR_NAMES!, thanks", []string{"!AUTHOR_NAMES!", "!TOTCIT!"})
	assert.Equal(t, []string{"!AUTHOR_NAMES!"}, left)
}
