package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTransition_Linear(t *testing.T) {
	order := []Stage{StageInit, StageLoaded, StageJoined, StageRanked, StageEmitting, StageDone}
	for i := 1; i < len(order); i++ {
		assert.NoError(t, checkTransition(order[i-1], order[i]))
	}
}

func TestCheckTransition_Skip(t *testing.T) {
	err := checkTransition(StageLoaded, StageRanked)
	var te *TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "invalid stage transition loaded -> ranked", te.Error())
}

func TestCheckTransition_NoReentry(t *testing.T) {
	assert.Error(t, checkTransition(StageDone, StageInit))
	assert.Error(t, checkTransition(StageDone, StageLoaded))
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "emitting", StageEmitting.String())
	assert.Equal(t, "stage(42)", Stage(42).String())
}
