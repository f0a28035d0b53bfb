package pipeline

import "fmt"

// Stage is the position of a batch run in its linear lifecycle
type Stage int

// Stages in the order a run passes through them
const (
	StageInit Stage = iota
	StageLoaded
	StageJoined
	StageRanked
	StageEmitting
	StageDone
)

var stageNames = map[Stage]string{
	StageInit:     "init",
	StageLoaded:   "loaded",
	StageJoined:   "joined",
	StageRanked:   "ranked",
	StageEmitting: "emitting",
	StageDone:     "done",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// stagePredecessor holds the only stage each stage may be entered from
var stagePredecessor = map[Stage]Stage{
	StageLoaded:   StageInit,
	StageJoined:   StageLoaded,
	StageRanked:   StageJoined,
	StageEmitting: StageRanked,
	StageDone:     StageEmitting,
}

// TransitionError is returned when a run tries to skip or revisit a stage
type TransitionError struct {
	From Stage
	To   Stage
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid stage transition %s -> %s", e.From, e.To)
}

func checkTransition(from, to Stage) error {
	want, ok := stagePredecessor[to]
	if !ok || want != from {
		return &TransitionError{From: from, To: to}
	}
	return nil
}
