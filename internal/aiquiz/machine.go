package aiquiz

import (
	"errors"
	"fmt"
)

type Step int

const (
	StepStart Step = iota
	StepDecide
	StepGenerate
	StepFinalize
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepStart:
		return "START"
	case StepDecide:
		return "DECIDE"
	case StepGenerate:
		return "GENERATE"
	case StepFinalize:
		return "FINALIZE"
	case StepDone:
		return "DONE"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

type Event int

const (
	EventDispatched Event = iota
	EventContinue
	EventStop
	EventQuestionAdded
	EventFinalized
)

func (e Event) String() string {
	switch e {
	case EventDispatched:
		return "dispatched"
	case EventContinue:
		return "continue"
	case EventStop:
		return "stop"
	case EventQuestionAdded:
		return "question_added"
	case EventFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

var ErrInvalidTransition = errors.New("invalid transition")

type edge struct {
	from Step
	on   Event
}

var transitions = map[edge]Step{
	{StepStart, EventDispatched}:       StepDecide,
	{StepDecide, EventContinue}:        StepGenerate,
	{StepDecide, EventStop}:            StepFinalize,
	{StepGenerate, EventQuestionAdded}: StepDecide,
	{StepFinalize, EventFinalized}:     StepDone,
}

func transition(from Step, on Event) (Step, error) {
	next, ok := transitions[edge{from, on}]
	if !ok {
		return from, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, from, on)
	}
	return next, nil
}
