package domain

import "strings"

// State is the build outcome of a stage or a status.
type State string

const (
	StateSuccess State = "success"
	StatePending State = "pending"
	StateError   State = "error"
	StateFailure State = "failure"
	StateUnknown State = "unknown"
)

// States lists every State value in display order.
var States = []State{StateSuccess, StatePending, StateError, StateFailure, StateUnknown}

// ParseState maps a raw payload value to a State.
// Anything outside the enumeration, including the empty string, is StateUnknown.
func ParseState(raw string) State {
	s := State(strings.ToLower(strings.TrimSpace(raw)))
	if s.Valid() {
		return s
	}
	return StateUnknown
}

// Valid reports whether s is one of the five known states.
func (s State) Valid() bool {
	switch s {
	case StateSuccess, StatePending, StateError, StateFailure, StateUnknown:
		return true
	}
	return false
}

// Status is the outcome of one job within a stage.
type Status struct {
	Name  string
	State State
}

// Stage is one step of the pipeline. State is the aggregate supplied by the
// payload and is independent of the individual statuses.
type Stage struct {
	Name     string
	State    State
	Time     string
	Statuses []Status
}

// Pipeline is an immutable snapshot of a pipeline run.
// Stages are in execution order, left to right.
type Pipeline struct {
	Repository Repository
	Ref        string
	Stages     []Stage
}

// MaxStatuses returns the length of the longest status column.
func (p Pipeline) MaxStatuses() int {
	max := 0
	for _, s := range p.Stages {
		if len(s.Statuses) > max {
			max = len(s.Statuses)
		}
	}
	return max
}

// Label returns the "owner/name @ref" header used by the viewers.
func (p Pipeline) Label() string {
	label := p.Repository.String()
	if p.Ref != "" {
		if label != "" {
			label += " "
		}
		label += "@" + p.Ref
	}
	return label
}
