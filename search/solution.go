package search

import (
	"strings"

	"github.com/timewinder-dev/attackpath/cas"
	"github.com/timewinder-dev/attackpath/strips"
)

// Step is one applied action and the hash of the state it led to.
type Step struct {
	Action *strips.Operator
	State  cas.Hash
}

// Solution is an attack path: the actions leading from the initial state to
// a goal state, in the order they are applied.
type Solution struct {
	Start cas.Hash
	Steps []Step
}

func (s Solution) Len() int {
	return len(s.Steps)
}

// Actions returns the operator names along the path.
func (s Solution) Actions() []string {
	out := make([]string, len(s.Steps))
	for i, st := range s.Steps {
		out[i] = st.Action.Name
	}
	return out
}

// String renders the path as "[<Op a>, <Op b>]". ExtractTokens relies on every
// action being wrapped in angle brackets.
func (s Solution) String() string {
	parts := make([]string, len(s.Steps))
	for i, st := range s.Steps {
		parts[i] = st.Action.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
