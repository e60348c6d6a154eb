package strips

import (
	"errors"
	"fmt"
)

var ErrInvalidTask = errors.New("invalid task")

// Successor pairs an applicable operator with the state it produces.
type Successor struct {
	Op    *Operator
	State State
}

// Task is everything the search engine needs from a planning problem. How the
// states and operators were produced is up to the implementation.
type Task interface {
	InitialState() State
	GoalReached(s State) bool
	// SuccessorStates returns the successors of s for every applicable
	// operator, in a fixed order.
	SuccessorStates(s State) []Successor
}

// GroundTask is a fully grounded STRIPS problem.
type GroundTask struct {
	Name      string
	Init      State
	Goals     []Fact
	Operators []*Operator
}

func NewGroundTask(name string, init []Fact, goals []Fact, ops []*Operator) *GroundTask {
	return &GroundTask{
		Name:      name,
		Init:      NewState(init...),
		Goals:     normalize(goals),
		Operators: ops,
	}
}

func (t *GroundTask) InitialState() State {
	return t.Init
}

func (t *GroundTask) GoalReached(s State) bool {
	return s.ContainsAll(t.Goals)
}

func (t *GroundTask) SuccessorStates(s State) []Successor {
	var out []Successor
	for _, op := range t.Operators {
		if !op.Applicable(s) {
			continue
		}
		out = append(out, Successor{Op: op, State: op.Apply(s)})
	}
	return out
}

// Validate checks the structural rules a task must satisfy and returns
// warnings for facts that can never become true.
func (t *GroundTask) Validate() ([]string, error) {
	seen := make(map[string]bool, len(t.Operators))
	reachable := make(map[Fact]bool)
	for _, f := range t.Init.facts {
		reachable[f] = true
	}
	for i, op := range t.Operators {
		if op == nil {
			return nil, fmt.Errorf("%w: operator %d is nil", ErrInvalidTask, i)
		}
		if op.Name == "" {
			return nil, fmt.Errorf("%w: operator %d has no name", ErrInvalidTask, i)
		}
		if seen[op.Name] {
			return nil, fmt.Errorf("%w: duplicate operator %q", ErrInvalidTask, op.Name)
		}
		seen[op.Name] = true
		for _, f := range op.Add {
			reachable[f] = true
		}
	}

	var warnings []string
	for _, g := range t.Goals {
		if !reachable[g] {
			warnings = append(warnings, fmt.Sprintf("goal fact %s is never added", g))
		}
	}
	for _, op := range t.Operators {
		for _, f := range op.Pre {
			if !reachable[f] {
				warnings = append(warnings, fmt.Sprintf("operator %s requires %s, which is never added", op.Name, f))
			}
		}
	}
	return warnings, nil
}
