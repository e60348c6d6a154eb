package search

import (
	"slices"

	"github.com/timewinder-dev/attackpath/cas"
	"github.com/timewinder-dev/attackpath/strips"
)

// NodeID indexes a Node in an Arena.
type NodeID int

// NoParent is the parent of the root node.
const NoParent NodeID = -1

// Node links a state to the action and parent that produced it. Parent is a
// plain index, so nodes never own each other and the tree can be walked
// upwards without holding pointers into the arena.
type Node struct {
	State  strips.State
	Hash   cas.Hash
	Parent NodeID
	Action *strips.Operator
	Depth  int
}

// Arena owns every node of one search. Nodes are appended and never removed.
type Arena struct {
	nodes []Node
}

func (a *Arena) Root(s strips.State, h cas.Hash) NodeID {
	a.nodes = append(a.nodes, Node{State: s, Hash: h, Parent: NoParent})
	return NodeID(len(a.nodes) - 1)
}

func (a *Arena) Child(parent NodeID, op *strips.Operator, s strips.State, h cas.Hash) NodeID {
	a.nodes = append(a.nodes, Node{
		State:  s,
		Hash:   h,
		Parent: parent,
		Action: op,
		Depth:  a.nodes[parent].Depth + 1,
	})
	return NodeID(len(a.nodes) - 1)
}

// Get returns a copy of the node; the backing slice may move on the next append.
func (a *Arena) Get(id NodeID) Node {
	return a.nodes[id]
}

func (a *Arena) Len() int {
	return len(a.nodes)
}

// OnPath reports whether s is the state of id or of any of its ancestors.
func (a *Arena) OnPath(id NodeID, s strips.State, h cas.Hash) bool {
	for id != NoParent {
		n := &a.nodes[id]
		if n.Hash == h && n.State.Equal(s) {
			return true
		}
		id = n.Parent
	}
	return false
}

// Path walks from id back to the root and returns the actions in
// root-to-goal order.
func (a *Arena) Path(id NodeID) Solution {
	var steps []Step
	for {
		n := &a.nodes[id]
		if n.Parent == NoParent {
			slices.Reverse(steps)
			return Solution{Start: n.Hash, Steps: steps}
		}
		steps = append(steps, Step{Action: n.Action, State: n.Hash})
		id = n.Parent
	}
}
