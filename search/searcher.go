package search

import (
	"context"
	"fmt"
	"io"
	"iter"

	"github.com/timewinder-dev/attackpath/cas"
	"github.com/timewinder-dev/attackpath/strips"
)

// Dedup selects how successor states that were seen before are handled.
type Dedup int

const (
	// DedupPathLocal prunes a successor only when it already appears on the
	// path from the root to the node being expanded. The same state may be
	// expanded again from a different branch.
	DedupPathLocal Dedup = iota
	// DedupGlobal also prunes any successor whose state has been generated
	// anywhere in the search. Fewer paths are found through merging branches.
	DedupGlobal
)

func (d Dedup) String() string {
	switch d {
	case DedupPathLocal:
		return "path"
	case DedupGlobal:
		return "global"
	}
	return fmt.Sprintf("Dedup(%d)", int(d))
}

func ParseDedup(s string) (Dedup, error) {
	switch s {
	case "", "path":
		return DedupPathLocal, nil
	case "global":
		return DedupGlobal, nil
	}
	return 0, fmt.Errorf("unknown dedup mode %q (want path or global)", s)
}

// Stats counts the work a Searcher has done so far.
type Stats struct {
	Expanded     int // nodes whose successors were generated
	Generated    int // successor states produced by the task
	PrunedOnPath int // successors already on their own path
	PrunedGlobal int // successors pruned by DedupGlobal
	DepthCutoffs int // nodes left unexpanded because of WithMaxDepth
	UniqueStates int
	MaxDepth     int
	Solutions    int
}

type Option func(*Searcher)

func WithDedup(d Dedup) Option {
	return func(s *Searcher) { s.dedup = d }
}

// WithStore sets the store used to hash states for the visited record.
func WithStore(c cas.CAS) Option {
	return func(s *Searcher) { s.store = c }
}

// WithDebugWriter receives one line per dequeued node.
func WithDebugWriter(w io.Writer) Option {
	return func(s *Searcher) { s.debug = w }
}

// WithMaxDepth stops expansion of nodes at depth n. Zero means unbounded.
func WithMaxDepth(n int) Option {
	return func(s *Searcher) { s.maxDepth = n }
}

// Searcher walks a task's state space breadth first and hands back one
// solution per call to Next. Goal nodes are not expanded further; the
// search carries on with the rest of the frontier on the following call.
//
// A Searcher is not safe for concurrent use.
type Searcher struct {
	task     strips.Task
	store    cas.CAS
	dedup    Dedup
	maxDepth int
	debug    io.Writer

	arena   Arena
	queue   []NodeID
	visited map[cas.Hash]bool
	stats   Stats
	err     error
}

func New(task strips.Task, opts ...Option) (*Searcher, error) {
	s := &Searcher{
		task:    task,
		store:   cas.NewMemoryCAS(),
		debug:   io.Discard,
		visited: make(map[cas.Hash]bool),
	}
	for _, opt := range opts {
		opt(s)
	}

	start := task.InitialState()
	h, err := s.store.Put(&start)
	if err != nil {
		return nil, fmt.Errorf("hashing initial state: %w", err)
	}
	s.queue = append(s.queue, s.arena.Root(start, h))
	s.visited[h] = true
	return s, nil
}

// Next returns the next solution in breadth-first order. It returns false
// once the frontier is empty, or after a store failure reported by Err.
func (s *Searcher) Next() (Solution, bool) {
	sol, ok, _ := s.NextContext(context.Background())
	return sol, ok
}

// NextContext is Next with a cancellation check before every dequeue. A
// cancelled context leaves the frontier intact, so a later call resumes
// where this one stopped.
func (s *Searcher) NextContext(ctx context.Context) (Solution, bool, error) {
	for len(s.queue) != 0 {
		if err := ctx.Err(); err != nil {
			return Solution{}, false, err
		}
		id := s.queue[0]
		s.queue = s.queue[1:]
		node := s.arena.Get(id)
		if node.Depth > s.stats.MaxDepth {
			s.stats.MaxDepth = node.Depth
		}

		fmt.Fprintf(s.debug, "node #%d depth=%d queue=%d state=%s\n", id, node.Depth, len(s.queue), node.State)

		if s.task.GoalReached(node.State) {
			s.stats.Solutions++
			sol := s.arena.Path(id)
			fmt.Fprintf(s.debug, "  goal reached: %s\n", sol)
			return sol, true, nil
		}

		if s.maxDepth > 0 && node.Depth >= s.maxDepth {
			s.stats.DepthCutoffs++
			continue
		}

		if err := s.expand(id, node); err != nil {
			s.err = err
			s.queue = nil
			return Solution{}, false, err
		}
	}
	return Solution{}, false, s.err
}

func (s *Searcher) expand(id NodeID, node Node) error {
	s.stats.Expanded++
	for _, succ := range s.task.SuccessorStates(node.State) {
		s.stats.Generated++
		h, err := s.store.Put(&succ.State)
		if err != nil {
			return fmt.Errorf("hashing state: %w", err)
		}

		if s.arena.OnPath(id, succ.State, h) {
			s.stats.PrunedOnPath++
			fmt.Fprintf(s.debug, "  %s: state already on path (pruning)\n", succ.Op)
			continue
		}
		if s.dedup == DedupGlobal && s.visited[h] {
			s.stats.PrunedGlobal++
			fmt.Fprintf(s.debug, "  %s: state already visited (pruning)\n", succ.Op)
			continue
		}

		s.queue = append(s.queue, s.arena.Child(id, succ.Op, succ.State, h))
		s.visited[h] = true
	}
	return nil
}

// All yields solutions until the search is exhausted or the caller stops.
func (s *Searcher) All() iter.Seq[Solution] {
	return func(yield func(Solution) bool) {
		for {
			sol, ok := s.Next()
			if !ok || !yield(sol) {
				return
			}
		}
	}
}

// Err reports a failure that ended the search early.
func (s *Searcher) Err() error {
	return s.err
}

// Exhausted reports whether the frontier is empty.
func (s *Searcher) Exhausted() bool {
	return len(s.queue) == 0
}

func (s *Searcher) Stats() Stats {
	st := s.stats
	st.UniqueStates = len(s.visited)
	return st
}

// Store is the content-addressed store holding every generated state.
func (s *Searcher) Store() cas.CAS {
	return s.store
}
