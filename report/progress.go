package report

import (
	"fmt"
	"io"
	"sync"
)

// Fixed progress points shared by every phase of a run.
const (
	CollectDone = 50
	Complete    = 100
)

// Progress receives integer percentages as a run advances.
type Progress interface {
	SetProgress(percent int)
}

// Silent does not output any progress
type Silent struct{}

func (Silent) SetProgress(int) {}

// LineProgress writes each value as a "[#] N" line, the format monitoring
// processes watch for on stdout.
type LineProgress struct {
	Writer io.Writer
}

func (p *LineProgress) SetProgress(percent int) {
	fmt.Fprintf(p.Writer, "[#] %d\n", percent)
}

// Recorder keeps every value it is given.
type Recorder struct {
	mu     sync.Mutex
	values []int
}

func (r *Recorder) SetProgress(percent int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, percent)
}

func (r *Recorder) Values() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.values))
	copy(out, r.values)
	return out
}
