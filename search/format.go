package search

import (
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/timewinder-dev/attackpath/cas"
	"github.com/timewinder-dev/attackpath/strips"
)

// FormatResult renders every solution of res. With details set, the state
// reached after each step is loaded back from the result's store.
func FormatResult(res *Result, details bool) string {
	var b strings.Builder
	if len(res.Solutions) == 0 {
		b.WriteString(color.Yellow.Sprint("No attack path found"))
		b.WriteString("\n")
		return b.String()
	}
	for i, sol := range res.Solutions {
		b.WriteString(color.Bold.Sprintf("Path %d", i+1))
		b.WriteString(color.Gray.Sprintf(" (%d steps)\n", sol.Len()))
		if details && res.Store != nil {
			formatDetails(&b, res.Store, sol)
			continue
		}
		for j, st := range sol.Steps {
			b.WriteString(fmt.Sprintf("  %2d. %s\n", j+1, st.Action.Name))
		}
	}
	return b.String()
}

func formatDetails(b *strings.Builder, store cas.CAS, sol Solution) {
	if start, err := cas.Retrieve[*strips.State](store, sol.Start); err == nil {
		b.WriteString(color.Gray.Sprintf("      %s\n", start))
	}
	for j, st := range sol.Steps {
		b.WriteString(fmt.Sprintf("  %2d. %s\n", j+1, color.Cyan.Sprint(st.Action.Name)))
		state, err := cas.Retrieve[*strips.State](store, st.State)
		if err != nil {
			b.WriteString(color.Gray.Sprintf("      state 0x%x (unavailable)\n", st.State))
			continue
		}
		b.WriteString(color.Gray.Sprintf("      %s\n", state))
	}
}

// FormatStatistics summarises the search effort.
func FormatStatistics(stats Stats) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(color.Cyan.Sprint("=== Search statistics ==="))
	b.WriteString("\n")
	b.WriteString(color.Bold.Sprint("Nodes expanded: "))
	b.WriteString(fmt.Sprintf("%d\n", stats.Expanded))
	b.WriteString(color.Bold.Sprint("Successors generated: "))
	b.WriteString(fmt.Sprintf("%d\n", stats.Generated))
	b.WriteString(color.Bold.Sprint("Unique states found: "))
	b.WriteString(fmt.Sprintf("%d\n", stats.UniqueStates))
	b.WriteString(color.Bold.Sprint("Pruned (on path): "))
	b.WriteString(fmt.Sprintf("%d\n", stats.PrunedOnPath))
	if stats.PrunedGlobal > 0 {
		b.WriteString(color.Bold.Sprint("Pruned (visited): "))
		b.WriteString(fmt.Sprintf("%d\n", stats.PrunedGlobal))
	}
	if stats.DepthCutoffs > 0 {
		b.WriteString(color.Bold.Sprint("Depth cutoffs: "))
		b.WriteString(color.Yellow.Sprintf("%d\n", stats.DepthCutoffs))
	}
	b.WriteString(color.Bold.Sprint("Maximum depth: "))
	b.WriteString(fmt.Sprintf("%d\n", stats.MaxDepth))
	b.WriteString(color.Bold.Sprint("Attack paths found: "))
	if stats.Solutions > 0 {
		b.WriteString(color.Green.Sprintf("%d\n", stats.Solutions))
	} else {
		b.WriteString(color.Yellow.Sprintf("%d\n", stats.Solutions))
	}
	return b.String()
}
