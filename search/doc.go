// Package search finds attack paths in a planning task.
//
// A Searcher explores the task's state space breadth first and returns one
// solution per call to Next, keeping its frontier between calls so callers
// decide how many paths they want:
//
//   - Next / NextContext: pull the next path.
//   - All: range over paths until the caller breaks out.
//   - Collect: gather up to a fixed number of paths and report progress.
//
// Nodes live in an Arena and point at their parent by index. Every state is
// hashed into a cas.CAS, which backs the visited record and lets detailed
// output load states back after the search.
package search
