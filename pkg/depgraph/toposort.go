package depgraph

import (
	"cmp"
	"slices"
)

// Sort returns the graph's nodes in topological order: every dependency
// appears before every node that depends on it. Each node appears exactly
// once, including nodes left with empty entries after edge removal.
//
// The order among nodes with no dependency relationship between them is
// unspecified and may vary between calls, since candidates are drained in
// map iteration order. Callers needing a stable order must impose their own
// tie-break on top.
//
// Sort assumes the graph is acyclic, which [Graph.Depend] guarantees for any
// graph built through this package.
func Sort[N comparable](g Graph[N]) []N {
	all := g.Nodes()

	// Remaining dependent count per node. Nodes nothing depends on are
	// ready immediately.
	pending := make(map[N]int, len(all))
	todo := make([]N, 0, len(all))
	for n := range all {
		c := len(g.dependents[n])
		pending[n] = c
		if c == 0 {
			todo = append(todo, n)
		}
	}

	// Emit dependent-free nodes first, releasing their dependencies as the
	// last dependent drains. Reversing at the end yields dependency-first
	// order.
	order := make([]N, 0, len(all))
	for len(todo) > 0 {
		n := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		order = append(order, n)
		for dep := range g.dependencies[n] {
			pending[dep]--
			if pending[dep] == 0 {
				todo = append(todo, dep)
			}
		}
	}
	slices.Reverse(order)
	return order
}

// Comparator computes [Sort] once and returns a three-way comparison
// function over the resulting positions, suitable for [slices.SortFunc].
// A node absent from the graph compares after every node present in it;
// two absent nodes compare equal.
func Comparator[N comparable](g Graph[N]) func(a, b N) int {
	order := Sort(g)
	pos := make(map[N]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	return func(a, b N) int {
		pa, inA := pos[a]
		pb, inB := pos[b]
		switch {
		case !inA && !inB:
			return 0
		case !inA:
			return 1
		case !inB:
			return -1
		default:
			return cmp.Compare(pa, pb)
		}
	}
}
