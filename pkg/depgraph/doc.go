// Package depgraph provides a persistent (immutable, value-semantic)
// dependency graph over opaque, comparable node identifiers.
//
// # Overview
//
// A [Graph] records which nodes depend on which others and answers three
// questions: what does a node depend on, what depends on a node, and in what
// order must nodes be processed so that dependencies come first. The graph
// holds two mirrored mappings, dependencies and dependents, kept in exact
// inverse of each other.
//
// Every update returns a brand-new graph value and leaves the receiver
// untouched:
//
//	g := depgraph.New[string]()
//	g, err := g.Depend("web", "db")   // web depends on db
//	g, err = g.Depend("db", "net")
//
// Cycles are rejected at insertion time: [Graph.Depend] fails with a
// [CircularDependencyError] when the new edge would make a node depend,
// directly or transitively, on itself. No other operation can fail; queries
// and removals accept unknown nodes and return empty results or no-ops.
//
// # Ordering
//
// [Sort] produces a topological order of all nodes, and [Comparator] derives
// a position-based comparison function from it for sorting arbitrary
// collections by graph order:
//
//	order := depgraph.Sort(g)                  // ["net", "db", "web"]
//	slices.SortFunc(items, depgraph.Comparator(g))
//
// Nodes not present in the graph sort after all nodes that are.
//
// # Concurrency
//
// Immutability is the concurrency contract: a Graph value never changes, so
// it can be shared and read from any number of goroutines without locks.
// Updates produce new values; holders of the old value keep observing the
// prior state.
package depgraph
