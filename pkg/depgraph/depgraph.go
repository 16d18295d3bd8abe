package depgraph

import "fmt"

// CircularDependencyError is returned by [Graph.Depend] when adding an edge
// would introduce a cycle, either because a node is asked to depend on itself
// or because the dependency already transitively depends on the node.
// It carries both endpoints of the rejected edge for diagnostics.
type CircularDependencyError[N comparable] struct {
	Node       N // the node that would gain the dependency
	Dependency N // the dependency that would close the cycle
}

// Error implements the error interface.
func (e *CircularDependencyError[N]) Error() string {
	return fmt.Sprintf("circular dependency: %v -> %v", e.Node, e.Dependency)
}

// Graph is a persistent directed acyclic graph of dependency relationships
// between opaque nodes. It maintains two mirrored mappings: each node's
// direct dependencies and, inversely, each node's direct dependents. An edge
// node -> dep appears in both or in neither.
//
// Graph is an immutable value. Update operations ([Graph.Depend],
// [Graph.RemoveEdge], [Graph.RemoveAll], [Graph.RemoveNode]) never modify
// the receiver; they return a new Graph sharing unchanged internals with the
// old one. Because values are never mutated in place, any Graph may be read
// concurrently from multiple goroutines without synchronization.
//
// The zero value is an empty graph, ready to use.
type Graph[N comparable] struct {
	dependencies map[N]Set[N]
	dependents   map[N]Set[N]
}

// New creates an empty graph. Equivalent to the zero value; provided so call
// sites read naturally.
func New[N comparable]() Graph[N] { return Graph[N]{} }

// ImmediateDependencies returns the nodes that node directly depends on.
// Returns an empty set if the node is unknown or has no dependencies.
// The returned set is a copy; modifying it does not affect the graph.
func (g Graph[N]) ImmediateDependencies(node N) Set[N] {
	return g.dependencies[node].clone()
}

// ImmediateDependents returns the nodes that directly depend on node.
// Returns an empty set if there are none. The returned set is a copy.
func (g Graph[N]) ImmediateDependents(node N) Set[N] {
	return g.dependents[node].clone()
}

// TransitiveDependencies returns every node reachable from node by
// repeatedly following dependency edges. The node itself is not included.
// Returns an empty set for unknown nodes.
func (g Graph[N]) TransitiveDependencies(node N) Set[N] {
	return reachable(g.dependencies, node)
}

// TransitiveDependents returns every node that directly or indirectly
// depends on node. The node itself is not included.
// Returns an empty set for unknown nodes.
func (g Graph[N]) TransitiveDependents(node N) Set[N] {
	return reachable(g.dependents, node)
}

// Nodes returns every node known to the graph: the union of keys of both
// mappings, including nodes whose entries were emptied by edge removal.
func (g Graph[N]) Nodes() Set[N] {
	out := make(Set[N], len(g.dependencies)+len(g.dependents))
	for n := range g.dependencies {
		out[n] = struct{}{}
	}
	for n := range g.dependents {
		out[n] = struct{}{}
	}
	return out
}

// DependsOn reports whether node transitively depends on dep.
func (g Graph[N]) DependsOn(node, dep N) bool {
	return reaches(g.dependencies, node, dep)
}

// HasDependent reports whether dependent transitively depends on node.
func (g Graph[N]) HasDependent(node, dependent N) bool {
	return reaches(g.dependents, node, dependent)
}

// Depend returns a new graph with the edge node -> dep added, recording that
// node depends on dep. Nodes are created implicitly on first mention.
//
// The edge is rejected with a [CircularDependencyError] when node == dep or
// when dep already transitively depends on node, since either would create a
// cycle. The check runs against the receiver, before the edge is added; on
// failure the receiver is returned unchanged alongside the error.
func (g Graph[N]) Depend(node, dep N) (Graph[N], error) {
	if node == dep || g.DependsOn(dep, node) {
		return g, &CircularDependencyError[N]{Node: node, Dependency: dep}
	}
	deps := cloneIndex(g.dependencies, 1)
	deps[node] = g.dependencies[node].with(dep)
	dents := cloneIndex(g.dependents, 1)
	dents[dep] = g.dependents[dep].with(node)
	return Graph[N]{dependencies: deps, dependents: dents}, nil
}

// RemoveEdge returns a new graph without the edge node -> dep. Each mapping
// is cleaned independently, so a dependent-side entry left behind by
// [Graph.RemoveNode] is removed even though the dependency side is already
// gone. Removing an edge that exists on neither side is a no-op, not an
// error; in that case the receiver is returned as-is. Entries emptied by the
// removal are kept, so both endpoints remain visible to [Graph.Nodes].
func (g Graph[N]) RemoveEdge(node, dep N) Graph[N] {
	inDependencies := g.dependencies[node].Contains(dep)
	inDependents := g.dependents[dep].Contains(node)
	if !inDependencies && !inDependents {
		return g
	}
	deps := g.dependencies
	if inDependencies {
		deps = cloneIndex(g.dependencies, 0)
		deps[node] = g.dependencies[node].without(dep)
	}
	dents := g.dependents
	if inDependents {
		dents = cloneIndex(g.dependents, 0)
		dents[dep] = g.dependents[dep].without(node)
	}
	return Graph[N]{dependencies: deps, dependents: dents}
}

// RemoveAll returns a new graph with node removed entirely: its own entries
// in both mappings are dropped, and every other node's dependency and
// dependent sets are stripped of references to it.
func (g Graph[N]) RemoveAll(node N) Graph[N] {
	return Graph[N]{
		dependencies: scrub(g.dependencies, node),
		dependents:   scrub(g.dependents, node),
	}
}

// RemoveNode returns a new graph with node's outgoing edges dropped: its
// entry in the dependency mapping is removed while the dependent mapping is
// left untouched. Other nodes therefore still record node among their
// dependents. The asymmetry is deliberate: it un-declares what node depends
// on without erasing the fact that others depend on it.
func (g Graph[N]) RemoveNode(node N) Graph[N] {
	if _, ok := g.dependencies[node]; !ok {
		return g
	}
	deps := cloneIndex(g.dependencies, 0)
	delete(deps, node)
	return Graph[N]{dependencies: deps, dependents: g.dependents}
}

// cloneIndex shallow-copies an adjacency index. Inner sets are shared with
// the original; callers must replace (never modify) any set they change.
func cloneIndex[N comparable](index map[N]Set[N], extra int) map[N]Set[N] {
	out := make(map[N]Set[N], len(index)+extra)
	for n, s := range index {
		out[n] = s
	}
	return out
}

// scrub copies an adjacency index, dropping node's own entry and filtering
// node out of every remaining set. Unaffected sets are shared, not copied.
func scrub[N comparable](index map[N]Set[N], node N) map[N]Set[N] {
	out := make(map[N]Set[N], len(index))
	for n, s := range index {
		if n == node {
			continue
		}
		if s.Contains(node) {
			s = s.without(node)
		}
		out[n] = s
	}
	return out
}

// reachable collects the closure of nodes reachable from start by following
// the given adjacency index. The start node is only included if some path
// leads back to it.
func reachable[N comparable](index map[N]Set[N], start N) Set[N] {
	out := Set[N]{}
	stack := index[start].Slice()
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if out.Contains(n) {
			continue
		}
		out[n] = struct{}{}
		for next := range index[n] {
			if !out.Contains(next) {
				stack = append(stack, next)
			}
		}
	}
	return out
}

// reaches reports whether target is reachable from start, short-circuiting
// as soon as it is found.
func reaches[N comparable](index map[N]Set[N], start, target N) bool {
	seen := Set[N]{}
	stack := index[start].Slice()
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == target {
			return true
		}
		if seen.Contains(n) {
			continue
		}
		seen[n] = struct{}{}
		for next := range index[n] {
			if !seen.Contains(next) {
				stack = append(stack, next)
			}
		}
	}
	return false
}
