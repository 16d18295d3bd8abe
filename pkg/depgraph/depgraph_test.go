package depgraph

import (
	"errors"
	"testing"
)

// mustDepend adds an edge and fails the test on error.
func mustDepend(t *testing.T, g Graph[string], node, dep string) Graph[string] {
	t.Helper()
	g, err := g.Depend(node, dep)
	if err != nil {
		t.Fatalf("Depend(%q, %q) error: %v", node, dep, err)
	}
	return g
}

// chainGraph builds web -> db -> net.
func chainGraph(t *testing.T) Graph[string] {
	t.Helper()
	g := New[string]()
	g = mustDepend(t, g, "web", "db")
	g = mustDepend(t, g, "db", "net")
	return g
}

func TestDependAddsBothSides(t *testing.T) {
	g := New[string]()
	g2 := mustDepend(t, g, "web", "db")

	if !g2.ImmediateDependencies("web").Contains("db") {
		t.Error("db should be an immediate dependency of web")
	}
	if !g2.ImmediateDependents("db").Contains("web") {
		t.Error("web should be an immediate dependent of db")
	}
}

func TestDependLeavesReceiverUntouched(t *testing.T) {
	g := chainGraph(t)
	g2 := mustDepend(t, g, "web", "cache")

	if g.ImmediateDependencies("web").Contains("cache") {
		t.Error("original graph gained an edge")
	}
	if g.ImmediateDependents("cache").Len() != 0 {
		t.Error("original graph gained a dependent entry")
	}
	if !g2.ImmediateDependencies("web").Contains("cache") {
		t.Error("new graph is missing the added edge")
	}
}

func TestDependSelfLoop(t *testing.T) {
	g := New[string]()
	g2, err := g.Depend("a", "a")

	var cerr *CircularDependencyError[string]
	if !errors.As(err, &cerr) {
		t.Fatalf("Depend(a, a) error = %v, want CircularDependencyError", err)
	}
	if cerr.Node != "a" || cerr.Dependency != "a" {
		t.Errorf("error endpoints = (%q, %q), want (a, a)", cerr.Node, cerr.Dependency)
	}
	if g2.Nodes().Len() != 0 {
		t.Error("failed Depend must not modify the graph")
	}
}

func TestDependRejectsBackEdge(t *testing.T) {
	g := chainGraph(t)

	// net -> web would close the cycle web -> db -> net -> web.
	_, err := g.Depend("net", "web")
	var cerr *CircularDependencyError[string]
	if !errors.As(err, &cerr) {
		t.Fatalf("Depend(net, web) error = %v, want CircularDependencyError", err)
	}
	if cerr.Node != "net" || cerr.Dependency != "web" {
		t.Errorf("error endpoints = (%q, %q), want (net, web)", cerr.Node, cerr.Dependency)
	}

	// The direct back-edge is rejected too.
	if _, err := g.Depend("db", "web"); err == nil {
		t.Error("Depend(db, web) should be rejected")
	}
}

func TestDependCreatesEntriesOnFirstMention(t *testing.T) {
	g := New[string]()
	g = mustDepend(t, g, "a", "b")
	g = mustDepend(t, g, "a", "c")

	deps := g.ImmediateDependencies("a")
	if deps.Len() != 2 || !deps.Contains("b") || !deps.Contains("c") {
		t.Errorf("ImmediateDependencies(a) = %v, want {b c}", deps.Slice())
	}
}

func TestQueriesOnUnknownNode(t *testing.T) {
	g := chainGraph(t)

	if got := g.ImmediateDependencies("ghost"); got.Len() != 0 {
		t.Errorf("ImmediateDependencies(ghost) = %v, want empty", got.Slice())
	}
	if got := g.ImmediateDependents("ghost"); got.Len() != 0 {
		t.Errorf("ImmediateDependents(ghost) = %v, want empty", got.Slice())
	}
	if got := g.TransitiveDependencies("ghost"); got.Len() != 0 {
		t.Errorf("TransitiveDependencies(ghost) = %v, want empty", got.Slice())
	}
	if g.DependsOn("ghost", "web") {
		t.Error("unknown node should not depend on anything")
	}
}

func TestTransitiveQueries(t *testing.T) {
	// Diamond with a tail: a -> b -> d, a -> c -> d, d -> e.
	g := New[string]()
	g = mustDepend(t, g, "a", "b")
	g = mustDepend(t, g, "a", "c")
	g = mustDepend(t, g, "b", "d")
	g = mustDepend(t, g, "c", "d")
	g = mustDepend(t, g, "d", "e")

	tests := []struct {
		name string
		got  Set[string]
		want []string
	}{
		{"DependenciesOfA", g.TransitiveDependencies("a"), []string{"b", "c", "d", "e"}},
		{"DependenciesOfB", g.TransitiveDependencies("b"), []string{"d", "e"}},
		{"DependenciesOfE", g.TransitiveDependencies("e"), nil},
		{"DependentsOfE", g.TransitiveDependents("e"), []string{"d", "b", "c", "a"}},
		{"DependentsOfD", g.TransitiveDependents("d"), []string{"b", "c", "a"}},
		{"DependentsOfA", g.TransitiveDependents("a"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Len() != len(tt.want) {
				t.Fatalf("got %v, want %v", tt.got.Slice(), tt.want)
			}
			for _, n := range tt.want {
				if !tt.got.Contains(n) {
					t.Errorf("missing %q in %v", n, tt.got.Slice())
				}
			}
		})
	}

	if !g.DependsOn("a", "e") {
		t.Error("a should transitively depend on e")
	}
	if g.DependsOn("e", "a") {
		t.Error("e should not depend on a")
	}
	if !g.HasDependent("e", "a") {
		t.Error("a should be a transitive dependent of e")
	}
	if g.HasDependent("a", "e") {
		t.Error("e should not be a dependent of a")
	}
}

func TestSpecScenarioChain(t *testing.T) {
	g := chainGraph(t)

	deps := g.TransitiveDependencies("web")
	if deps.Len() != 2 || !deps.Contains("db") || !deps.Contains("net") {
		t.Errorf("TransitiveDependencies(web) = %v, want {db net}", deps.Slice())
	}
}

func TestRemoveEdge(t *testing.T) {
	g := chainGraph(t)
	g2 := g.RemoveEdge("web", "db")

	if g2.ImmediateDependencies("web").Contains("db") {
		t.Error("edge web -> db should be gone")
	}
	if g2.ImmediateDependents("db").Contains("web") {
		t.Error("inverse entry should be gone")
	}
	if !g.ImmediateDependencies("web").Contains("db") {
		t.Error("original graph lost an edge")
	}

	// Emptied entries keep their nodes visible.
	if !g2.Nodes().Contains("web") {
		t.Error("web should still be in the graph after losing its last edge")
	}

	// Idempotent: removing again (or removing unknown edges) is a no-op.
	g3 := g2.RemoveEdge("web", "db")
	g3 = g3.RemoveEdge("nope", "missing")
	if got, want := g3.Nodes().Len(), g2.Nodes().Len(); got != want {
		t.Errorf("node count after no-op removals = %d, want %d", got, want)
	}
}

func TestRemoveEdgeAfterRemoveNode(t *testing.T) {
	g := chainGraph(t)

	// RemoveNode leaves db's edges visible only on the dependent side:
	// net still records db as a dependent.
	g = g.RemoveNode("db")
	if !g.ImmediateDependents("net").Contains("db") {
		t.Fatal("net should still list db as a dependent after RemoveNode")
	}

	// RemoveEdge must clean that side even though dependencies[db] is gone.
	g2 := g.RemoveEdge("db", "net")
	if g2.ImmediateDependents("net").Contains("db") {
		t.Error("net should no longer list db as a dependent")
	}
	if g2.ImmediateDependencies("db").Contains("net") {
		t.Error("db should have no dependency on net")
	}

	// The emptied dependent entry keeps net enumerable.
	if !g2.Nodes().Contains("net") {
		t.Error("net should still be in the graph")
	}
	if !g.ImmediateDependents("net").Contains("db") {
		t.Error("original graph lost its dependent entry")
	}
}

func TestRemoveAll(t *testing.T) {
	g := New[string]()
	g = mustDepend(t, g, "a", "b")
	g = mustDepend(t, g, "c", "b")
	g = mustDepend(t, g, "b", "d")

	g2 := g.RemoveAll("b")

	for n := range g2.Nodes() {
		if g2.ImmediateDependencies(n).Contains("b") {
			t.Errorf("%q still lists b as a dependency", n)
		}
		if g2.ImmediateDependents(n).Contains("b") {
			t.Errorf("%q still lists b as a dependent", n)
		}
	}
	if g2.Nodes().Contains("b") {
		// a, c and d keep empty entries, but b's own keys are gone.
		t.Error("b should not appear in Nodes after RemoveAll")
	}
	if !g.Nodes().Contains("b") {
		t.Error("original graph lost node b")
	}
}

func TestRemoveNodeDropsOnlyOutgoingEdges(t *testing.T) {
	g := chainGraph(t)
	g2 := g.RemoveNode("db")

	if g2.ImmediateDependencies("db").Len() != 0 {
		t.Error("db should have no dependencies left")
	}
	// The dependent side is intentionally untouched: web still records db,
	// and db still records web as a dependent.
	if !g2.ImmediateDependencies("web").Contains("db") {
		t.Error("web should still depend on db")
	}
	if !g2.ImmediateDependents("db").Contains("web") {
		t.Error("db should still list web as a dependent")
	}
	if !g.ImmediateDependencies("db").Contains("net") {
		t.Error("original graph lost db's dependencies")
	}
}

func TestRemoveNodeUnknown(t *testing.T) {
	g := chainGraph(t)
	g2 := g.RemoveNode("ghost")
	if got, want := g2.Nodes().Len(), g.Nodes().Len(); got != want {
		t.Errorf("node count = %d, want %d", got, want)
	}
}

func TestNodesUnionOfBothSides(t *testing.T) {
	g := chainGraph(t)

	nodes := g.Nodes()
	for _, n := range []string{"web", "db", "net"} {
		if !nodes.Contains(n) {
			t.Errorf("Nodes() missing %q", n)
		}
	}
	if nodes.Len() != 3 {
		t.Errorf("Nodes() has %d entries, want 3", nodes.Len())
	}

	// After RemoveNode, net only appears on the dependent side of db and
	// db only on the dependency side of web; both must stay enumerable.
	g2 := g.RemoveNode("db")
	nodes = g2.Nodes()
	for _, n := range []string{"web", "db", "net"} {
		if !nodes.Contains(n) {
			t.Errorf("Nodes() after RemoveNode missing %q", n)
		}
	}
}

func TestZeroValueIsUsable(t *testing.T) {
	var g Graph[int]
	if g.Nodes().Len() != 0 {
		t.Error("zero graph should be empty")
	}
	if g.TransitiveDependencies(1).Len() != 0 {
		t.Error("zero graph should answer queries")
	}
	g2, err := g.Depend(1, 2)
	if err != nil {
		t.Fatalf("Depend on zero graph: %v", err)
	}
	if !g2.DependsOn(1, 2) {
		t.Error("edge 1 -> 2 missing")
	}
}

func TestSetHelpers(t *testing.T) {
	s := NewSet("a", "b")
	if s.Len() != 2 || !s.Contains("a") || !s.Contains("b") {
		t.Errorf("NewSet = %v", s.Slice())
	}
	if s.Contains("c") {
		t.Error("set should not contain c")
	}

	var nilSet Set[string]
	if nilSet.Contains("a") || nilSet.Len() != 0 {
		t.Error("nil set should behave as empty")
	}
	if got := nilSet.Slice(); got == nil || len(got) != 0 {
		t.Errorf("nil set Slice = %v, want empty non-nil slice", got)
	}
}
