// Package manifest reads TOML dependency manifests and turns them into
// dependency graphs.
//
// A manifest declares, per node, the nodes it directly depends on:
//
//	[deps]
//	web = ["db", "cache"]
//	db  = ["net"]
//
// Nodes only mentioned as dependencies (net, cache above) need no entry of
// their own. [Manifest.Graph] builds a [depgraph.Graph] from the
// declarations and reports the offending edge if the manifest contains a
// dependency cycle.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/exp/maps"

	"github.com/cwaldren/topograph/pkg/depgraph"
)

// Manifest is a parsed dependency manifest.
type Manifest struct {
	// Deps maps each declared node to its direct dependencies.
	Deps map[string][]string `toml:"deps"`
}

// Supports reports whether filename looks like a dependency manifest
// this package can parse.
func Supports(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".toml")
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes manifest TOML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Deps == nil {
		m.Deps = map[string][]string{}
	}
	return &m, nil
}

// Nodes returns every node the manifest mentions, declared or only
// referenced as a dependency, in sorted order.
func (m *Manifest) Nodes() []string {
	seen := make(map[string]struct{}, len(m.Deps))
	for node, deps := range m.Deps {
		seen[node] = struct{}{}
		for _, dep := range deps {
			seen[dep] = struct{}{}
		}
	}
	nodes := maps.Keys(seen)
	slices.Sort(nodes)
	return nodes
}

// Graph builds a dependency graph from the manifest, inserting edges in
// sorted order so failures are deterministic. A cycle in the declarations
// surfaces as a wrapped [depgraph.CircularDependencyError].
func (m *Manifest) Graph() (depgraph.Graph[string], error) {
	g := depgraph.New[string]()
	declared := maps.Keys(m.Deps)
	slices.Sort(declared)
	for _, node := range declared {
		deps := slices.Clone(m.Deps[node])
		slices.Sort(deps)
		for _, dep := range deps {
			next, err := g.Depend(node, dep)
			if err != nil {
				return g, fmt.Errorf("%s depends on %s: %w", node, dep, err)
			}
			g = next
		}
	}
	return g, nil
}
