package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cwaldren/topograph/pkg/depgraph"
	"github.com/cwaldren/topograph/pkg/manifest"
)

// Output formats accepted by the --format flag.
const (
	formatText = "text"
	formatJSON = "json"
)

// loadGraph reads the manifest at path and builds its dependency graph.
func loadGraph(path string) (depgraph.Graph[string], *manifest.Manifest, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return depgraph.Graph[string]{}, nil, err
	}
	g, err := m.Graph()
	if err != nil {
		return depgraph.Graph[string]{}, nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, m, nil
}

// formatNodes renders a node list as newline-separated text or as an
// indented JSON array.
func formatNodes(nodes []string, format string) (string, error) {
	switch format {
	case formatText:
		if len(nodes) == 0 {
			return "", nil
		}
		return strings.Join(nodes, "\n") + "\n", nil
	case formatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(nodes); err != nil {
			return "", fmt.Errorf("encode: %w", err)
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unsupported format %q (want %s or %s)", format, formatText, formatJSON)
	}
}
