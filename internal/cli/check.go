package cli

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cwaldren/topograph/pkg/depgraph"
	"github.com/cwaldren/topograph/pkg/manifest"
)

// newCheckCmd creates the check command.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <manifest>",
		Short: "Verify that a manifest describes an acyclic graph",
		Long: `Parse the manifest and rebuild its dependency graph edge by edge. If any
declaration would introduce a cycle, the offending edge is reported and the
command exits non-zero.

Examples:
  topograph check deps.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
}

// runCheck validates the manifest at path, reporting either the node and
// edge counts or the edge that closes a cycle.
func runCheck(ctx context.Context, w io.Writer, path string) error {
	loggerFromContext(ctx).Debugf("checking %s", path)

	m, err := manifest.Load(path)
	if err != nil {
		return err
	}

	g, err := m.Graph()
	if err != nil {
		printError(w, "%s has a dependency cycle", path)
		var cerr *depgraph.CircularDependencyError[string]
		if errors.As(err, &cerr) {
			printDetail(w, "cycle closes at %s %s %s", cerr.Node, iconArrow, cerr.Dependency)
		}
		return err
	}

	edges := 0
	for _, deps := range m.Deps {
		edges += len(deps)
	}
	printSuccess(w, "%s is acyclic (%s nodes, %s edges)",
		path,
		styleHighlight.Render(strconv.Itoa(g.Nodes().Len())),
		styleHighlight.Render(strconv.Itoa(edges)))
	return nil
}
