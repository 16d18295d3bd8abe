package cli

import (
	"context"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/cwaldren/topograph/pkg/depgraph"
)

// queryOpts holds the command-line flags shared by deps and dependents.
type queryOpts struct {
	transitive bool   // follow edges to the full closure
	format     string // output format: text or json
}

// queryFn selects one of the graph's relation queries.
type queryFn func(g depgraph.Graph[string], node string) depgraph.Set[string]

// newDepsCmd creates the deps command, listing what a node depends on.
func newDepsCmd() *cobra.Command {
	return newQueryCmd(
		"deps <manifest> <node>",
		"List the dependencies of a node",
		`List the nodes a given node directly depends on, or its full transitive
closure with --transitive.

An unknown node is not an error: it simply has no dependencies.

Examples:
  topograph deps deps.toml web
  topograph deps deps.toml web --transitive --format json`,
		func(g depgraph.Graph[string], node string) depgraph.Set[string] {
			return g.ImmediateDependencies(node)
		},
		func(g depgraph.Graph[string], node string) depgraph.Set[string] {
			return g.TransitiveDependencies(node)
		},
	)
}

// newDependentsCmd creates the dependents command, the inverse of deps.
func newDependentsCmd() *cobra.Command {
	return newQueryCmd(
		"dependents <manifest> <node>",
		"List the nodes that depend on a node",
		`List the nodes that directly depend on a given node, or every node that
reaches it with --transitive.

An unknown node is not an error: nothing depends on it.

Examples:
  topograph dependents deps.toml net
  topograph dependents deps.toml net --transitive`,
		func(g depgraph.Graph[string], node string) depgraph.Set[string] {
			return g.ImmediateDependents(node)
		},
		func(g depgraph.Graph[string], node string) depgraph.Set[string] {
			return g.TransitiveDependents(node)
		},
	)
}

func newQueryCmd(use, short, long string, immediate, transitive queryFn) *cobra.Command {
	opts := queryOpts{format: formatText}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := immediate
			if opts.transitive {
				query = transitive
			}
			return runQuery(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], query, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.transitive, "transitive", "t", false, "follow edges transitively")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text (default), json")

	return cmd
}

// runQuery loads the manifest and writes the query result to w in sorted
// order. Unknown nodes produce an empty result and a debug log, not an error.
func runQuery(ctx context.Context, w io.Writer, path, node string, query queryFn, opts queryOpts) error {
	logger := loggerFromContext(ctx)

	g, _, err := loadGraph(path)
	if err != nil {
		return err
	}
	if !g.Nodes().Contains(node) {
		logger.Debugf("node %q not present in %s", node, path)
	}

	result := query(g, node).Slice()
	slices.Sort(result)

	out, err := formatNodes(result, opts.format)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
