package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cwaldren/topograph/pkg/depgraph"
)

// sortOpts holds the command-line flags for the sort command.
type sortOpts struct {
	format string // output format: text or json
}

// newSortCmd creates the sort command.
func newSortCmd() *cobra.Command {
	opts := sortOpts{format: formatText}

	cmd := &cobra.Command{
		Use:   "sort <manifest>",
		Short: "Print nodes in dependency-first order",
		Long: `Print every node of the manifest in topological order: each node's
dependencies appear before the node itself.

The order among nodes with no dependency relationship is unspecified and may
vary between runs.

Examples:
  topograph sort deps.toml
  topograph sort deps.toml --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text (default), json")

	return cmd
}

// runSort loads the manifest, sorts its graph, and writes the order to w.
func runSort(ctx context.Context, w io.Writer, path string, opts sortOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	g, _, err := loadGraph(path)
	if err != nil {
		return err
	}

	order := depgraph.Sort(g)
	out, err := formatNodes(order, opts.format)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Sorted %d nodes", len(order)))

	_, err = io.WriteString(w, out)
	return err
}
