// Package cli implements the topograph command-line interface.
//
// The CLI reads TOML dependency manifests and exposes the graph operations
// as subcommands:
//   - sort: print nodes in dependency-first order
//   - deps / dependents: query direct or transitive relations of a node
//   - check: verify a manifest is acyclic
//   - watch: re-sort whenever the manifest changes
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context, following the charmbracelet/log pattern.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cwaldren/topograph/pkg/buildinfo"
)

// appName is the application name used for display.
const appName = "topograph"

// Execute runs the topograph CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// Logging defaults to info level on stderr; --verbose (-v) switches to debug.
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Topograph orders dependency graphs",
		Long:         `Topograph models dependency relationships between arbitrary identifiers and answers what a node depends on, what depends on it, and in what order nodes must be processed so dependencies come first.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newSortCmd())
	root.AddCommand(newDepsCmd())
	root.AddCommand(newDependentsCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newWatchCmd())

	return root.ExecuteContext(ctx)
}
