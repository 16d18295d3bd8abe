package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchDebounce coalesces bursts of file events (editors often emit several
// writes per save) into a single re-sort.
const watchDebounce = 100 * time.Millisecond

// newWatchCmd creates the watch command.
func newWatchCmd() *cobra.Command {
	opts := sortOpts{format: formatText}

	cmd := &cobra.Command{
		Use:   "watch <manifest>",
		Short: "Re-sort the manifest whenever it changes",
		Long: `Print the topological order of the manifest, then keep watching the file
and print a fresh order on every change. Manifest errors (bad TOML, cycles)
are reported and watching continues. Stop with Ctrl-C.

Examples:
  topograph watch deps.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text (default), json")

	return cmd
}

// runWatch sorts once, then re-sorts on every change to the manifest until
// the context is cancelled, at which point it returns the context's error so
// interrupts surface as such to the caller.
func runWatch(ctx context.Context, w io.Writer, path string, opts sortOpts) error {
	logger := loggerFromContext(ctx)

	if err := runSort(ctx, w, path, opts); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent directory rather than the file itself: editors
	// that save via rename replace the inode and would silently detach a
	// file-level watch.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	logger.Infof("Watching %s", path)

	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	resort := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || name != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case resort <- struct{}{}:
				default:
				}
			})
		case <-resort:
			logger.Debugf("%s changed", path)
			if err := runSort(ctx, w, path, opts); err != nil {
				logger.Warnf("Sort failed: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			logger.Warnf("Watch error: %v", err)
		}
	}
}
