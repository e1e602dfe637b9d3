package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/smartstudy/internal/logger"
)

// defaultSettle is how long a file must be quiet before it is ingested.
const defaultSettle = time.Second

var watchSettle time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Add new files from a folder as they appear",
	Long: `Watches a folder (and its subfolders) and adds every new or changed file
to the current library once it has stopped changing. Useful with a scanner
or phone sync that drops files into a folder.

Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchSettle, "settle", defaultSettle, "quiet period before a file is added")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errIngestNotConfigured
	}
	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot watch %s: not a directory", dir)
	}

	cmd.Printf("Watching %s for new files. Press Ctrl+C to stop.\n", dir)
	return watchDir(commandContext(cmd), cmd, dir, watchSettle)
}

// watchDir ingests files created or written under dir until ctx is done.
// A file is ingested once no event has touched it for settle.
func watchDir(ctx context.Context, cmd *cobra.Command, dir string, settle time.Duration) error {
	if settle <= 0 {
		settle = defaultSettle
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	if err := addTree(watcher, dir); err != nil {
		return err
	}

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(settle / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if hidden(event.Name) {
				continue
			}
			info, err := os.Stat(event.Name)
			if err != nil {
				continue
			}
			if info.IsDir() {
				if err := addTree(watcher, event.Name); err != nil {
					logger.Warn("cannot watch %s: %v", event.Name, err)
				}
				continue
			}
			if info.Mode().IsRegular() {
				logger.Debug("change: %s", event.Name)
				pending[event.Name] = time.Now()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case now := <-ticker.C:
			ready := settled(pending, now, settle)
			if len(ready) == 0 {
				continue
			}
			report, err := ingestService.IngestPaths(ctx, ready, nil)
			if err != nil {
				return fmt.Errorf("failed to add files: %w", err)
			}
			printReport(cmd, report)
		}
	}
}

// settled removes and returns the pending paths quiet for at least settle.
func settled(pending map[string]time.Time, now time.Time, settle time.Duration) []string {
	var ready []string
	for path, last := range pending {
		if now.Sub(last) >= settle {
			ready = append(ready, path)
			delete(pending, path)
		}
	}
	sort.Strings(ready)
	return ready
}

// addTree watches root and every non-hidden directory below it.
func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && hidden(path) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("cannot watch %s: %w", path, err)
		}
		return nil
	})
}

// hidden reports dotfiles and editor backups.
func hidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~")
}
