package materials

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the catalog whenever its file is written or replaced, until
// ctx is cancelled. The containing directory is watched so that saves which
// rename a temporary file over the catalog are seen. A reload that fails to
// parse is logged and the previous presets stay active.
func (c *Catalog) Watch(ctx context.Context) error {
	if c.path == "" {
		return errors.New("materials: catalog has no file")
	}
	target := filepath.Clean(c.path)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("materials: watch %s: %w", filepath.Dir(target), err)
	}
	slog.Info("materials: watching for changes", "path", c.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			// a rename onto the catalog arrives as create; rename or remove
			// of the catalog itself leaves the current presets in place
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := c.Reload(); err != nil {
				slog.Error("materials: reload failed, keeping previous presets", "path", c.path, "err", err)
				continue
			}
			slog.Info("materials: reloaded", "path", c.path, "count", len(c.Names()))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("materials: watcher error", "err", err)
		}
	}
}
