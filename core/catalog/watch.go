package catalog

import (
	"context"
	"path/filepath"

	"AuraFM/logger"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the catalog whenever the backing file changes, until the
// context is cancelled. Editors often replace files via rename, so the
// watch is placed on the parent directory and filtered by name.
func (c *Catalog) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if err := c.LoadFile(path); err != nil {
					// Keep serving the previous snapshot on a bad reload.
					logger.Warn("Catalog reload failed, keeping previous snapshot",
						logger.String("path", path),
						logger.ErrorField(err),
					)
					continue
				}
				logger.Info("Catalog reloaded",
					logger.String("path", path),
					logger.Int("tracks", c.Len()),
				)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Catalog watcher error", logger.ErrorField(err))
			}
		}
	}()

	return nil
}
