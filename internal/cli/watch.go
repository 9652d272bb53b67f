package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses the burst of events an editor produces when it
// saves a file.
var watchDebounce = 200 * time.Millisecond

// watch calls fn each time the file at path is written or replaced, until
// ctx is done. The parent directory is watched so that editors which save
// by renaming are noticed. Errors from fn are passed to onErr and watching
// continues.
func (c *CLI) watch(ctx context.Context, path string, fn func() error, onErr func(error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	c.Logger.Info("watching for changes", "path", path)

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name, _ := filepath.Abs(ev.Name)
			if name != target || (!ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create)) {
				continue
			}
			c.Logger.Debug("catalog changed", "op", ev.Op.String())
			fire = time.After(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "err", err)
		case <-fire:
			fire = nil
			if err := fn(); err != nil {
				onErr(err)
			}
		}
	}
}
