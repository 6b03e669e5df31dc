package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 150 * time.Millisecond

// Watch reloads the config at path whenever it changes on disk and hands the
// result to onChange, until ctx is cancelled. The parent directory is watched
// so editors that save by rename are picked up. Bursts of events are
// collapsed into one reload.
func Watch(ctx context.Context, path string, onChange func(Config, error)) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(resolved)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(resolved), err)
	}

	timer := time.NewTimer(reloadDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != resolved {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(reloadDebounce)
			}

		case <-timer.C:
			onChange(Load(resolved))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onChange(Config{}, fmt.Errorf("watch config: %w", err))
		}
	}
}
