package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultWatchQuiet is the settle window Watch waits after the last change.
const DefaultWatchQuiet = 200 * time.Millisecond

// Watch blocks until ctx is done, calling onChange once the file at path
// has been written or replaced and then left alone for quiet. The parent
// directory is watched so editors that replace the file are seen too.
func Watch(ctx context.Context, path string, quiet time.Duration, onChange func(), opts ...Option) error {
	o := applyOptions(opts)
	if quiet <= 0 {
		quiet = DefaultWatchQuiet
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	o.logger.Info("watching source", zap.String("path", abs))

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(quiet, func() {
				if ctx.Err() != nil {
					return
				}
				o.logger.Debug("source changed", zap.String("path", abs))
				onChange()
			})
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			o.logger.Warn("watch error", zap.Error(err))
		}
	}
}
