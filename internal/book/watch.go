package book

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"rhystmorgan/contactbook/internal/storage"
)

// DefaultDebounce batches the burst of events a single save produces.
const DefaultDebounce = 200 * time.Millisecond

// Watch calls onChange with a fresh load of the primary file, once at start
// and again after every change to the file on disk, until ctx is done.
// Saves replace the file by rename, so the parent directory is watched and
// events are filtered by name.
func (b *Book) Watch(ctx context.Context, debounce time.Duration, onChange func(storage.LoadResult)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	// Loading first creates the directory when it is missing.
	initial := b.Load()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(b.records.Path())
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}
	b.logger.Debug("watching contacts file", zap.String("path", target))
	onChange(initial)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

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
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			b.logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			onChange(b.Load())
		}
	}
}
