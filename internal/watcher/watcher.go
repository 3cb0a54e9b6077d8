package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/pkg/semaphore"
)

type implWatcher struct {
	inputDir       string
	handler        Handler
	logger         logger.Logger
	watcher        *fsnotify.Watcher
	maxConcurrent  int
	semaphore      *semaphore.Semaphore
	extensions     map[string]struct{}
	settleInterval time.Duration
	wg             sync.WaitGroup

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// Start processes files already waiting in the input directory, then
// monitors it for new ones. Every file is handled as its own request.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)

	if err := w.scanExisting(ctx); err != nil {
		w.logger.Warn(ctx, "Failed to scan existing files: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// Only process CREATE events
			if event.Op&fsnotify.Create == fsnotify.Create {
				if !w.isVideoFile(event.Name) {
					w.logger.Debug(ctx, "Ignoring non-video file: %s", event.Name)
					continue
				}
				w.logger.Info(ctx, "New video detected: %s", event.Name)
				if err := w.dispatch(ctx, event.Name); err != nil {
					return err
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) scanExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.inputDir)
	if err != nil {
		return err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if w.isVideoFile(e.Name()) {
			files = append(files, filepath.Join(w.inputDir, e.Name()))
		}
	}
	sort.Strings(files)

	for _, f := range files {
		w.logger.Info(ctx, "Found waiting video: %s", f)
		if err := w.dispatch(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

// dispatch hands path to the handler once a concurrency slot is free. A path
// already being handled is skipped.
func (w *implWatcher) dispatch(ctx context.Context, path string) error {
	if !w.claim(path) {
		w.logger.Debug(ctx, "Already handling %s", path)
		return nil
	}

	// Acquire semaphore slot (blocks if max concurrent reached)
	if err := w.semaphore.Acquire(ctx); err != nil {
		w.release(path)
		return err
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.semaphore.Release()
		defer w.release(path)

		if err := waitForStableSize(ctx, path, w.settleInterval); err != nil {
			w.logger.Warn(ctx, "Skipping %s: %v", path, err)
			return
		}
		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}()
	return nil
}

func (w *implWatcher) claim(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.inFlight[path]; ok {
		return false
	}
	w.inFlight[path] = struct{}{}
	return true
}

func (w *implWatcher) release(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inFlight, path)
}

// isVideoFile checks if the file has a supported video extension
func (w *implWatcher) isVideoFile(path string) bool {
	_, ok := w.extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// waitForStableSize polls until two consecutive reads report the same
// non-zero size, so a file still being copied is not picked up half written.
func waitForStableSize(ctx context.Context, path string, interval time.Duration) error {
	last := int64(-1)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat: %w", err)
		}
		size := info.Size()
		if size > 0 && size == last {
			return nil
		}
		last = size

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
