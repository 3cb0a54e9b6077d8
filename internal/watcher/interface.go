// Package watcher feeds videos dropped into a folder to a handler, one
// request per file.
package watcher

import "context"

// Watcher monitors the drop folder.
type Watcher interface {
	// Start blocks until ctx is cancelled, then waits for in-flight handlers.
	Start(ctx context.Context) error
	Stop() error
}

// Handler processes one settled video file. Its error is logged and does not
// stop the watcher.
type Handler func(ctx context.Context, videoPath string) error
