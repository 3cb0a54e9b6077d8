package watcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/pkg/semaphore"
)

// DefaultExtensions are the video containers picked up from the drop folder.
var DefaultExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v"}

// Options tunes a Watcher.
type Options struct {
	MaxConcurrent int
	Extensions    []string
	// SettleInterval is how often a new file's size is polled until it stops
	// growing.
	SettleInterval time.Duration
}

// New creates a new Watcher instance with concurrency control
func New(inputDir string, handler Handler, log logger.Logger, opts Options) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	// Default to 2 concurrent if not specified
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 2
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	if opts.SettleInterval <= 0 {
		opts.SettleInterval = 500 * time.Millisecond
	}

	exts := make(map[string]struct{}, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = struct{}{}
	}

	return &implWatcher{
		inputDir:       inputDir,
		handler:        handler,
		logger:         log,
		watcher:        watcher,
		maxConcurrent:  opts.MaxConcurrent,
		semaphore:      semaphore.New(opts.MaxConcurrent),
		extensions:     exts,
		settleInterval: opts.SettleInterval,
		inFlight:       make(map[string]struct{}),
	}, nil
}
