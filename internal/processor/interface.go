// Package processor is the drop-folder front end: it feeds one arriving file
// through the pipeline and writes the reports next to each other.
package processor

import "context"

// Processor defines the interface for handling one dropped video
type Processor interface {
	Process(ctx context.Context, videoPath string) error
}
