// Package pipeline runs one uploaded video through staging, repair, frame
// sampling, captioning, transcription and summarization.
package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/clipdigest/internal/media"
)

// Request is one unit of work. Each front end builds one per uploaded video.
type Request struct {
	// ID tags logs and the result. A random id is used when empty.
	ID     string
	Upload media.UploadedMedia
	// NumFrames is the number of frames to caption; 0 selects the default.
	NumFrames int
}

// Pipeline is shared by every front end.
type Pipeline interface {
	// Run returns either a complete Result or a *media.Error, never both.
	Run(ctx context.Context, req Request) (Result, error)
	// FrameBounds reports the default and allowed range for NumFrames.
	FrameBounds() (def, lo, hi int)
}
