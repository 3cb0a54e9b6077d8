// Package caption turns sampled frames into one-sentence descriptions.
package caption

import (
	"context"
	"image"

	"github.com/nguyentantai21042004/clipdigest/internal/media"
)

// Model describes a single image. Implementations must be safe for
// concurrent use.
type Model interface {
	Caption(ctx context.Context, img image.Image) (string, error)
}

// Stage captions every frame of a sample.
type Stage interface {
	// CaptionAll returns one caption per frame in frame order. Any failure
	// fails the whole stage.
	CaptionAll(ctx context.Context, sample media.FrameSample) (media.CaptionSet, error)
}
