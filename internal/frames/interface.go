// Package frames probes a repaired video and decodes an evenly spaced sample
// of its frames.
package frames

import (
	"context"

	"github.com/nguyentantai21042004/clipdigest/internal/media"
)

// Sampler reads video metadata and representative frames.
type Sampler interface {
	// Probe reports frame count, rate, size and audio presence.
	Probe(ctx context.Context, repaired media.RepairedFile) (media.VideoInfo, error)
	// Sample decodes up to count frames spread across the whole video.
	Sample(ctx context.Context, repaired media.RepairedFile, info media.VideoInfo, count int) (media.FrameSample, error)
}
