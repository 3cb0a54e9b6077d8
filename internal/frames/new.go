package frames

import (
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/pkg/executor"
)

// Options configures a Sampler.
type Options struct {
	FFmpegPath  string
	FFprobePath string
	// MaxWidth downsizes wider frames, keeping the aspect ratio. 0 disables it.
	MaxWidth int
	// StrictCount fails a sample that came back shorter than requested.
	StrictCount bool
}

// New creates a Sampler.
func New(l logger.Logger, exec executor.Executor, opts Options) Sampler {
	if opts.FFmpegPath == "" {
		opts.FFmpegPath = "ffmpeg"
	}
	if opts.FFprobePath == "" {
		opts.FFprobePath = "ffprobe"
	}
	return &implSampler{
		l:    l,
		exec: exec,
		opts: opts,
	}
}
