package pipeline

import (
	"github.com/nguyentantai21042004/clipdigest/internal/caption"
	"github.com/nguyentantai21042004/clipdigest/internal/frames"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/remux"
	"github.com/nguyentantai21042004/clipdigest/internal/staging"
	"github.com/nguyentantai21042004/clipdigest/internal/summarizer"
	"github.com/nguyentantai21042004/clipdigest/internal/transcribe"
	"github.com/nguyentantai21042004/clipdigest/pkg/semaphore"
)

// Stages are the collaborators a Pipeline drives.
type Stages struct {
	Stager      staging.Stager
	Repairer    remux.Repairer
	Sampler     frames.Sampler
	Captioner   caption.Stage
	Transcriber transcribe.Transcriber
	Summarizer  summarizer.Summarizer
}

// Options configures a Pipeline.
type Options struct {
	// TempDir holds per-request workspaces; empty uses the system default.
	TempDir       string
	MaxConcurrent int
	DefaultFrames int
	MinFrames     int
	MaxFrames     int
}

type implPipeline struct {
	l      logger.Logger
	stages Stages
	opts   Options
	sem    *semaphore.Semaphore
}

// New creates a Pipeline admitting at most opts.MaxConcurrent runs at once.
func New(l logger.Logger, stages Stages, opts Options) Pipeline {
	if opts.MinFrames < 1 {
		opts.MinFrames = 1
	}
	if opts.MaxFrames < opts.MinFrames {
		opts.MaxFrames = opts.MinFrames
	}
	if opts.DefaultFrames < opts.MinFrames || opts.DefaultFrames > opts.MaxFrames {
		opts.DefaultFrames = opts.MinFrames
	}
	return &implPipeline{
		l:      l,
		stages: stages,
		opts:   opts,
		sem:    semaphore.New(opts.MaxConcurrent),
	}
}

func (p *implPipeline) FrameBounds() (int, int, int) {
	return p.opts.DefaultFrames, p.opts.MinFrames, p.opts.MaxFrames
}
