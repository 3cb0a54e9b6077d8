package processor

import (
	"github.com/nguyentantai21042004/clipdigest/internal/config"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/pipeline"
)

type implProcessor struct {
	cfg      *config.Config
	pipeline pipeline.Pipeline
	logger   logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, p pipeline.Pipeline, log logger.Logger) Processor {
	return &implProcessor{
		cfg:      cfg,
		pipeline: p,
		logger:   log,
	}
}
