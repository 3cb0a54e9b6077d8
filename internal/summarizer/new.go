package summarizer

import (
	"time"

	"github.com/nguyentantai21042004/clipdigest/internal/logger"
)

type implSummarizer struct {
	logger   logger.Logger
	backend  Backend
	detector LanguageDetector
	timeout  time.Duration
}

// New creates a Summarizer. detector may be nil, in which case the
// transcript's own language tag is used. A zero timeout leaves the request
// deadline in charge.
func New(backend Backend, detector LanguageDetector, timeout time.Duration, log logger.Logger) Summarizer {
	return &implSummarizer{
		logger:   log,
		backend:  backend,
		detector: detector,
		timeout:  timeout,
	}
}
