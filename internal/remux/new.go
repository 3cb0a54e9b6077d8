package remux

import (
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/pkg/executor"
)

// New creates a Repairer running the ffmpeg binary at ffmpegPath.
func New(l logger.Logger, exec executor.Executor, ffmpegPath string) Repairer {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &implRepairer{
		l:      l,
		exec:   exec,
		ffmpeg: ffmpegPath,
	}
}
