package transcribe

import (
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/pkg/executor"
)

type implTranscriber struct {
	l      logger.Logger
	exec   executor.Executor
	ffmpeg string
	engine Engine
}

// New creates a Transcriber extracting audio with the ffmpeg binary at
// ffmpegPath.
func New(l logger.Logger, exec executor.Executor, ffmpegPath string, engine Engine) Transcriber {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &implTranscriber{
		l:      l,
		exec:   exec,
		ffmpeg: ffmpegPath,
		engine: engine,
	}
}
