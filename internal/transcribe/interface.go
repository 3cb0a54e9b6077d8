// Package transcribe turns the audio track of a repaired video into text.
package transcribe

import (
	"context"

	"github.com/nguyentantai21042004/clipdigest/internal/media"
)

// Engine recognizes speech in a 16 kHz mono audio file. Implementations must
// be safe for concurrent use.
type Engine interface {
	// AudioFormat is the encoding Transcribe expects at audioPath.
	AudioFormat() AudioFormat
	Transcribe(ctx context.Context, audioPath string) (media.Transcript, error)
}

// Transcriber extracts audio from a video and runs an Engine on it.
type Transcriber interface {
	// Transcribe returns an empty transcript for videos without audio.
	Transcribe(ctx context.Context, repaired media.RepairedFile, info media.VideoInfo) (media.Transcript, error)
}
