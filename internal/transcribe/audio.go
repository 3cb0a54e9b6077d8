package transcribe

import (
	"context"
	"fmt"
	"path/filepath"
)

// AudioFormat is the container an Engine wants its input audio in.
type AudioFormat int

const (
	// FormatWAV is uncompressed 16-bit PCM, about 32 KB per second.
	FormatWAV AudioFormat = iota
	// FormatMP3 is 32 kbit/s mono MP3, about 4 KB per second, for engines
	// behind an upload size limit.
	FormatMP3
)

func (f AudioFormat) fileName() string {
	if f == FormatMP3 {
		return "audio.mp3"
	}
	return "audio.wav"
}

func (f AudioFormat) codecArgs() []string {
	if f == FormatMP3 {
		return []string{"-c:a", "libmp3lame", "-b:a", "32k"}
	}
	return []string{"-c:a", "pcm_s16le"}
}

// extractAudioArgs builds the ffmpeg call writing 16kHz mono audio in format.
func extractAudioArgs(videoPath, audioPath string, format AudioFormat) []string {
	// -vn: drop video
	// -ar 16000 -ac 1: 16kHz mono, what whisper expects
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", videoPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
	}
	args = append(args, format.codecArgs()...)
	return append(args, "-threads", "0", "-y", audioPath)
}

// extractAudio writes the engine's audio format next to the video, inside the
// request workspace.
func (t *implTranscriber) extractAudio(ctx context.Context, videoPath string) (string, error) {
	format := t.engine.AudioFormat()
	audioPath := filepath.Join(filepath.Dir(videoPath), format.fileName())

	t.l.Debug(ctx, "Extracting audio: %s", videoPath)

	if _, err := t.exec.Execute(ctx, t.ffmpeg, extractAudioArgs(videoPath, audioPath, format)...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	t.l.Debug(ctx, "Audio extracted: %s", audioPath)
	return audioPath, nil
}
