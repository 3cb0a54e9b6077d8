package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/clipdigest/internal/media"
	"github.com/nguyentantai21042004/clipdigest/pkg/executor"
)

// WhisperOptions configures the whisper.cpp command line engine.
type WhisperOptions struct {
	BinaryPath string
	ModelPath  string
	// Language is a whisper language code; empty means auto-detect.
	Language string
	Prompt   string
	Threads  int
}

type whisperCLI struct {
	exec executor.Executor
	opts WhisperOptions
}

// NewWhisperCLI creates an Engine running whisper-cli locally.
func NewWhisperCLI(exec executor.Executor, opts WhisperOptions) Engine {
	if opts.Language == "" {
		opts.Language = "auto"
	}
	if opts.Threads < 1 {
		opts.Threads = 4
	}
	return &whisperCLI{exec: exec, opts: opts}
}

func (w *whisperCLI) AudioFormat() AudioFormat {
	return FormatWAV
}

func (w *whisperCLI) Transcribe(ctx context.Context, audioPath string) (media.Transcript, error) {
	// whisper appends .txt to the prefix
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	if _, err := w.exec.Execute(ctx, w.opts.BinaryPath, w.args(audioPath, outputPrefix)...); err != nil {
		return media.Transcript{}, fmt.Errorf("whisper transcribe: %w", err)
	}

	txtPath := outputPrefix + ".txt"
	data, err := os.ReadFile(txtPath)
	if err != nil {
		return media.Transcript{}, fmt.Errorf("read whisper output: %w", err)
	}

	tr := media.Transcript{Text: string(data)}
	if w.opts.Language != "auto" {
		tr.Language = w.opts.Language
	}
	return tr, nil
}

// -otxt: plain text output
// -l: force language (auto to detect)
// -ml 0 -mc 0: no segment length or context limit
// -bo 5: best of 5
func (w *whisperCLI) args(audioPath, outputPrefix string) []string {
	args := []string{
		"-m", w.opts.ModelPath,
		"-f", audioPath,
		"-otxt",
		"-l", w.opts.Language,
		"-t", strconv.Itoa(w.opts.Threads),
		"-ml", "0",
		"-mc", "0",
		"-bo", "5",
	}
	if w.opts.Prompt != "" {
		args = append(args, "--prompt", w.opts.Prompt)
	}
	return append(args, "--output-file", outputPrefix)
}
