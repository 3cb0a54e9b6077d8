package transcribe

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/clipdigest/internal/media"
	"github.com/sashabaranov/go-openai"
)

// MaxUploadBytes is the largest audio file the OpenAI transcription endpoint
// accepts.
const MaxUploadBytes = 25 << 20

// AudioClient is the part of *openai.Client used for transcription.
type AudioClient interface {
	CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error)
}

type openAIEngine struct {
	client   AudioClient
	model    string
	language string
	prompt   string
	maxBytes int64
}

// NewOpenAI creates an Engine calling an OpenAI-compatible transcription API.
func NewOpenAI(client AudioClient, model, language, prompt string) Engine {
	if model == "" {
		model = openai.Whisper1
	}
	return &openAIEngine{client: client, model: model, language: language, prompt: prompt, maxBytes: MaxUploadBytes}
}

func (e *openAIEngine) AudioFormat() AudioFormat {
	return FormatMP3
}

func (e *openAIEngine) Transcribe(ctx context.Context, audioPath string) (media.Transcript, error) {
	if fi, err := os.Stat(audioPath); err == nil && fi.Size() > e.maxBytes {
		return media.Transcript{}, fmt.Errorf("audio is %d MB, above the %d MB transcription upload limit", fi.Size()>>20, e.maxBytes>>20)
	}

	req := openai.AudioRequest{
		Model:    e.model,
		FilePath: audioPath,
		Prompt:   e.prompt,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	if e.language != "" && e.language != "auto" {
		req.Language = e.language
	}

	resp, err := e.client.CreateTranscription(ctx, req)
	if err != nil {
		return media.Transcript{}, fmt.Errorf("create transcription: %w", err)
	}
	return media.Transcript{Text: resp.Text, Language: resp.Language}, nil
}
