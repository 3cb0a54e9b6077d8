package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/clipdigest/internal/gemini"
	"google.golang.org/genai"
)

type geminiBackend struct {
	gen         gemini.Generator
	model       string
	maxTokens   int
	temperature float32
}

// NewGemini creates a Backend on top of a key-rotating Gemini client.
func NewGemini(gen gemini.Generator, model string, maxTokens int, temperature float32) Backend {
	return &geminiBackend{
		gen:         gen,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

func (b *geminiBackend) Complete(ctx context.Context, system, user string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}
	if b.maxTokens > 0 {
		cfg.MaxOutputTokens = int32(b.maxTokens)
	}
	if b.temperature > 0 {
		cfg.Temperature = genai.Ptr(b.temperature)
	}
	return b.gen.Generate(ctx, b.model, genai.Text(user), cfg)
}
