package caption

import (
	"context"
	"image"

	"github.com/nguyentantai21042004/clipdigest/internal/gemini"
	"google.golang.org/genai"
)

type geminiModel struct {
	gen    gemini.Generator
	model  string
	prompt string
}

// NewGemini creates a Model sending frames to Gemini as inline JPEG.
func NewGemini(gen gemini.Generator, model, prompt string) Model {
	return &geminiModel{gen: gen, model: model, prompt: prompt}
}

func (m *geminiModel) Caption(ctx context.Context, img image.Image) (string, error) {
	data, err := encodeJPEG(img)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(m.prompt),
			genai.NewPartFromBytes(data, "image/jpeg"),
		}, genai.RoleUser),
	}
	return m.gen.Generate(ctx, m.model, contents, nil)
}
