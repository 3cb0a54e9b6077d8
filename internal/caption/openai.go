package caption

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ChatClient is the part of *openai.Client used for captioning.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type openAIModel struct {
	client ChatClient
	model  string
	prompt string
}

// NewOpenAI creates a Model backed by an OpenAI-compatible vision model.
func NewOpenAI(client ChatClient, model, prompt string) Model {
	return &openAIModel{client: client, model: model, prompt: prompt}
}

func (m *openAIModel) Caption(ctx context.Context, img image.Image) (string, error) {
	data, err := encodeJPEG(img)
	if err != nil {
		return "", err
	}

	req := openai.ChatCompletionRequest{
		Model: m.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: m.prompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURI(data),
							Detail: openai.ImageURLDetailLow,
						},
					},
				},
			},
		},
		MaxTokens: 120,
	}

	resp, err := m.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no caption in response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
