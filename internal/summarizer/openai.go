package summarizer

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// ChatClient is the part of *openai.Client used for summaries.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type openAIBackend struct {
	client      ChatClient
	model       string
	maxTokens   int
	temperature float32
}

// NewOpenAI creates a Backend using chat completions.
func NewOpenAI(client ChatClient, model string, maxTokens int, temperature float32) Backend {
	return &openAIBackend{
		client:      client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

func (b *openAIBackend) Complete(ctx context.Context, system, user string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: user,
			},
		},
		MaxTokens:   b.maxTokens,
		Temperature: b.temperature,
	}

	resp, err := b.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in summary response")
	}
	return resp.Choices[0].Message.Content, nil
}
