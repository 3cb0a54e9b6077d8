// Package gemini wraps the Gemini API with round-robin rotation across API
// keys when a key is rate limited.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"google.golang.org/genai"
)

// Generator produces text from Gemini content.
type Generator interface {
	Generate(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error)
}

// ErrEmptyResponse is returned when a call succeeds without any text.
var ErrEmptyResponse = errors.New("empty response from Gemini")

type generateFunc func(ctx context.Context, key, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Client is safe for concurrent use. Clients are created lazily per key.
type Client struct {
	l    logger.Logger
	keys []string

	mu         sync.Mutex
	currentKey int
	clients    map[string]*genai.Client

	generate generateFunc
}

// New creates a Client rotating through apiKeys.
func New(apiKeys []string, l logger.Logger) (*Client, error) {
	keys := make([]string, 0, len(apiKeys))
	for _, k := range apiKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("gemini: no API keys configured")
	}

	c := &Client{
		l:       l,
		keys:    keys,
		clients: make(map[string]*genai.Client),
	}
	c.generate = c.callAPI
	return c, nil
}

// Generate calls the model, rotating keys on 429 / quota errors until every
// key has been tried once.
func (c *Client) Generate(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	var lastErr error

	for range c.keys {
		idx, key := c.key()

		result, err := c.generate(ctx, key, model, contents, cfg)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			if isRateLimited(err) {
				c.l.Warn(ctx, "Gemini key %d rate limited, rotating...", idx+1)
				c.rotateKey(idx)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		text := responseText(result)
		if text == "" {
			return "", ErrEmptyResponse
		}
		return text, nil
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (c *Client) key() (int, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentKey, c.keys[c.currentKey]
}

// rotateKey advances past idx. A concurrent caller may already have rotated.
func (c *Client) rotateKey(idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentKey == idx {
		c.currentKey = (c.currentKey + 1) % len(c.keys)
	}
}

func (c *Client) callAPI(ctx context.Context, key, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	client, err := c.clientFor(ctx, key)
	if err != nil {
		return nil, err
	}
	return client.Models.GenerateContent(ctx, model, contents, cfg)
}

func (c *Client) clientFor(ctx context.Context, key string) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if client, ok := c.clients[key]; ok {
		return client, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	c.clients[key] = client
	return client, nil
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}
