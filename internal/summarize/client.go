package summarize

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultBaseURL points at OpenRouter's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// Completer is the minimal surface of the chat-completion service the
// summarizer needs. Satisfied by Client and by test fakes.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Client calls an OpenAI-compatible chat completions API.
type Client struct {
	client *openai.Client
	model  string

	// Stats records per-call latency for the stats endpoint. Optional.
	Stats *CallStats
}

// NewClient creates a client for the given credential and model. An empty
// baseURL selects OpenRouter.
func NewClient(apiKey, model, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	cfg.BaseURL = baseURL
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		Stats:  NewCallStats(time.Hour),
	}
}

// Model returns the model identifier.
func (c *Client) Model() string {
	return c.model
}

// Complete sends a single-turn prompt and returns the response text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if c.Stats != nil {
		c.Stats.Record(time.Since(start).Milliseconds())
	}
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
