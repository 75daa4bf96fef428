// ABOUTME: OpenAI client for email classification
// ABOUTME: Maps a prompt string to raw response text with bounded retry
package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/harper/inbox-triage/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultChatModel is the default model for triage classification
const DefaultChatModel = "gpt-4o-mini"

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey     string
	ChatModel  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	chatModel := os.Getenv("TRIAGE_OPENAI_MODEL")
	if chatModel == "" {
		chatModel = DefaultChatModel
	}

	return &ClientConfig{
		APIKey:     apiKey,
		ChatModel:  chatModel,
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		RetryDelay: time.Second * 2,
	}
}

// OpenAIClient wraps the OpenAI API client with retry logic
type OpenAIClient struct {
	client     *openai.Client
	chatModel  string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewOpenAIClient creates a client with the given API key and default configuration
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	return NewOpenAIClientWithConfig(DefaultConfig(apiKey))
}

// NewOpenAIClientWithConfig creates a client with custom configuration
func NewOpenAIClientWithConfig(config *ClientConfig) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIClient{
		client:     openai.NewClient(config.APIKey),
		chatModel:  config.ChatModel,
		timeout:    timeout,
		maxRetries: config.MaxRetries,
		retryDelay: config.RetryDelay,
	}, nil
}

// GetClient returns the underlying OpenAI client for direct use
func (c *OpenAIClient) GetClient() *openai.Client {
	return c.client
}

// Classify sends a triage prompt and returns the model's raw text response.
// The response carries no structural guarantee; callers parse it with
// explicit defaults. Transient API failures are retried with backoff.
func (c *OpenAIClient) Classify(ctx context.Context, prompt string) (string, error) {
	var content string

	err := util.Do(c.maxRetries, c.retryDelay, func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.client.CreateChatCompletion(attemptCtx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.2,
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("no completion choices returned")
		}

		content = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("classification call failed: %w", err)
	}

	return content, nil
}
