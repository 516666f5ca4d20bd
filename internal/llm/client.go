// ABOUTME: OpenAI client for embeddings and tool-calling chat completions
// ABOUTME: Wraps the provider with timeouts and retry, surfacing ErrProvider on failure
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harper/courserag/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// ErrProvider marks transport or parse failures from the LLM provider.
// Callers treat these as fatal for the current query, never as "no answer".
var ErrProvider = errors.New("llm provider error")

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = string(openai.SmallEmbedding3)
)

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:         apiKey,
		ChatModel:      DefaultChatModel,
		EmbeddingModel: DefaultEmbeddingModel,
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     time.Second * 2,
	}
}

// Client wraps the OpenAI API client with retry logic
type Client struct {
	client         *openai.Client
	chatModel      string
	embeddingModel string
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
}

// NewClient creates a new OpenAI client with the given configuration
func NewClient(config *ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if config.ChatModel == "" {
		config.ChatModel = DefaultChatModel
	}
	if config.EmbeddingModel == "" {
		config.EmbeddingModel = DefaultEmbeddingModel
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		client:         openai.NewClient(config.APIKey),
		chatModel:      config.ChatModel,
		embeddingModel: config.EmbeddingModel,
		timeout:        config.Timeout,
		maxRetries:     config.MaxRetries,
		retryDelay:     config.RetryDelay,
	}, nil
}

// ChatResponse is the tagged outcome of one model round: plain answer text,
// or one or more tool-invocation requests. Message holds the assistant
// message verbatim so it can be replayed into the follow-up round.
type ChatResponse struct {
	Text      string
	ToolCalls []openai.ToolCall
	Message   openai.ChatCompletionMessage
}

// HasToolCalls reports whether the model requested any tool invocation
func (r *ChatResponse) HasToolCalls() bool {
	return len(r.ToolCalls) > 0
}

// GenerateEmbedding generates an embedding vector for one text
func (c *Client) GenerateEmbedding(text string) ([]float64, error) {
	vectors, err := c.GenerateEmbeddings([]string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// GenerateEmbeddings generates embedding vectors for a batch of texts,
// returned in input order
func (c *Client) GenerateEmbeddings(texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
			Input: texts,
			Model: openai.EmbeddingModel(c.embeddingModel),
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Data) != len(texts) {
			lastErr = fmt.Errorf("attempt %d: expected %d embeddings, got %d", attempt+1, len(texts), len(resp.Data))
			continue
		}

		vectors := make([][]float64, len(texts))
		for _, item := range resp.Data {
			if item.Index < 0 || item.Index >= len(vectors) {
				return nil, fmt.Errorf("%w: embedding index %d out of range", ErrProvider, item.Index)
			}
			vector := make([]float64, len(item.Embedding))
			for i, v := range item.Embedding {
				vector[i] = float64(v)
			}
			vectors[item.Index] = vector
		}
		return vectors, nil
	}

	return nil, fmt.Errorf("%w: failed to generate embeddings after %d attempts: %v", ErrProvider, c.maxRetries+1, lastErr)
}

// Chat sends one round of messages to the chat model. Tools are offered
// only when allowTools is set; otherwise tool choice is pinned to "none"
// so the model structurally cannot request another invocation.
func (c *Client) Chat(messages []openai.ChatCompletionMessage, tools []openai.Tool, allowTools bool) (*ChatResponse, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    messages,
		Temperature: 0,
	}
	if len(tools) > 0 {
		req.Tools = tools
		if !allowTools {
			req.ToolChoice = "none"
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		resp, err := c.client.CreateChatCompletion(ctx, req)
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		msg := resp.Choices[0].Message
		return &ChatResponse{
			Text:      msg.Content,
			ToolCalls: msg.ToolCalls,
			Message:   msg,
		}, nil
	}

	return nil, fmt.Errorf("%w: chat completion failed after %d attempts: %v", ErrProvider, c.maxRetries+1, lastErr)
}
