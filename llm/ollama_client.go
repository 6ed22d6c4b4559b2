package llm

import (
	"context"
	"fmt"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

// OllamaClient runs inference against a local Ollama server. The host is
// taken from the environment (OLLAMA_HOST), like the rest of the api package.
type OllamaClient struct {
	client *api.Client
	model  string
}

func NewOllamaClient(model string) LLMClient {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		logger.Fatal("Failed to create Ollama client", zap.Error(err))
		return nil
	}

	return &OllamaClient{
		client: client,
		model:  model,
	}
}

func (c *OllamaClient) GetModel() string {
	return c.model
}

func (c *OllamaClient) GenerateInference(ctx context.Context, messages []Message, callback func(chunk string) error, opts ...LLMOption) error {
	settings := LLMSettings{
		model:       c.model,
		temperature: 0.7,
		maxTokens:   4096,
	}

	// Apply options
	for _, opt := range opts {
		opt(&settings)
	}

	chatMessages := make([]api.Message, 0, len(messages)+1)
	if settings.system != "" {
		chatMessages = append(chatMessages, api.Message{Role: "system", Content: settings.system})
	}
	for _, msg := range messages {
		chatMessages = append(chatMessages, api.Message{Role: msg.Role, Content: msg.Content})
	}

	stream := settings.stream
	request := &api.ChatRequest{
		Model:    settings.model,
		Messages: chatMessages,
		Stream:   &stream,
		Options: map[string]any{
			"temperature": settings.temperature,
			"num_predict": settings.maxTokens,
		},
	}

	err := c.client.Chat(ctx, request, func(resp api.ChatResponse) error {
		if resp.Message.Content == "" {
			return nil
		}
		return callback(resp.Message.Content)
	})
	if err != nil {
		return fmt.Errorf("ollama chat failed: %w", err)
	}
	return nil
}
