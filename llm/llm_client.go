package llm

import (
	"context"
)

// LLMClient is the oracle boundary. Implementations deliver the model output
// through the callback, in one piece or in chunks.
type LLMClient interface {
	GenerateInference(
		ctx context.Context,
		messages []Message,
		callback func(chunk string) error,
		opts ...LLMOption,
	) error

	GetModel() string
}

type LLMSettings struct {
	model       string  // model name
	temperature float64 // randomness (0.0 to 1.0)
	maxTokens   int     // maximum tokens to generate
	system      string  // system prompt
	stream      bool    // whether to stream response
}

type LLMOption func(*LLMSettings)

// Common options for all LLM providers
func WithTemperature(temp float64) LLMOption {
	return func(s *LLMSettings) { s.temperature = temp }
}

func WithMaxTokens(tokens int) LLMOption {
	return func(s *LLMSettings) { s.maxTokens = tokens }
}

func WithSystemPrompt(prompt string) LLMOption {
	return func(s *LLMSettings) { s.system = prompt }
}

func WithStreaming(stream bool) LLMOption {
	return func(s *LLMSettings) { s.stream = stream }
}

type Message struct {
	Role    string `json:"role"`    // "user", "assistant", "system"
	Content string `json:"content"` // the message content
}
