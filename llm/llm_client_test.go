package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLLMOptionsApply(t *testing.T) {
	settings := LLMSettings{
		model:       "test-model",
		temperature: 0.7,
		maxTokens:   4096,
	}

	opts := []LLMOption{
		WithTemperature(0.1),
		WithMaxTokens(8000),
		WithSystemPrompt("You are a data analyst."),
		WithStreaming(true),
	}
	for _, opt := range opts {
		opt(&settings)
	}

	assert.Equal(t, 0.1, settings.temperature)
	assert.Equal(t, 8000, settings.maxTokens)
	assert.Equal(t, "You are a data analyst.", settings.system)
	assert.True(t, settings.stream)
	assert.Equal(t, "test-model", settings.model)
}

func TestLLMOptionsDefaults(t *testing.T) {
	settings := LLMSettings{
		model:       "test-model",
		temperature: 0.7,
		maxTokens:   4096,
	}

	// No options applied, defaults stay
	assert.Equal(t, 0.7, settings.temperature)
	assert.Equal(t, 4096, settings.maxTokens)
	assert.Empty(t, settings.system)
	assert.False(t, settings.stream)
}
