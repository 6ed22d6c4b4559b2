package appconfig

import (
	"github.com/SaiNageswarS/go-api-boot/config"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	MongoURI        string `env:"MONGO-URI" ini:"mongo_uri"`
	LLMProvider     string `env:"LLM-PROVIDER" ini:"llm_provider"`
	AnthropicModel  string `env:"ANTHROPIC-MODEL" ini:"anthropic_model"`
	OllamaModel     string `env:"OLLAMA-MODEL" ini:"ollama_model"`
	Tenant          string `env:"TENANT" ini:"tenant"`
	ResultsTTLHours int    `env:"RESULTS-TTL-HOURS" ini:"results_ttl_hours"`
}
