package llm

import (
	"fmt"
	"strings"

	"github.com/ParthGupta1304/CLARIX/internal/model"
)

// NewProvider creates a text-generation provider based on configuration
func NewProvider(config model.LLMConfig) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai", "":
		return NewOpenAIProvider(config)

	case "azure":
		return NewAzureProvider(config)

	case "ollama", "local":
		return NewOllamaProvider(config)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, azure, ollama)", config.Provider)
	}
}
