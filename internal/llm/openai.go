package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ParthGupta1304/CLARIX/internal/model"
)

// OpenAIProvider implements the Provider interface for OpenAI-compatible
// endpoints, including Azure OpenAI deployments.
type OpenAIProvider struct {
	client *openai.Client
	name   string
	config model.LLMConfig
}

// NewOpenAIProvider creates a provider against api.openai.com or a
// custom BaseURL (any OpenAI-compatible endpoint).
func NewOpenAIProvider(config model.LLMConfig) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		name:   "openai",
		config: config,
	}, nil
}

// NewAzureProvider creates a provider against an Azure OpenAI deployment.
// The configured model is the deployment name.
func NewAzureProvider(config model.LLMConfig) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Azure OpenAI API key is required")
	}
	if config.BaseURL == "" {
		return nil, fmt.Errorf("Azure OpenAI endpoint is required")
	}

	clientConfig := openai.DefaultAzureConfig(config.APIKey, config.BaseURL)

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		name:   "azure",
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return p.name
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	return err == nil
}

// Complete sends one chat-completion request in JSON mode and returns the
// raw assistant reply.
func (p *OpenAIProvider) Complete(ctx context.Context, instruction, content string) (string, error) {
	model := p.config.Model
	if model == "" {
		model = openai.GPT4o
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instruction},
			{Role: openai.ChatMessageRoleUser, Content: content},
		},
		Temperature: p.config.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, req)
	if err != nil {
		return "", fmt.Errorf("%s API error: %w", p.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from %s", p.name)
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", fmt.Errorf("empty response from %s", p.name)
	}

	return reply, nil
}
