package llm

import "context"

// Provider defines the interface for text-generation backends.
// Implementations send one (instruction, content) pair and return the raw
// assistant reply text. Retry, rate limiting, and JSON parsing live in
// Client, not here.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a single chat-completion request and returns the raw reply
	Complete(ctx context.Context, instruction, content string) (string, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}
