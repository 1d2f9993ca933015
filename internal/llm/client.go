package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ParthGupta1304/CLARIX/internal/model"
)

// ErrInvalidOutput marks a reply that arrived but could not be parsed as a
// JSON object. It is terminal for the call: the retry budget covers transport
// failures, not malformed bodies.
var ErrInvalidOutput = errors.New("llm returned invalid structured output")

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 2 * time.Second
	maxBackoffDelay    = 30 * time.Second
)

// Client is the structured-completion gateway. It wraps a Provider with
// bounded retry, exponential backoff, optional rate limiting, and strict
// JSON parsing of the reply.
type Client struct {
	provider    Provider
	limiter     *rate.Limiter
	logger      *zap.Logger
	maxAttempts int
	baseDelay   time.Duration
}

// NewClient builds a gateway around the configured provider
func NewClient(config model.LLMConfig, logger *zap.Logger) (*Client, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	return NewClientWithProvider(provider, config, logger), nil
}

// NewClientWithProvider builds a gateway around an existing provider
func NewClientWithProvider(provider Provider, config model.LLMConfig, logger *zap.Logger) *Client {
	maxAttempts := config.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	var limiter *rate.Limiter
	if config.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		provider:    provider,
		limiter:     limiter,
		logger:      logger,
		maxAttempts: maxAttempts,
		baseDelay:   defaultBaseDelay,
	}
}

// ProviderName returns the name of the underlying provider
func (c *Client) ProviderName() string {
	return c.provider.Name()
}

// CompleteJSON sends the (instruction, content) pair and returns the reply
// parsed as a JSON object. Transport failures are retried up to the attempt
// budget with exponential backoff; the last failure is returned as-is. A
// reply that is not a JSON object fails with ErrInvalidOutput and is not
// retried further.
func (c *Client) CompleteJSON(ctx context.Context, instruction, content string) (map[string]any, error) {
	raw, err := c.completeWithRetry(ctx, instruction, content)
	if err != nil {
		return nil, err
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		preview := raw
		if len(preview) > 500 {
			preview = preview[:500]
		}
		c.logger.Error("failed to parse llm reply as JSON",
			zap.Error(err),
			zap.String("provider", c.provider.Name()),
			zap.String("raw", preview))
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	return parsed, nil
}

// completeWithRetry runs the provider call under the retry budget
func (c *Client) completeWithRetry(ctx context.Context, instruction, content string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := c.backoff(attempt - 1)
			c.logger.Warn("llm call failed, retrying",
				zap.Int("attempt", attempt-1),
				zap.Duration("backoff", delay),
				zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return "", err
			}
		}

		raw, err := c.provider.Complete(ctx, instruction, content)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		// Context cancellation is not worth retrying
		if ctx.Err() != nil {
			return "", lastErr
		}
	}

	return "", fmt.Errorf("llm call failed after %d attempts: %w", c.maxAttempts, lastErr)
}

// backoff returns the delay before the given retry (1-based), doubling from
// the base delay and capped at maxBackoffDelay.
func (c *Client) backoff(retry int) time.Duration {
	delay := c.baseDelay
	for i := 1; i < retry; i++ {
		delay *= 2
		if delay >= maxBackoffDelay {
			return maxBackoffDelay
		}
	}
	if delay > maxBackoffDelay {
		delay = maxBackoffDelay
	}
	return delay
}
