package stage

import (
	"context"

	"go.uber.org/zap"
)

// fallbackSummary is substituted whenever the model returns no usable summary
const fallbackSummary = "The content could not be summarized."

// Summarizer produces a neutral 2-3 sentence summary of the input content
type Summarizer struct {
	gateway Completer
	logger  *zap.Logger
}

// NewSummarizer creates a new summarizer stage
func NewSummarizer(gateway Completer, logger *zap.Logger) *Summarizer {
	return &Summarizer{gateway: gateway, logger: logger}
}

// Summarize returns a summary of content. A missing or empty summary field in
// the reply is replaced with a fixed fallback sentence; only a failed gateway
// call surfaces as an error.
func (s *Summarizer) Summarize(ctx context.Context, content string) (string, error) {
	data, err := s.gateway.CompleteJSON(ctx, summaryPrompt, content)
	if err != nil {
		return "", err
	}

	summary, ok := asString(data["summary"])
	if !ok || summary == "" {
		s.logger.Warn("llm returned empty summary, using fallback")
		return fallbackSummary, nil
	}
	return summary, nil
}
