package stage

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// ClaimExtractor pulls verifiable factual claims out of the input content
type ClaimExtractor struct {
	gateway   Completer
	logger    *zap.Logger
	maxClaims int
}

// NewClaimExtractor creates a new claim extraction stage
func NewClaimExtractor(gateway Completer, maxClaims int, logger *zap.Logger) *ClaimExtractor {
	if maxClaims <= 0 {
		maxClaims = 10
	}
	return &ClaimExtractor{gateway: gateway, logger: logger, maxClaims: maxClaims}
}

// Extract returns up to maxClaims cleaned claim strings. A missing or
// non-list claims field coerces to an empty slice rather than an error.
func (e *ClaimExtractor) Extract(ctx context.Context, content string) ([]string, error) {
	data, err := e.gateway.CompleteJSON(ctx, claimExtractionPrompt(e.maxClaims), content)
	if err != nil {
		return nil, err
	}

	raw, ok := asList(data["claims"])
	if !ok {
		e.logger.Warn("llm returned non-list claims, coercing to empty")
		return []string{}, nil
	}

	return e.clean(raw), nil
}

// clean trims whitespace, drops empty strings, deduplicates case-insensitively
// preserving first-seen order, and truncates to the configured maximum.
func (e *ClaimExtractor) clean(raw []any) []string {
	cleaned := make([]string, 0, len(raw))
	seen := make(map[string]bool)

	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, s)
		if len(cleaned) == e.maxClaims {
			break
		}
	}

	return cleaned
}
