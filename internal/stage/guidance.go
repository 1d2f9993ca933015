package stage

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ParthGupta1304/CLARIX/internal/model"
)

// fallbackSuggestion is returned when the model produces no usable suggestions
const fallbackSuggestion = "Verify claims using reputable news sources and official databases."

// GuidanceGenerator produces actionable verification suggestions for the user
type GuidanceGenerator struct {
	gateway  Completer
	logger   *zap.Logger
	maxItems int
}

// NewGuidanceGenerator creates a new guidance stage
func NewGuidanceGenerator(gateway Completer, maxItems int, logger *zap.Logger) *GuidanceGenerator {
	if maxItems <= 0 {
		maxItems = 4
	}
	return &GuidanceGenerator{gateway: gateway, logger: logger, maxItems: maxItems}
}

// Generate renders the pipeline context and asks for 2-4 suggestions. A
// missing or non-list suggestions field falls back to a single fixed
// suggestion; the result is truncated to maxItems.
func (g *GuidanceGenerator) Generate(ctx context.Context, summary string, claims []model.ClaimAnalysis, signals []model.BiasSignal) ([]string, error) {
	data, err := g.gateway.CompleteJSON(ctx, guidancePrompt, renderContext(summary, claims, signals))
	if err != nil {
		return nil, err
	}

	raw, ok := asList(data["suggestions"])
	if !ok {
		g.logger.Warn("llm returned non-list suggestions, using fallback")
		return []string{fallbackSuggestion}, nil
	}

	suggestions := make([]string, 0, g.maxItems)
	for _, item := range raw {
		if s, ok := item.(string); ok {
			suggestions = append(suggestions, s)
			if len(suggestions) == g.maxItems {
				break
			}
		}
	}

	if len(suggestions) == 0 {
		return []string{fallbackSuggestion}, nil
	}
	return suggestions, nil
}

// renderContext flattens the earlier stage outputs into the guidance input
func renderContext(summary string, claims []model.ClaimAnalysis, signals []model.BiasSignal) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Summary: %s\n", summary)
	sb.WriteString("Claims:\n")
	for _, c := range claims {
		fmt.Fprintf(&sb, "  - [%s] %s\n", c.Verdict, c.Claim)
	}
	sb.WriteString("Bias signals:\n")
	for _, s := range signals {
		fmt.Fprintf(&sb, "  - %s: %s\n", s.Signal, s.Detail)
	}
	return sb.String()
}
