package stage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ParthGupta1304/CLARIX/internal/model"
)

// BiasAnalyzer detects manipulation and bias indicators in the input content
type BiasAnalyzer struct {
	gateway Completer
	logger  *zap.Logger
}

// NewBiasAnalyzer creates a new bias analysis stage
func NewBiasAnalyzer(gateway Completer, logger *zap.Logger) *BiasAnalyzer {
	return &BiasAnalyzer{gateway: gateway, logger: logger}
}

// Analyze returns the detected bias signals in the order the model emitted
// them, plus the number of malformed items that were skipped. Malformed
// items never fail the stage.
func (b *BiasAnalyzer) Analyze(ctx context.Context, content string) ([]model.BiasSignal, int, error) {
	data, err := b.gateway.CompleteJSON(ctx, biasAnalysisPrompt, content)
	if err != nil {
		return nil, 0, err
	}

	raw, ok := asList(data["bias_signals"])
	if !ok {
		b.logger.Warn("llm returned non-list bias signals")
		return []model.BiasSignal{}, 0, nil
	}

	signals := make([]model.BiasSignal, 0, len(raw))
	skipped := 0
	for _, item := range raw {
		signal, err := decodeBiasSignal(item)
		if err != nil {
			skipped++
			b.logger.Warn("skipping malformed bias signal", zap.Error(err), zap.Any("item", item))
			continue
		}
		signals = append(signals, signal)
	}

	return signals, skipped, nil
}

// decodeBiasSignal coerces one untrusted signal object into a BiasSignal
func decodeBiasSignal(item any) (model.BiasSignal, error) {
	obj, ok := item.(map[string]any)
	if !ok {
		return model.BiasSignal{}, fmt.Errorf("signal item is %T, not an object", item)
	}

	signal, ok := asString(obj["signal"])
	if !ok || signal == "" {
		return model.BiasSignal{}, fmt.Errorf("signal item has no label")
	}

	return model.BiasSignal{
		Signal: signal,
		Detail: stringOr(obj["detail"], ""),
	}, nil
}
