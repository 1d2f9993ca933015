package stage

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ParthGupta1304/CLARIX/internal/model"
)

// ClaimVerifier judges each extracted claim against established evidence
type ClaimVerifier struct {
	gateway Completer
	logger  *zap.Logger
}

// NewClaimVerifier creates a new claim verification stage
func NewClaimVerifier(gateway Completer, logger *zap.Logger) *ClaimVerifier {
	return &ClaimVerifier{gateway: gateway, logger: logger}
}

// Verify returns one ClaimAnalysis per well-formed judgment, plus the number
// of malformed items that were skipped. An empty claim list short-circuits
// without calling the gateway.
func (v *ClaimVerifier) Verify(ctx context.Context, claims []string) ([]model.ClaimAnalysis, int, error) {
	if len(claims) == 0 {
		return []model.ClaimAnalysis{}, 0, nil
	}

	var sb strings.Builder
	sb.WriteString("Claims to verify:\n")
	for _, c := range claims {
		fmt.Fprintf(&sb, "- %s\n", c)
	}

	data, err := v.gateway.CompleteJSON(ctx, claimVerificationPrompt, sb.String())
	if err != nil {
		return nil, 0, err
	}

	raw, ok := asList(data["results"])
	if !ok {
		v.logger.Warn("llm returned non-list verification results")
		return []model.ClaimAnalysis{}, 0, nil
	}

	analyses := make([]model.ClaimAnalysis, 0, len(raw))
	skipped := 0
	for _, item := range raw {
		analysis, err := decodeClaimResult(item)
		if err != nil {
			skipped++
			v.logger.Warn("skipping malformed claim result", zap.Error(err), zap.Any("item", item))
			continue
		}
		analyses = append(analyses, analysis)
	}

	return analyses, skipped, nil
}

// decodeClaimResult coerces one untrusted judgment object into a
// ClaimAnalysis. Unrecognised verdicts default to UNVERIFIED and confidences
// are clamped into [0,1]; only a structurally unusable item is rejected.
func decodeClaimResult(item any) (model.ClaimAnalysis, error) {
	obj, ok := item.(map[string]any)
	if !ok {
		return model.ClaimAnalysis{}, fmt.Errorf("result item is %T, not an object", item)
	}

	claim, ok := asString(obj["claim"])
	if !ok || strings.TrimSpace(claim) == "" {
		return model.ClaimAnalysis{}, fmt.Errorf("result item has no claim text")
	}

	confidence := 0.5
	if f, ok := asFloat(obj["confidence"]); ok {
		confidence = model.ClampConfidence(f)
	}

	return model.ClaimAnalysis{
		Claim:           claim,
		Verdict:         model.ParseVerdict(stringOr(obj["verdict"], "")),
		Confidence:      confidence,
		Reason:          stringOr(obj["reason"], "No reason provided."),
		CredibleSources: asStringSlice(obj["credible_sources"]),
	}, nil
}
