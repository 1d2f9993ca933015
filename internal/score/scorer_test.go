package score

import (
	"testing"

	"github.com/ParthGupta1304/CLARIX/internal/model"
)

func claim(verdict model.ClaimVerdict, confidence float64) model.ClaimAnalysis {
	return model.ClaimAnalysis{
		Claim:      "Test claim",
		Verdict:    verdict,
		Confidence: confidence,
		Reason:     "Test reason",
	}
}

func claims(verdict model.ClaimVerdict, confidence float64, n int) []model.ClaimAnalysis {
	out := make([]model.ClaimAnalysis, n)
	for i := range out {
		out[i] = claim(verdict, confidence)
	}
	return out
}

func signals(labels ...string) []model.BiasSignal {
	out := make([]model.BiasSignal, len(labels))
	for i, l := range labels {
		out[i] = model.BiasSignal{Signal: l}
	}
	return out
}

func TestComputeScore_BaseCase(t *testing.T) {
	if got := ComputeScore(nil, nil, 0, 0); got != 50 {
		t.Errorf("ComputeScore(empty) = %d, want 50", got)
	}
}

func TestComputeScore_ClaimAdjustments(t *testing.T) {
	tests := []struct {
		name    string
		verdict model.ClaimVerdict
		count   int
		want    int
	}{
		{"supported", model.VerdictSupported, 3, 50 + 3*12},
		{"contradicted", model.VerdictContradicted, 2, 50 - 2*18},
		{"unverified", model.VerdictUnverified, 4, 50 - 4*5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeScore(claims(tt.verdict, 0.8, tt.count), nil, 0, 0)
			if got != tt.want {
				t.Errorf("ComputeScore(%d %s) = %d, want %d", tt.count, tt.verdict, got, tt.want)
			}
		})
	}
}

func TestComputeScore_BiasPenalties(t *testing.T) {
	got := ComputeScore(nil, signals("Sensationalism", "Missing context"), 0, 0)
	if got != 50-10-8 {
		t.Errorf("ComputeScore = %d, want %d", got, 50-10-8)
	}
}

func TestComputeScore_BiasMatchIsCaseInsensitive(t *testing.T) {
	got := ComputeScore(nil, signals("Heavy SENSATIONALISM detected"), 0, 0)
	if got != 40 {
		t.Errorf("ComputeScore = %d, want 40", got)
	}
}

func TestComputeScore_UnknownSignalPenalty(t *testing.T) {
	got := ComputeScore(nil, signals("Completely novel manipulation"), 0, 0)
	if got != 46 {
		t.Errorf("unknown signal: ComputeScore = %d, want 46", got)
	}
}

func TestComputeScore_FirstMatchWins(t *testing.T) {
	// "sensationalism" precedes "clickbait" in the table, so a label matching
	// both takes only the sensationalism penalty.
	got := ComputeScore(nil, signals("sensationalism and clickbait"), 0, 0)
	if got != 40 {
		t.Errorf("multi-match signal: ComputeScore = %d, want 40", got)
	}
}

func TestComputeScore_ClampedLow(t *testing.T) {
	got := ComputeScore(claims(model.VerdictContradicted, 0.5, 10), nil, 0, 0)
	if got != 0 {
		t.Errorf("ComputeScore(10 contradicted) = %d, want 0", got)
	}
}

func TestComputeScore_ClampedHigh(t *testing.T) {
	got := ComputeScore(claims(model.VerdictSupported, 0.9, 10), nil, 20, 15)
	if got != 100 {
		t.Errorf("ComputeScore(10 supported, +20, +15) = %d, want 100", got)
	}
}

func TestComputeScore_Modifiers(t *testing.T) {
	if got := ComputeScore(nil, nil, 20, 0); got != 70 {
		t.Errorf("source credibility: got %d, want 70", got)
	}
	if got := ComputeScore(nil, nil, 0, -12); got != 38 {
		t.Errorf("evidence quality: got %d, want 38", got)
	}
}

func TestComputeScore_MonotonicInSupported(t *testing.T) {
	prev := ComputeScore(nil, nil, 0, 0)
	for n := 1; n <= 4; n++ {
		got := ComputeScore(claims(model.VerdictSupported, 0.8, n), nil, 0, 0)
		if got <= prev {
			t.Errorf("score not strictly increasing at %d supported claims: %d <= %d", n, got, prev)
		}
		prev = got
	}
}

func TestComputeScore_AntiMonotonicInContradicted(t *testing.T) {
	prev := ComputeScore(nil, nil, 0, 0)
	for n := 1; n <= 2; n++ {
		got := ComputeScore(claims(model.VerdictContradicted, 0.8, n), nil, 0, 0)
		if got >= prev {
			t.Errorf("score not strictly decreasing at %d contradicted claims: %d >= %d", n, got, prev)
		}
		prev = got
	}
}
