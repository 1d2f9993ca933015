package score

import (
	"strings"

	"github.com/ParthGupta1304/CLARIX/internal/model"
)

// Per-claim score adjustments
const (
	baseScore           = 50
	supportedBonus      = 12
	contradictedPenalty = -18
	unverifiedPenalty   = -5

	// unknownSignalPenalty applies to bias signals matching no table entry
	unknownSignalPenalty = -4
)

// signalPenalty pairs a lower-case substring key with its penalty. The table
// is an ordered list on purpose: when a signal label matches several keys,
// the first match wins, which keeps scoring reproducible.
type signalPenalty struct {
	key     string
	penalty int
}

var signalPenalties = []signalPenalty{
	{"sensationalism", -10},
	{"context omission", -8},
	{"missing context", -8},
	{"misleading visual", -12},
	{"misleading image", -12},
	{"clickbait", -8},
	{"loaded language", -6},
	{"emotional language", -6},
	{"selective statistics", -8},
	{"political slant", -6},
	{"ideological slant", -6},
}

// ComputeScore combines per-claim verdicts, bias-signal penalties, and the
// externally-computed source/evidence modifiers into a 0-100 authenticity
// score. Pure and deterministic: same inputs, same score.
func ComputeScore(claims []model.ClaimAnalysis, signals []model.BiasSignal, sourceCredibility, evidenceQuality int) int {
	score := baseScore

	for _, claim := range claims {
		switch claim.Verdict {
		case model.VerdictSupported:
			score += supportedBonus
		case model.VerdictContradicted:
			score += contradictedPenalty
		case model.VerdictUnverified:
			score += unverifiedPenalty
		}
	}

	score += sourceCredibility
	score += evidenceQuality

	for _, sig := range signals {
		score += penaltyFor(sig.Signal)
	}

	return Clamp(score)
}

// penaltyFor returns the first matching table penalty for a signal label,
// or the generic penalty when nothing matches. Unknown signals are never free.
func penaltyFor(label string) int {
	lower := strings.ToLower(label)
	for _, entry := range signalPenalties {
		if strings.Contains(lower, entry.key) {
			return entry.penalty
		}
	}
	return unknownSignalPenalty
}

// Clamp forces a score into [0, 100]
func Clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
