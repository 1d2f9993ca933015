package model

import "strings"

// ClaimVerdict is the closed set of per-claim judgments
type ClaimVerdict string

const (
	VerdictSupported    ClaimVerdict = "SUPPORTED"    // Claim agrees with established evidence
	VerdictContradicted ClaimVerdict = "CONTRADICTED" // Claim conflicts with established evidence
	VerdictUnverified   ClaimVerdict = "UNVERIFIED"   // Evidence insufficient either way
)

// ParseVerdict normalises a raw verdict string into a ClaimVerdict.
// Unrecognised input maps to VerdictUnverified, never an error.
func ParseVerdict(raw string) ClaimVerdict {
	switch ClaimVerdict(strings.ToUpper(strings.TrimSpace(raw))) {
	case VerdictSupported:
		return VerdictSupported
	case VerdictContradicted:
		return VerdictContradicted
	default:
		return VerdictUnverified
	}
}

// ClaimAnalysis is the verification judgment for a single extracted claim.
// Confidence is always within [0,1] once constructed.
type ClaimAnalysis struct {
	Claim           string       `json:"claim"`
	Verdict         ClaimVerdict `json:"verdict"`
	Confidence      float64      `json:"confidence"`
	Reason          string       `json:"reason"`
	CredibleSources []string     `json:"credible_sources"` // Institution/organisation names, never URLs
}

// BiasSignal is one detected manipulation or bias indicator.
// Insertion order is preserved for display; scoring matches the label
// case-insensitively against an ordered penalty table.
type BiasSignal struct {
	Signal string `json:"signal"`
	Detail string `json:"detail"`
}

// ClampConfidence forces a confidence value into [0,1].
func ClampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
