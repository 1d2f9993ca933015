package model

// OverallVerdict is the three-tier authenticity verdict
type OverallVerdict string

const (
	VerdictVerified     OverallVerdict = "VERIFIED / HIGHLY RELIABLE"
	VerdictQuestionable OverallVerdict = "QUESTIONABLE / NEEDS FACT CHECK"
	VerdictMisleading   OverallVerdict = "MISLEADING OR LIKELY FALSE"
)

// CredibilityCategory is the finer five-tier display bucket derived from the
// same score as the verdict. Both are monotonic in score and never disagree
// in direction.
type CredibilityCategory string

const (
	CategoryHigh    CredibilityCategory = "high"
	CategoryGood    CredibilityCategory = "good"
	CategoryMixed   CredibilityCategory = "mixed"
	CategoryLow     CredibilityCategory = "low"
	CategoryVeryLow CredibilityCategory = "very-low"
)

// Disclaimer is attached to every result.
const Disclaimer = "This credibility assessment is AI-generated and should not replace independent verification."

// PipelineResult is the aggregate output of one verification run. It is
// assembled once, fully populated, and never mutated afterwards. Wire field
// names are part of the contract with the upstream backend.
type PipelineResult struct {
	Summary           string              `json:"summary"`
	Claims            []ClaimAnalysis     `json:"claims"`
	BiasSignals       []BiasSignal        `json:"bias_signals"`
	AuthenticityScore int                 `json:"authenticity_score"`
	Verdict           OverallVerdict      `json:"verdict"`
	Reasoning         string              `json:"reasoning"`
	HowToVerify       []string            `json:"how_to_verify"`
	Disclaimer        string              `json:"disclaimer"`
	OverallConfidence float64             `json:"overall_confidence"`
	Category          CredibilityCategory `json:"category"`
	Label             string              `json:"label"`
	Color             string              `json:"color"`
	SourceQuality     string              `json:"source_quality"`
	PositiveSignals   []string            `json:"positive_signals"`
	NegativeSignals   []string            `json:"negative_signals"`
	RequestID         string              `json:"request_id,omitempty"`
}
