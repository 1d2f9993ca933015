package score

import "github.com/ParthGupta1304/CLARIX/internal/model"

// DetermineVerdict maps an authenticity score to the three-tier verdict:
// 85-100 verified, 65-84 questionable, 0-64 misleading.
func DetermineVerdict(score int) model.OverallVerdict {
	switch {
	case score >= 85:
		return model.VerdictVerified
	case score >= 65:
		return model.VerdictQuestionable
	default:
		return model.VerdictMisleading
	}
}

// Category maps a score to the finer five-tier display bucket. Coarser-
// grained thresholds than the verdict, but monotonic in the same score, so
// the two can never disagree in direction.
func Category(score int) model.CredibilityCategory {
	switch {
	case score >= 85:
		return model.CategoryHigh
	case score >= 70:
		return model.CategoryGood
	case score >= 55:
		return model.CategoryMixed
	case score >= 35:
		return model.CategoryLow
	default:
		return model.CategoryVeryLow
	}
}

// Color maps a score to the UI color hint
func Color(score int) string {
	switch {
	case score >= 85:
		return "green"
	case score >= 65:
		return "yellow"
	default:
		return "red"
	}
}

// SourceQuality maps a source credibility modifier to its display tier
func SourceQuality(credibility int) string {
	switch {
	case credibility >= SourceInstitutional:
		return "institutional"
	case credibility >= SourceJournalism:
		return "journalism"
	case credibility <= SourceMisinfo:
		return "misinfo"
	default:
		return "unknown"
	}
}
