package score

import (
	"testing"

	"github.com/ParthGupta1304/CLARIX/internal/model"
)

func TestDetermineVerdict(t *testing.T) {
	tests := []struct {
		score int
		want  model.OverallVerdict
	}{
		{100, model.VerdictVerified},
		{85, model.VerdictVerified},
		{84, model.VerdictQuestionable},
		{65, model.VerdictQuestionable},
		{64, model.VerdictMisleading},
		{0, model.VerdictMisleading},
	}

	for _, tt := range tests {
		if got := DetermineVerdict(tt.score); got != tt.want {
			t.Errorf("DetermineVerdict(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		score int
		want  model.CredibilityCategory
	}{
		{100, model.CategoryHigh},
		{85, model.CategoryHigh},
		{84, model.CategoryGood},
		{70, model.CategoryGood},
		{69, model.CategoryMixed},
		{55, model.CategoryMixed},
		{54, model.CategoryLow},
		{35, model.CategoryLow},
		{34, model.CategoryVeryLow},
		{0, model.CategoryVeryLow},
	}

	for _, tt := range tests {
		if got := Category(tt.score); got != tt.want {
			t.Errorf("Category(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

// Verdict and category derive from the same score and must never disagree in
// direction: every verified score is "high", and every "very-low" or "low"
// score is misleading.
func TestVerdictAndCategoryAgree(t *testing.T) {
	for score := 0; score <= 100; score++ {
		verdict := DetermineVerdict(score)
		category := Category(score)

		if verdict == model.VerdictVerified && category != model.CategoryHigh {
			t.Errorf("score %d: verdict %s but category %s", score, verdict, category)
		}
		if category == model.CategoryVeryLow && verdict != model.VerdictMisleading {
			t.Errorf("score %d: category %s but verdict %s", score, category, verdict)
		}
	}
}

func TestColor(t *testing.T) {
	if Color(85) != "green" || Color(84) != "yellow" || Color(65) != "yellow" || Color(64) != "red" {
		t.Error("color thresholds do not match 85/65")
	}
}

func TestSourceQuality(t *testing.T) {
	tests := []struct {
		credibility int
		want        string
	}{
		{SourceInstitutional, "institutional"},
		{SourceJournalism, "journalism"},
		{SourceMisinfo, "misinfo"},
		{SourceUnknown, "unknown"},
		{SourceNoURL, "unknown"},
	}

	for _, tt := range tests {
		if got := SourceQuality(tt.credibility); got != tt.want {
			t.Errorf("SourceQuality(%d) = %s, want %s", tt.credibility, got, tt.want)
		}
	}
}
