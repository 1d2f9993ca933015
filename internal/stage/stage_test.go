package stage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ParthGupta1304/CLARIX/internal/model"
)

// mockGateway implements Completer for testing
type mockGateway struct {
	data        map[string]any
	err         error
	calls       int
	lastContent string
}

func (m *mockGateway) CompleteJSON(ctx context.Context, instruction, content string) (map[string]any, error) {
	m.calls++
	m.lastContent = content
	if m.err != nil {
		return nil, m.err
	}
	return m.data, nil
}

func TestSummarizer_ReturnsSummary(t *testing.T) {
	gw := &mockGateway{data: map[string]any{"summary": "Calm seas ahead."}}
	s := NewSummarizer(gw, zap.NewNop())

	got, err := s.Summarize(context.Background(), "content")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != "Calm seas ahead." {
		t.Errorf("Summarize = %q", got)
	}
}

func TestSummarizer_FallbackOnEmptyOrMissing(t *testing.T) {
	for _, data := range []map[string]any{
		{"summary": ""},
		{},
		{"summary": 42},
	} {
		gw := &mockGateway{data: data}
		s := NewSummarizer(gw, zap.NewNop())

		got, err := s.Summarize(context.Background(), "content")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got != fallbackSummary {
			t.Errorf("Summarize(%v) = %q, want fallback", data, got)
		}
	}
}

func TestSummarizer_GatewayErrorPropagates(t *testing.T) {
	gw := &mockGateway{err: errors.New("gateway down")}
	s := NewSummarizer(gw, zap.NewNop())

	if _, err := s.Summarize(context.Background(), "content"); err == nil {
		t.Fatal("Expected gateway error to propagate")
	}
}

func TestClaimExtractor_CleansAndDeduplicates(t *testing.T) {
	gw := &mockGateway{data: map[string]any{"claims": []any{
		"  The earth orbits the sun.  ",
		"THE EARTH ORBITS THE SUN.",
		"",
		"   ",
		"Water boils at 100C.",
		42, // non-string entries are dropped
		"the earth orbits the sun.",
	}}}
	e := NewClaimExtractor(gw, 10, zap.NewNop())

	got, err := e.Extract(context.Background(), "content")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{"The earth orbits the sun.", "Water boils at 100C."}
	if len(got) != len(want) {
		t.Fatalf("Extract = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Extract[%d] = %q, want %q (first-seen order must be preserved)", i, got[i], want[i])
		}
	}
}

func TestClaimExtractor_TruncatesToMax(t *testing.T) {
	raw := make([]any, 20)
	for i := range raw {
		raw[i] = string(rune('a'+i)) + " claim"
	}
	gw := &mockGateway{data: map[string]any{"claims": raw}}
	e := NewClaimExtractor(gw, 5, zap.NewNop())

	got, err := e.Extract(context.Background(), "content")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 5 {
		t.Errorf("Extract returned %d claims, want 5", len(got))
	}
	if got[0] != "a claim" {
		t.Errorf("truncation must keep the earliest claims, got[0] = %q", got[0])
	}
}

func TestClaimExtractor_NonListCoercesToEmpty(t *testing.T) {
	for _, data := range []map[string]any{
		{},
		{"claims": "not a list"},
		{"claims": 7},
	} {
		gw := &mockGateway{data: data}
		e := NewClaimExtractor(gw, 10, zap.NewNop())

		got, err := e.Extract(context.Background(), "content")
		if err != nil {
			t.Fatalf("Expected no error for %v, got %v", data, err)
		}
		if len(got) != 0 {
			t.Errorf("Extract(%v) = %v, want empty", data, got)
		}
	}
}

func TestClaimVerifier_EmptyInputShortCircuits(t *testing.T) {
	gw := &mockGateway{}
	v := NewClaimVerifier(gw, zap.NewNop())

	got, skipped, err := v.Verify(context.Background(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 0 || skipped != 0 {
		t.Errorf("Verify(empty) = %v (skipped %d), want empty", got, skipped)
	}
	if gw.calls != 0 {
		t.Errorf("Expected no gateway call on empty input, got %d", gw.calls)
	}
}

func TestClaimVerifier_DecodesJudgments(t *testing.T) {
	gw := &mockGateway{data: map[string]any{"results": []any{
		map[string]any{
			"claim":            "The vaccine was approved in 2021.",
			"verdict":          "SUPPORTED",
			"confidence":       0.9,
			"reason":           "Matches regulatory records.",
			"credible_sources": []any{"WHO", "EMA"},
		},
	}}}
	v := NewClaimVerifier(gw, zap.NewNop())

	got, skipped, err := v.Verify(context.Background(), []string{"The vaccine was approved in 2021."})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if skipped != 0 {
		t.Errorf("Expected no skipped items, got %d", skipped)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 analysis, got %d", len(got))
	}
	a := got[0]
	if a.Verdict != model.VerdictSupported || a.Confidence != 0.9 {
		t.Errorf("Unexpected analysis: %+v", a)
	}
	if len(a.CredibleSources) != 2 || a.CredibleSources[0] != "WHO" {
		t.Errorf("Unexpected sources: %v", a.CredibleSources)
	}
}

func TestClaimVerifier_MalformedItemsSkippedNotFatal(t *testing.T) {
	gw := &mockGateway{data: map[string]any{"results": []any{
		"not an object",
		map[string]any{"verdict": "SUPPORTED"}, // no claim text
		map[string]any{"claim": "Valid claim.", "verdict": "CONTRADICTED", "confidence": 0.4},
	}}}
	v := NewClaimVerifier(gw, zap.NewNop())

	got, skipped, err := v.Verify(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if skipped != 2 {
		t.Errorf("Expected 2 skipped items, got %d", skipped)
	}
	if len(got) != 1 || got[0].Verdict != model.VerdictContradicted {
		t.Errorf("Expected the valid item to survive, got %v", got)
	}
}

func TestClaimVerifier_DefaultsAndClamping(t *testing.T) {
	gw := &mockGateway{data: map[string]any{"results": []any{
		map[string]any{"claim": "a", "verdict": "PROBABLY TRUE", "confidence": 1.7},
		map[string]any{"claim": "b", "verdict": "supported", "confidence": -0.3},
		map[string]any{"claim": "c", "confidence": "not a number"},
	}}}
	v := NewClaimVerifier(gw, zap.NewNop())

	got, _, err := v.Verify(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 analyses, got %d", len(got))
	}

	if got[0].Verdict != model.VerdictUnverified {
		t.Errorf("unrecognised verdict must default to UNVERIFIED, got %s", got[0].Verdict)
	}
	if got[0].Confidence != 1.0 {
		t.Errorf("confidence must clamp to 1.0, got %v", got[0].Confidence)
	}
	if got[1].Verdict != model.VerdictSupported {
		t.Errorf("verdict parsing must be case-insensitive, got %s", got[1].Verdict)
	}
	if got[1].Confidence != 0.0 {
		t.Errorf("confidence must clamp to 0.0, got %v", got[1].Confidence)
	}
	if got[2].Confidence != 0.5 {
		t.Errorf("non-numeric confidence must default to 0.5, got %v", got[2].Confidence)
	}
}

func TestBiasAnalyzer_DecodesAndPreservesOrder(t *testing.T) {
	gw := &mockGateway{data: map[string]any{"bias_signals": []any{
		map[string]any{"signal": "Clickbait", "detail": "Headline withholds the key fact."},
		map[string]any{"signal": "Loaded language"},
		map[string]any{"detail": "no label"}, // skipped
	}}}
	b := NewBiasAnalyzer(gw, zap.NewNop())

	got, skipped, err := b.Analyze(context.Background(), "content")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if skipped != 1 {
		t.Errorf("Expected 1 skipped signal, got %d", skipped)
	}
	if len(got) != 2 || got[0].Signal != "Clickbait" || got[1].Signal != "Loaded language" {
		t.Errorf("Unexpected signals: %v", got)
	}
	if got[1].Detail != "" {
		t.Errorf("Missing detail must decode to empty, got %q", got[1].Detail)
	}
}

func TestBiasAnalyzer_NonListIsEmptyNotError(t *testing.T) {
	gw := &mockGateway{data: map[string]any{"bias_signals": "none"}}
	b := NewBiasAnalyzer(gw, zap.NewNop())

	got, _, err := b.Analyze(context.Background(), "content")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty signals, got %v", got)
	}
}

func TestGuidanceGenerator_TruncatesToMax(t *testing.T) {
	gw := &mockGateway{data: map[string]any{"suggestions": []any{"a", "b", "c", "d", "e", "f"}}}
	g := NewGuidanceGenerator(gw, 4, zap.NewNop())

	got, err := g.Generate(context.Background(), "summary", nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 4 {
		t.Errorf("Expected 4 suggestions, got %d", len(got))
	}
}

func TestGuidanceGenerator_FallbackOnMissingOrEmpty(t *testing.T) {
	for _, data := range []map[string]any{
		{},
		{"suggestions": "check things"},
		{"suggestions": []any{}},
	} {
		gw := &mockGateway{data: data}
		g := NewGuidanceGenerator(gw, 4, zap.NewNop())

		got, err := g.Generate(context.Background(), "summary", nil, nil)
		if err != nil {
			t.Fatalf("Expected no error for %v, got %v", data, err)
		}
		if len(got) != 1 || got[0] != fallbackSuggestion {
			t.Errorf("Generate(%v) = %v, want single fallback", data, got)
		}
	}
}

func TestGuidanceGenerator_RendersContext(t *testing.T) {
	gw := &mockGateway{data: map[string]any{"suggestions": []any{"ok"}}}
	g := NewGuidanceGenerator(gw, 4, zap.NewNop())

	claims := []model.ClaimAnalysis{{Claim: "Sea levels rose 10cm.", Verdict: model.VerdictSupported}}
	signals := []model.BiasSignal{{Signal: "Sensationalism", Detail: "Alarmist framing."}}

	if _, err := g.Generate(context.Background(), "A summary.", claims, signals); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, want := range []string{"A summary.", "[SUPPORTED] Sea levels rose 10cm.", "Sensationalism: Alarmist framing."} {
		if !strings.Contains(gw.lastContent, want) {
			t.Errorf("rendered context missing %q:\n%s", want, gw.lastContent)
		}
	}
}
