package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ParthGupta1304/CLARIX/internal/model"
	"github.com/ParthGupta1304/CLARIX/internal/score"
	"github.com/ParthGupta1304/CLARIX/internal/stage"
)

// contentTypeAdjustment holds the flat score adjustment for a recognised
// content-type hint.
var contentTypeAdjustments = map[string]int{
	"satire":   -15,
	"opinion":  -8,
	"breaking": -5,
}

// Request is the input to one verification run
type Request struct {
	Content     string // required, the text to assess
	URL         string // optional source URL for credibility heuristics
	Title       string // optional, prepended to content before analysis
	ContentType string // optional hint: satire/opinion/breaking adjust the score
	RequestID   string // opaque, echoed back in the result
}

// Pipeline orchestrates the staged verification run: summary, claim
// extraction, and bias analysis fan out concurrently; claim verification,
// deterministic scoring, verdict mapping, and guidance follow in order.
type Pipeline struct {
	summarizer *stage.Summarizer
	extractor  *stage.ClaimExtractor
	verifier   *stage.ClaimVerifier
	bias       *stage.BiasAnalyzer
	guidance   *stage.GuidanceGenerator
	logger     *zap.Logger
}

// New creates a pipeline over the given gateway
func New(gateway stage.Completer, cfg model.PipelineConfig, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		summarizer: stage.NewSummarizer(gateway, logger),
		extractor:  stage.NewClaimExtractor(gateway, cfg.MaxClaims, logger),
		verifier:   stage.NewClaimVerifier(gateway, logger),
		bias:       stage.NewBiasAnalyzer(gateway, logger),
		guidance:   stage.NewGuidanceGenerator(gateway, cfg.MaxGuidanceItems, logger),
		logger:     logger,
	}
}

// Run executes the full verification pipeline. Any stage failure that is not
// locally recoverable aborts the whole run; there is no partial result.
func (p *Pipeline) Run(ctx context.Context, req Request) (*model.PipelineResult, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("content is required")
	}

	started := time.Now()

	analysisText := req.Content
	if req.Title != "" {
		analysisText = fmt.Sprintf("Title: %s\n\n%s", req.Title, req.Content)
	}

	// Phase 1: summary, claim extraction, and bias analysis are mutually
	// independent. One irrecoverable failure cancels the siblings.
	var (
		summary     string
		claims      []string
		biasSignals []model.BiasSignal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = p.summarizer.Summarize(gctx, analysisText)
		if err != nil {
			return fmt.Errorf("summarize: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		claims, err = p.extractor.Extract(gctx, analysisText)
		if err != nil {
			return fmt.Errorf("extract claims: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		biasSignals, _, err = p.bias.Analyze(gctx, analysisText)
		if err != nil {
			return fmt.Errorf("analyze bias: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.logger.Info("analysis phase complete",
		zap.Int("claims", len(claims)),
		zap.Int("bias_signals", len(biasSignals)))

	// Phase 2: verify the extracted claims (no-op on empty extraction)
	analyses, skipped, err := p.verifier.Verify(ctx, claims)
	if err != nil {
		return nil, fmt.Errorf("verify claims: %w", err)
	}
	if skipped > 0 {
		p.logger.Warn("verifier skipped malformed judgments", zap.Int("skipped", skipped))
	}

	// Phase 3: pure heuristics
	sourceCred := score.AssessSourceCredibility(req.URL, req.Content)
	evidenceQual := score.AssessEvidenceQuality(analyses)

	// Phase 4: deterministic score, content-type adjustment, verdict
	authenticity := score.ComputeScore(analyses, biasSignals, sourceCred, evidenceQual)
	if adj, ok := contentTypeAdjustments[strings.ToLower(req.ContentType)]; ok {
		authenticity = score.Clamp(authenticity + adj)
		p.logger.Info("content type adjustment applied",
			zap.String("content_type", req.ContentType),
			zap.Int("adjustment", adj),
			zap.Int("score", authenticity))
	}
	verdict := score.DetermineVerdict(authenticity)

	// Phase 5: guidance and final assembly
	howToVerify, err := p.guidance.Generate(ctx, summary, analyses, biasSignals)
	if err != nil {
		return nil, fmt.Errorf("generate guidance: %w", err)
	}

	result := assembleResult(req, summary, analyses, biasSignals, howToVerify, authenticity, verdict, sourceCred, evidenceQual)

	p.logger.Info("pipeline complete",
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("score", authenticity),
		zap.String("verdict", string(verdict)))

	return result, nil
}

// assembleResult builds the immutable aggregate output of a run
func assembleResult(
	req Request,
	summary string,
	analyses []model.ClaimAnalysis,
	biasSignals []model.BiasSignal,
	howToVerify []string,
	authenticity int,
	verdict model.OverallVerdict,
	sourceCred, evidenceQual int,
) *model.PipelineResult {
	supported, contradicted, unverified := countVerdicts(analyses)

	overallConfidence := 0.5
	if len(analyses) > 0 {
		sum := 0.0
		for _, a := range analyses {
			sum += a.Confidence
		}
		overallConfidence = sum / float64(len(analyses))
	}

	var positive, negative []string
	if supported > 0 {
		positive = append(positive, fmt.Sprintf("%d claim(s) supported by evidence", supported))
	}
	if sourceCred >= score.SourceJournalism {
		positive = append(positive, "Source recognised as credible")
	}
	if evidenceQual >= 5 {
		positive = append(positive, "Evidence quality is strong")
	}

	if contradicted > 0 {
		negative = append(negative, fmt.Sprintf("%d claim(s) contradicted", contradicted))
	}
	if unverified > 0 {
		negative = append(negative, fmt.Sprintf("%d claim(s) could not be verified", unverified))
	}
	for _, sig := range biasSignals {
		if sig.Detail != "" {
			negative = append(negative, fmt.Sprintf("%s: %s", sig.Signal, sig.Detail))
		} else {
			negative = append(negative, sig.Signal)
		}
	}
	if sourceCred <= score.SourceUnknown {
		negative = append(negative, "Source not recognised or flagged")
	}

	reasoning := fmt.Sprintf(
		"Out of %d extracted claim(s), %d %s supported, %d %s contradicted, and %d %s unverified. "+
			"Source credibility adjustment: %+d. Evidence quality adjustment: %+d. "+
			"%d bias/manipulation signal(s) detected. Final authenticity score: %d/100.",
		len(analyses),
		supported, isAre(supported),
		contradicted, isAre(contradicted),
		unverified, isAre(unverified),
		sourceCred, evidenceQual,
		len(biasSignals), authenticity,
	)

	return &model.PipelineResult{
		Summary:           summary,
		Claims:            analyses,
		BiasSignals:       biasSignals,
		AuthenticityScore: authenticity,
		Verdict:           verdict,
		Reasoning:         reasoning,
		HowToVerify:       howToVerify,
		Disclaimer:        model.Disclaimer,
		OverallConfidence: overallConfidence,
		Category:          score.Category(authenticity),
		Label:             string(verdict),
		Color:             score.Color(authenticity),
		SourceQuality:     score.SourceQuality(sourceCred),
		PositiveSignals:   positive,
		NegativeSignals:   negative,
		RequestID:         req.RequestID,
	}
}

func countVerdicts(analyses []model.ClaimAnalysis) (supported, contradicted, unverified int) {
	for _, a := range analyses {
		switch a.Verdict {
		case model.VerdictSupported:
			supported++
		case model.VerdictContradicted:
			contradicted++
		case model.VerdictUnverified:
			unverified++
		}
	}
	return
}

func isAre(n int) string {
	if n == 1 {
		return "is"
	}
	return "are"
}
