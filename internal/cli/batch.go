package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ParthGupta1304/CLARIX/internal/llm"
	"github.com/ParthGupta1304/CLARIX/internal/pipeline"
	"github.com/ParthGupta1304/CLARIX/internal/worker"
)

var (
	batchConcurrency int
	batchTimeout     time.Duration
	batchOutDir      string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <urls-file>",
	Short: "Verify many URLs concurrently",
	Long: `Batch reads URLs from a file (one per line, # comments allowed),
fetches each article, and runs the full verification pipeline on each,
bounded by the configured concurrency.

Example:
  clarix batch urls.txt --concurrency 4 --out results/`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 3, "number of concurrent verifications")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "overall batch timeout")
	batchCmd.Flags().StringVar(&batchOutDir, "out", "", "directory for per-URL result JSON files (optional)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg := loadConfig()

	gateway, err := llm.NewClient(cfg.LLM, logger)
	if err != nil {
		return fmt.Errorf("configure gateway: %w", err)
	}
	p := pipeline.New(gateway, cfg.Pipeline, logger)
	fetcher := pipeline.NewFetcher(cfg.HTTP)

	processor := worker.NewBatchProcessor(p, fetcher, batchConcurrency)
	results, err := processor.ProcessFile(ctx, args[0])
	if err != nil {
		return err
	}

	if batchOutDir != "" {
		if err := os.MkdirAll(batchOutDir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	failed := 0
	for i, r := range results {
		if r.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.URL, r.Error)
			continue
		}

		fmt.Printf("✓ %s — %d/100 (%s)\n", r.URL, r.Result.AuthenticityScore, r.Result.Verdict)

		if batchOutDir != "" {
			data, err := json.MarshalIndent(r.Result, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal result: %w", err)
			}
			path := fmt.Sprintf("%s/result-%03d.json", batchOutDir, i+1)
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("write result: %w", err)
			}
		}
	}

	fmt.Printf("\n%d verified, %d failed\n", len(results)-failed, failed)
	if failed == len(results) && len(results) > 0 {
		return fmt.Errorf("all %d verifications failed", failed)
	}
	return nil
}
