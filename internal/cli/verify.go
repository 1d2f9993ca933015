package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ParthGupta1304/CLARIX/internal/llm"
	"github.com/ParthGupta1304/CLARIX/internal/model"
	"github.com/ParthGupta1304/CLARIX/internal/pipeline"
)

var (
	verifyURL         string
	verifyTitle       string
	verifyContentType string
	verifyTimeout     time.Duration
	verifyOutJSON     string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <file|url|->",
	Short: "Verify the credibility of a text file, URL, or stdin",
	Long: `Verify runs the full Clarix pipeline on a single piece of content:
summary, claim extraction, claim verification, bias analysis, deterministic
scoring, verdict, and verification guidance.

The argument is a path to a text file, an http(s) URL (the article text is
fetched and extracted first), or "-" to read from stdin.

Example:
  clarix verify article.txt
  clarix verify https://example.com/news/story --json result.json
  cat post.txt | clarix verify - --content-type opinion`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyURL, "url", "", "source URL for credibility heuristics (when input is not a URL)")
	verifyCmd.Flags().StringVar(&verifyTitle, "title", "", "article title, prepended to the content for analysis")
	verifyCmd.Flags().StringVar(&verifyContentType, "content-type", "", "content type hint (news, opinion, satire, breaking, ...)")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 3*time.Minute, "overall verification timeout")
	verifyCmd.Flags().StringVar(&verifyOutJSON, "json", "", "write the full result JSON to this path")
}

func runVerify(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
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

	req := pipeline.Request{
		URL:         verifyURL,
		Title:       verifyTitle,
		ContentType: verifyContentType,
	}

	switch {
	case input == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		req.Content = string(data)

	case strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://"):
		fetcher := pipeline.NewFetcher(cfg.HTTP)
		article, err := fetcher.FetchWithRetry(ctx, input)
		if err != nil {
			return fmt.Errorf("fetch article: %w", err)
		}
		req.Content = article.Text
		req.URL = article.FinalURL
		if req.Title == "" {
			req.Title = article.Title
		}

	default:
		data, err := os.ReadFile(input)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		req.Content = string(data)
	}

	if len(req.Content) > cfg.Pipeline.MaxContentLength {
		req.Content = req.Content[:cfg.Pipeline.MaxContentLength]
	}

	result, err := p.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	if verifyOutJSON != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		if err := os.WriteFile(verifyOutJSON, data, 0644); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", verifyOutJSON)
		}
	}

	printResult(result)
	return nil
}

// printResult renders a short human-readable summary to stdout
func printResult(result *model.PipelineResult) {
	fmt.Printf("Score:    %d/100 (%s)\n", result.AuthenticityScore, result.Category)
	fmt.Printf("Verdict:  %s\n", result.Verdict)
	fmt.Printf("Source:   %s\n", result.SourceQuality)
	fmt.Printf("Summary:  %s\n", result.Summary)
	fmt.Println()

	if len(result.Claims) > 0 {
		fmt.Println("Claims:")
		for _, c := range result.Claims {
			fmt.Printf("  [%s] (%.2f) %s\n", c.Verdict, c.Confidence, c.Claim)
		}
		fmt.Println()
	}

	if len(result.BiasSignals) > 0 {
		fmt.Println("Bias signals:")
		for _, s := range result.BiasSignals {
			if s.Detail != "" {
				fmt.Printf("  - %s: %s\n", s.Signal, s.Detail)
			} else {
				fmt.Printf("  - %s\n", s.Signal)
			}
		}
		fmt.Println()
	}

	fmt.Println("Reasoning:")
	fmt.Printf("  %s\n\n", result.Reasoning)

	if len(result.HowToVerify) > 0 {
		fmt.Println("How to verify:")
		for _, s := range result.HowToVerify {
			fmt.Printf("  - %s\n", s)
		}
	}
}
