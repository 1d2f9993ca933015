package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ParthGupta1304/CLARIX/internal/model"
	"github.com/ParthGupta1304/CLARIX/internal/pipeline"
)

// Runner executes one verification request end to end
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (*model.PipelineResult, error)
}

// ArticleFetcher turns a URL into analyzable article text
type ArticleFetcher interface {
	FetchWithRetry(ctx context.Context, rawURL string) (*pipeline.Article, error)
}

// VerifyJob verifies the content behind one URL
type VerifyJob struct {
	URL     string
	Runner  Runner
	Fetcher ArticleFetcher
}

// Execute fetches the article and runs the verification pipeline on it
func (j *VerifyJob) Execute(ctx context.Context) Result {
	article, err := j.Fetcher.FetchWithRetry(ctx, j.URL)
	if err != nil {
		return &VerifyResult{URL: j.URL, Error: fmt.Errorf("fetch: %w", err)}
	}

	result, err := j.Runner.Run(ctx, pipeline.Request{
		Content: article.Text,
		URL:     article.FinalURL,
		Title:   article.Title,
	})
	if err != nil {
		return &VerifyResult{URL: j.URL, Error: err}
	}

	return &VerifyResult{URL: j.URL, Result: result}
}

// VerifyResult is the outcome of one batch verification
type VerifyResult struct {
	URL    string
	Result *model.PipelineResult
	Error  error
}

// GetError returns the error from the verification, if any
func (r *VerifyResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies many URLs concurrently
type BatchProcessor struct {
	runner      Runner
	fetcher     ArticleFetcher
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(runner Runner, fetcher ArticleFetcher, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		fetcher:     fetcher,
		concurrency: concurrency,
	}
}

// ProcessURLs verifies the given URLs concurrently
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string) []*VerifyResult {
	if len(urls) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, url := range urls {
		pool.Submit(&VerifyJob{URL: url, Runner: b.runner, Fetcher: b.fetcher})
	}

	results := pool.Wait()

	verifyResults := make([]*VerifyResult, len(results))
	for i, result := range results {
		verifyResults[i] = result.(*VerifyResult)
	}

	return verifyResults
}

// ProcessFile reads URLs from a file (one per line) and verifies them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*VerifyResult, error) {
	urls, err := ReadURLsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}

	return b.ProcessURLs(ctx, urls), nil
}

// ReadURLsFromFile reads deduplicated URLs from a file, skipping blank lines
// and # comments.
func ReadURLsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}
