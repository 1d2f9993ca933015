package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/net/html"

	"github.com/ParthGupta1304/CLARIX/internal/model"
)

// fetchSleepFunc is swapped out in tests to avoid real backoff waits
var fetchSleepFunc = time.Sleep

// Article is the text content extracted from a fetched page
type Article struct {
	Title    string
	Text     string
	FinalURL string
}

// Fetcher downloads a page and extracts its title and visible text so a URL
// can be fed into the verification pipeline like pasted content.
type Fetcher struct {
	httpClient    *http.Client
	userAgent     string
	maxBytes      int64
	respectRobots bool

	robotsMu    sync.RWMutex
	robotsCache map[string]*robotstxt.RobotsData
}

// NewFetcher creates a fetcher with the given HTTP configuration
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent:     cfg.UserAgent,
		maxBytes:      cfg.MaxBodyBytes,
		respectRobots: cfg.RespectRobots,
		robotsCache:   make(map[string]*robotstxt.RobotsData),
	}
}

// Fetch retrieves the page at rawURL and extracts its article text
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Article, error) {
	if f.respectRobots {
		allowed, err := f.robotsAllowed(ctx, rawURL)
		if err == nil && !allowed {
			return nil, fmt.Errorf("robots.txt disallows fetching %s", rawURL)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	title, text, err := extractArticle(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	return &Article{
		Title:    title,
		Text:     text,
		FinalURL: resp.Request.URL.String(),
	}, nil
}

// FetchWithRetry fetches with up to 3 attempts, backing off between
// transient failures. Permanent failures (4xx other than 429) fail fast.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*Article, error) {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if attempt > 1 {
			fetchSleepFunc(time.Duration(attempt-1) * 2 * time.Second)
		}
		article, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return article, nil
		}
		lastErr = err
		if !isRetryableFetchError(err) || ctx.Err() != nil {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

// isRetryableFetchError reports whether a fetch failure is worth retrying
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range []string{"status: 429", "status: 500", "status: 502", "status: 503", "status: 504", "connection refused", "timeout", "EOF"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// robotsAllowed checks robots.txt for the URL, caching per host
func (f *Fetcher) robotsAllowed(ctx context.Context, rawURL string) (bool, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("parse URL: %w", err)
	}

	f.robotsMu.RLock()
	data, cached := f.robotsCache[parsed.Host]
	f.robotsMu.RUnlock()

	if !cached {
		robotsURL := fmt.Sprintf("%s://%s/robots.txt", parsed.Scheme, parsed.Host)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
		if err != nil {
			return true, nil
		}
		req.Header.Set("User-Agent", f.userAgent)

		resp, err := f.httpClient.Do(req)
		if err != nil {
			// Unreachable robots.txt does not block the fetch
			return true, nil
		}
		defer func() { _ = resp.Body.Close() }()

		data, err = robotstxt.FromResponse(resp)
		if err != nil {
			return true, nil
		}

		f.robotsMu.Lock()
		f.robotsCache[parsed.Host] = data
		f.robotsMu.Unlock()
	}

	return data.TestAgent(parsed.Path, f.userAgent), nil
}

// extractArticle pulls the title and visible body text from an HTML document
func extractArticle(htmlContent string) (title, text string, err error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "title":
				if title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
				return
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				buf.WriteString(t)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return title, strings.TrimSpace(buf.String()), nil
}
