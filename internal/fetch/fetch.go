// Package fetch retrieves job-board pages over HTTP, with an optional headless-browser
// fallback for pages that render their content with JavaScript.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; JobInsights/1.0)"

// Result holds the raw content from a URL fetch.
type Result struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
	// Rendered is set when the HTML came from the headless browser.
	Rendered bool
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns sensible defaults for fetching. The site serves Arabic listings,
// so Arabic is preferred.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		Headers: map[string]string{
			"Accept-Language": "ar,en;q=0.8",
		},
	}
}

// URL retrieves HTML content from a URL.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	client := &http.Client{
		Timeout: opts.Timeout,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	result := &Result{
		URL:         urlStr,
		HTML:        string(bodyBytes),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if resp.StatusCode != http.StatusOK {
		return result, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	return result, nil
}

// Fetcher is a rate-limited page fetcher shared by concurrent scrape workers.
type Fetcher struct {
	opts    *Options
	limiter *rate.Limiter
	// UseBrowser enables the headless-browser fallback for pages whose HTTP response
	// lacks ReadySelector.
	UseBrowser    bool
	ReadySelector string
	BrowserWait   time.Duration
	logger        *zap.Logger
}

// NewFetcher returns a Fetcher allowing perSecond requests per second. Zero or negative
// disables the limit.
func NewFetcher(opts *Options, perSecond float64, logger *zap.Logger) *Fetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Fetcher{
		opts:        opts,
		limiter:     rate.NewLimiter(limit, 1),
		BrowserWait: 3 * time.Second,
		logger:      logger,
	}
}

// Get waits for the rate limiter and fetches urlStr.
func (f *Fetcher) Get(ctx context.Context, urlStr string) (*Result, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, &Error{URL: urlStr, Message: "rate limiter wait aborted", Cause: err}
	}

	result, err := URL(ctx, urlStr, f.opts)
	if err == nil && (!f.UseBrowser || !NeedsBrowser(result.HTML, f.ReadySelector)) {
		f.logger.Debug("fetched page", zap.String("url", urlStr), zap.Int("bytes", len(result.HTML)))
		return result, nil
	}
	if !f.UseBrowser {
		return result, err
	}

	f.logger.Info("falling back to headless browser", zap.String("url", urlStr), zap.Error(err))
	html, berr := WithBrowser(ctx, urlStr, f.opts.Timeout, f.BrowserWait, f.logger)
	if berr != nil {
		return nil, &Error{URL: urlStr, Message: "browser fallback failed", Cause: berr}
	}
	return &Result{URL: urlStr, HTML: html, StatusCode: http.StatusOK, Rendered: true}, nil
}
