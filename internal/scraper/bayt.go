// Package scraper collects raw job postings from the bayt.com Arabic listing pages. It
// reads a fixed set of listing pages per market, follows every job card to its detail
// page and copies the detail fields verbatim into types.RawRecord.
package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/fetch"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the site root job links are resolved against.
const DefaultBaseURL = "https://www.bayt.com"

// DefaultConcurrency bounds detail-page fetches in flight.
const DefaultConcurrency = 4

// CardSelector matches one job card on a listing page.
const CardSelector = "li.has-pointer-d"

// Getter fetches one page. *fetch.Fetcher satisfies it.
type Getter interface {
	Get(ctx context.Context, url string) (*fetch.Result, error)
}

// Bayt scrapes one market at a time.
type Bayt struct {
	Getter      Getter
	BaseURL     string
	Concurrency int
	Logger      *zap.Logger
}

// Stats summarizes a Scrape call.
type Stats struct {
	Pages       int
	Cards       int
	BadLinks    int
	FailedPages int
	Records     int
}

// ListingURL returns the listing page URL for a market.
func (b *Bayt) ListingURL(m types.Market, page int) string {
	return fmt.Sprintf("%s/ar/%s/jobs/?page=%d", b.baseURL(), m, page)
}

func (b *Bayt) baseURL() string {
	if b.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(b.BaseURL, "/")
}

func (b *Bayt) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

// Scrape reads listing pages 1..pages of market m and returns one record per job card
// whose detail page could be fetched, in listing order. A failing listing page is logged
// and skipped. Only context cancellation aborts the run.
func (b *Bayt) Scrape(ctx context.Context, m types.Market, pages int) ([]types.RawRecord, Stats, error) {
	var stats Stats
	var records []types.RawRecord
	logger := b.logger().With(zap.String("market", m.String()))

	for page := 1; page <= pages; page++ {
		if err := ctx.Err(); err != nil {
			return records, stats, err
		}
		listing := b.ListingURL(m, page)
		logger.Info("processing listing page", zap.Int("page", page), zap.Int("pages", pages))

		res, err := b.Getter.Get(ctx, listing)
		if err != nil {
			stats.FailedPages++
			logger.Warn("listing page failed", zap.String("url", listing), zap.Error(err))
			continue
		}
		stats.Pages++

		links, bad, err := ParseListing(res.HTML, b.baseURL())
		if err != nil {
			stats.FailedPages++
			logger.Warn("listing page unparseable", zap.String("url", listing), zap.Error(err))
			continue
		}
		stats.Cards += len(links) + bad
		stats.BadLinks += bad
		if bad > 0 {
			logger.Debug("job cards without link", zap.Int("count", bad))
		}

		pageRecords, err := b.details(ctx, links)
		if err != nil {
			return records, stats, err
		}
		records = append(records, pageRecords...)
	}

	stats.Records = len(records)
	logger.Info("scrape finished",
		zap.Int("records", stats.Records),
		zap.Int("pages", stats.Pages),
		zap.Int("failed_pages", stats.FailedPages))
	return records, stats, nil
}

// details fetches every detail page concurrently and keeps listing order.
func (b *Bayt) details(ctx context.Context, links []string) ([]types.RawRecord, error) {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	slots := make([]*types.RawRecord, len(links))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, link := range links {
		i, link := i, link
		g.Go(func() error {
			res, err := b.Getter.Get(gctx, link)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				b.logger().Warn("detail page failed", zap.String("url", link), zap.Error(err))
				return nil
			}
			rec, err := ParseDetail(res.HTML, link)
			if err != nil {
				b.logger().Warn("detail page unparseable", zap.String("url", link), zap.Error(err))
				return nil
			}
			mu.Lock()
			slots[i] = &rec
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]types.RawRecord, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

// ParseListing returns the absolute detail links of every job card in listing order, and
// the number of cards that had no usable link.
func ParseListing(html, baseURL string) ([]string, int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse listing HTML: %w", err)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	var links []string
	bad := 0
	doc.Find(CardSelector).Each(func(_ int, card *goquery.Selection) {
		href, ok := card.Find(`a[data-js-aid="jobID"]`).First().Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			bad++
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			bad++
			return
		}
		links = append(links, base.ResolveReference(ref).String())
	})
	return links, bad, nil
}
