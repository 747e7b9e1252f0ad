package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/fetch"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/scraper"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

var scrapeCommand = &cobra.Command{
	Use:   "scrape [market...]",
	Short: "Scrape raw job postings from bayt.com",
	Long: `Reads the listing pages of each market, follows every job card to its detail page and
writes the raw postings to <out>/<market>-<date>.csv with a .meta.json sidecar. Markets
default to the configured ones.`,
	RunE: runScrape,
}

var (
	scrapePages   int
	scrapeOutDir  string
	scrapeBrowser bool
	scrapeBaseURL string
)

func init() {
	scrapeCommand.Flags().IntVarP(&scrapePages, "pages", "p", 0, "Listing pages per market (default: config)")
	scrapeCommand.Flags().StringVarP(&scrapeOutDir, "out", "o", "", "Output directory (default: config)")
	scrapeCommand.Flags().BoolVar(&scrapeBrowser, "browser", false, "Fall back to headless Chrome for script-rendered pages")
	scrapeCommand.Flags().StringVar(&scrapeBaseURL, "base-url", "", "Override the site root")
	_ = scrapeCommand.Flags().MarkHidden("base-url")

	rootCmd.AddCommand(scrapeCommand)
}

func runScrape(cmd *cobra.Command, args []string) error {
	markets, err := parseMarkets(args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("pages") {
		appConfig.Scraper.Pages = scrapePages
	}
	if scrapeOutDir != "" {
		appConfig.Scraper.OutputDir = scrapeOutDir
	}
	if cmd.Flags().Changed("browser") {
		appConfig.Scraper.UseBrowser = scrapeBrowser
	}

	out := cmd.OutOrStdout()
	for _, m := range markets {
		path, stats, err := scrapeMarket(cmd.Context(), m)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "%s: %d records from %d pages (%d failed pages, %d bad links) -> %s\n",
			m, stats.Records, stats.Pages, stats.FailedPages, stats.BadLinks, path)
	}
	return nil
}

// scrapeMarket scrapes one market with the configured scraper settings and saves the
// raw file.
func scrapeMarket(ctx context.Context, m types.Market) (string, scraper.Stats, error) {
	sc := appConfig.Scraper

	opts := fetch.DefaultOptions()
	if sc.UserAgent != "" {
		opts.UserAgent = sc.UserAgent
	}
	fetcher := fetch.NewFetcher(opts, sc.RatePerSec, logger)
	fetcher.UseBrowser = sc.UseBrowser
	fetcher.ReadySelector = scraper.CardSelector

	bayt := &scraper.Bayt{
		Getter:      fetcher,
		BaseURL:     scrapeBaseURL,
		Concurrency: sc.Concurrency,
		Logger:      logger,
	}
	records, stats, err := bayt.Scrape(ctx, m, sc.Pages)
	if err != nil {
		return "", stats, err
	}
	if len(records) == 0 {
		return "", stats, fmt.Errorf("no postings scraped for %s", m)
	}

	path, err := scraper.Save(sc.OutputDir, m, records, time.Now())
	if err != nil {
		return "", stats, err
	}
	logger.Info("raw postings saved", zap.String("market", m.String()), zap.String("path", path), zap.Int("records", len(records)))
	return path, stats, nil
}
