package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/cache"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/ingestion"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/llm"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/storage"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/titles"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/translate"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

// parseMarkets resolves market names, falling back to the configured markets.
func parseMarkets(names []string) ([]types.Market, error) {
	if len(names) == 0 {
		names = appConfig.Markets
	}
	markets := make([]types.Market, 0, len(names))
	for _, n := range names {
		m, err := types.ParseMarket(n)
		if err != nil {
			return nil, err
		}
		markets = append(markets, m)
	}
	return markets, nil
}

func openStore(ctx context.Context) (storage.Store, error) {
	return storage.Open(ctx, appConfig.Storage.Driver, appConfig.Storage.DSN, logger)
}

// buildTranslator returns nil when translation is disabled. The returned closer releases
// the model client and the cache.
func buildTranslator(ctx context.Context) (*translate.BestEffort, func(), error) {
	tc := appConfig.Translation
	if !tc.Enabled {
		return nil, func() {}, nil
	}
	if tc.APIKey == "" {
		return nil, nil, fmt.Errorf("translation requires GEMINI_API_KEY or translation.api_key")
	}

	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), tc.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create translation client: %w", err)
	}
	closers := []func() error{client.Close}

	var c cache.Cache = cache.NewMemory()
	if appConfig.Redis.Addr != "" {
		r, err := cache.NewRedis(ctx, cache.RedisOptions{
			Addr:     appConfig.Redis.Addr,
			Password: appConfig.Redis.Password,
			DB:       appConfig.Redis.DB,
		}, logger)
		if err != nil {
			logger.Warn("redis cache unavailable, using in-memory cache", zap.Error(err))
		} else {
			c = r
			closers = append(closers, r.Close)
		}
	}

	tr := &translate.BestEffort{
		Backend: &translate.LLMBackend{Client: client, Tier: llm.ModelTier(tc.ModelTier)},
		Cache:   c,
		Timeout: appConfig.TranslationTimeout(),
		Logger:  logger,
	}
	closeAll := func() {
		for _, f := range closers {
			_ = f()
		}
	}
	return tr, closeAll, nil
}

// loadEngine compiles the market's embedded rules, or the table at rulesPath.
func loadEngine(m types.Market, rulesPath string) (*titles.Engine, error) {
	if rulesPath == "" {
		return titles.New(m, titles.WithLogger(logger))
	}
	table, err := titles.ReadTableFile(rulesPath)
	if err != nil {
		return nil, err
	}
	return titles.Compile(table, titles.WithLogger(logger))
}

// readTitles reads titles from a raw scrape CSV (its title column) or from a plain text
// file with one title per line.
func readTitles(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		records, _, err := ingestion.ReadRawCSV(path)
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, len(records))
		for _, r := range records {
			if r.Title != "" {
				out = append(out, r.Title)
			}
		}
		return out, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return out, nil
}
