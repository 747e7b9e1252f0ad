package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/dates"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/pipeline"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/scheduler"
)

var scheduleCommand = &cobra.Command{
	Use:   "schedule",
	Short: "Scrape and clean every market on a schedule",
	Long: `Runs one scrape and clean cycle per configured market at startup and then on the
configured cron spec (default "@every 24h") until interrupted. A failing market is logged
and the others still run.`,
	RunE: runSchedule,
}

var scheduleSpec string

func init() {
	scheduleCommand.Flags().StringVar(&scheduleSpec, "spec", "", "Cron spec (default: config)")
	rootCmd.AddCommand(scheduleCommand)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	if scheduleSpec != "" {
		appConfig.Schedule = scheduleSpec
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return scheduler.New(appConfig.Schedule, runCycle, logger).Run(ctx)
}

// runCycle scrapes and cleans every configured market.
func runCycle(ctx context.Context) error {
	markets, err := parseMarkets(nil)
	if err != nil {
		return err
	}
	ref, err := appConfig.Reference()
	if err != nil {
		return err
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	tr, closeTranslator, err := buildTranslator(ctx)
	if err != nil {
		return err
	}
	defer closeTranslator()

	var errs []error
	for _, m := range markets {
		path, _, err := scrapeMarket(ctx, m)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", m, err))
			continue
		}
		engine, err := loadEngine(m, "")
		if err != nil {
			return err
		}
		res, err := pipeline.Run(ctx, pipeline.RunOptions{
			Market:               m,
			SourcePath:           path,
			ReferenceDate:        ref,
			NumDays:              appConfig.NumDays,
			Seed:                 appConfig.Seed,
			Jitter:               dates.DefaultJitter,
			Translator:           tr,
			TranslateRows:        appConfig.Translation.Rows,
			TranslateConcurrency: appConfig.Translation.Concurrency,
			Titles:               engine,
			Store:                store,
			Logger:               logger,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", m, err))
			continue
		}
		logger.Info("market refreshed",
			zap.String("market", m.String()),
			zap.Int("rows", len(res.Records)),
			zap.Int("excluded", res.Excluded),
			zap.Int("dropped", res.Dropped))
	}
	return errors.Join(errs...)
}
