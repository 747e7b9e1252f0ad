package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/dates"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/ingestion"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/observability"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/pipeline"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/storage"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

var cleanCommand = &cobra.Command{
	Use:   "clean",
	Short: "Clean a raw scrape into the market's table",
	Long: `Runs every cleaning stage over a raw scrape CSV: field splitting, exclusion of postings
for the other market, posting-date reconstruction, attribute extraction, optional title
translation and title normalization. The result replaces the market's table.`,
	RunE: runClean,
}

var (
	cleanMarket        string
	cleanInput         string
	cleanOutput        string
	cleanRules         string
	cleanTranslate     bool
	cleanTranslateRows int
	cleanNoPersist     bool
	cleanValidate      bool
	cleanUnmatched     bool
	cleanReference     string
	cleanNumDays       int
	cleanSeed          uint64
)

func init() {
	cleanCommand.Flags().StringVarP(&cleanMarket, "market", "m", "", "Market: egypt or saudi-arabia (required)")
	cleanCommand.Flags().StringVarP(&cleanInput, "input", "i", "", "Path to raw scrape CSV (required)")
	cleanCommand.Flags().StringVarP(&cleanOutput, "out", "o", "", "Also write the clean table to this CSV file")
	cleanCommand.Flags().StringVar(&cleanRules, "rules", "", "Rule table YAML to use instead of the embedded one")
	cleanCommand.Flags().BoolVar(&cleanTranslate, "translate", false, "Translate Arabic titles (requires GEMINI_API_KEY)")
	cleanCommand.Flags().IntVar(&cleanTranslateRows, "translate-rows", 0, "Translate only the first N titles in descending order")
	cleanCommand.Flags().BoolVar(&cleanNoPersist, "no-persist", false, "Do not write the table to the store")
	cleanCommand.Flags().BoolVar(&cleanValidate, "validate", false, "Validate the clean records against the JSON schema")
	cleanCommand.Flags().BoolVar(&cleanUnmatched, "show-unmatched", false, "List titles no rule changed")
	cleanCommand.Flags().StringVar(&cleanReference, "reference-date", "", "As-of date YYYY-MM-DD (default: config, then today)")
	cleanCommand.Flags().IntVar(&cleanNumDays, "num-days", 0, "Days to spread N+ postings over")
	cleanCommand.Flags().Uint64Var(&cleanSeed, "seed", 0, "Seed for the date spread")

	_ = cleanCommand.MarkFlagRequired("market")
	_ = cleanCommand.MarkFlagRequired("input")

	rootCmd.AddCommand(cleanCommand)
}

func runClean(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	market, err := types.ParseMarket(cleanMarket)
	if err != nil {
		return err
	}

	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("translate") {
		appConfig.Translation.Enabled = cleanTranslate
	}
	if cmd.Flags().Changed("translate-rows") {
		appConfig.Translation.Rows = cleanTranslateRows
	}
	if cmd.Flags().Changed("reference-date") {
		appConfig.ReferenceDate = cleanReference
	}
	if cmd.Flags().Changed("num-days") {
		appConfig.NumDays = cleanNumDays
	}
	if cmd.Flags().Changed("seed") {
		appConfig.Seed = cleanSeed
	}
	ref, err := appConfig.Reference()
	if err != nil {
		return err
	}

	engine, err := loadEngine(market, cleanRules)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	tr, closeTranslator, err := buildTranslator(ctx)
	if err != nil {
		return err
	}
	defer closeTranslator()

	var store storage.Store
	if !cleanNoPersist {
		store, err = openStore(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
	}

	res, err := pipeline.Run(ctx, pipeline.RunOptions{
		Market:               market,
		SourcePath:           cleanInput,
		ReferenceDate:        ref,
		NumDays:              appConfig.NumDays,
		Seed:                 appConfig.Seed,
		Jitter:               dates.DefaultJitter,
		Translator:           tr,
		TranslateRows:        appConfig.Translation.Rows,
		TranslateConcurrency: appConfig.Translation.Concurrency,
		Titles:               engine,
		Store:                store,
		ValidateOutput:       cleanValidate,
		Logger:               logger,
	})
	if err != nil {
		return err
	}

	if cleanOutput != "" {
		if err := writeCleanCSV(cleanOutput, res.Records); err != nil {
			return err
		}
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintRunSummary(res)
	if cleanUnmatched {
		printer.PrintUnmatched(res.Unmatched)
	}
	return nil
}

func writeCleanCSV(path string, records []types.JobRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := ingestion.WriteCleanCSV(f, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
