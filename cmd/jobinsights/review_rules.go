package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/observability"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/titles"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

var reviewRulesCommand = &cobra.Command{
	Use:   "review-rules",
	Short: "Show which titles each rule matches, without changing anything",
	Long: `For every rule of a market's table, in table order, lists the titles its pattern matches
and the match count. Titles come from --input (raw scrape CSV or one title per line) or, when
omitted, from the market's stored table. Nothing is rewritten.`,
	RunE: runReviewRules,
}

var (
	reviewMarket     string
	reviewInput      string
	reviewRules      string
	reviewRaw        bool
	reviewJSON       bool
	reviewMaxTitles  int
	reviewOnlyUnused bool
)

func init() {
	reviewRulesCommand.Flags().StringVarP(&reviewMarket, "market", "m", "", "Market: egypt or saudi-arabia (required)")
	reviewRulesCommand.Flags().StringVarP(&reviewInput, "input", "i", "", "Titles file (CSV or text); default: the stored table")
	reviewRulesCommand.Flags().StringVar(&reviewRules, "rules", "", "Rule table YAML to review instead of the embedded one")
	reviewRulesCommand.Flags().BoolVar(&reviewRaw, "raw", false, "Match titles as given, without preprocessing")
	reviewRulesCommand.Flags().BoolVar(&reviewJSON, "json", false, "Print the review as JSON")
	reviewRulesCommand.Flags().IntVar(&reviewMaxTitles, "max-titles", 5, "Titles listed per rule (-1 for all)")
	reviewRulesCommand.Flags().BoolVar(&reviewOnlyUnused, "unused", false, "Only list rules that match nothing")

	_ = reviewRulesCommand.MarkFlagRequired("market")

	rootCmd.AddCommand(reviewRulesCommand)
}

func runReviewRules(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	market, err := types.ParseMarket(reviewMarket)
	if err != nil {
		return err
	}
	engine, err := loadEngine(market, reviewRules)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	var list []string
	if reviewInput != "" {
		list, err = readTitles(reviewInput)
		if err != nil {
			return err
		}
	} else {
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		records, err := store.Load(ctx, market)
		if err != nil {
			return err
		}
		for _, r := range records {
			list = append(list, r.Title)
		}
	}

	if !reviewRaw {
		for i, t := range list {
			list[i] = titles.Preprocess(t)
		}
	}
	titles.SortDescending(list)

	reports := engine.Review(list)
	if reviewOnlyUnused {
		unused := reports[:0:0]
		for _, r := range reports {
			if r.Count == 0 {
				unused = append(unused, r)
			}
		}
		reports = unused
	}

	if reviewJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(reports)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.MaxItems = reviewMaxTitles
	printer.PrintReview(market.String(), reports)
	return nil
}
