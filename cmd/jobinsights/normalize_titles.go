package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/observability"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/titles"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

var normalizeTitlesCommand = &cobra.Command{
	Use:   "normalize-titles [title...]",
	Short: "Normalize job titles with a market's rules",
	Long: `Preprocesses each title, applies the market's rules in order (the last matching rule
wins) and prints "raw => canonical" per title. Titles come from the arguments or --input.`,
	RunE: runNormalizeTitles,
}

var (
	normalizeMarket    string
	normalizeInput     string
	normalizeRules     string
	normalizeUnmatched bool
)

func init() {
	normalizeTitlesCommand.Flags().StringVarP(&normalizeMarket, "market", "m", "", "Market: egypt or saudi-arabia (required)")
	normalizeTitlesCommand.Flags().StringVarP(&normalizeInput, "input", "i", "", "Titles file (CSV or text)")
	normalizeTitlesCommand.Flags().StringVar(&normalizeRules, "rules", "", "Rule table YAML to use instead of the embedded one")
	normalizeTitlesCommand.Flags().BoolVar(&normalizeUnmatched, "unmatched", false, "Only list titles no rule changed")

	_ = normalizeTitlesCommand.MarkFlagRequired("market")

	rootCmd.AddCommand(normalizeTitlesCommand)
}

func runNormalizeTitles(cmd *cobra.Command, args []string) error {
	market, err := types.ParseMarket(normalizeMarket)
	if err != nil {
		return err
	}
	engine, err := loadEngine(market, normalizeRules)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	raw := append([]string(nil), args...)
	if normalizeInput != "" {
		fromFile, err := readTitles(normalizeInput)
		if err != nil {
			return err
		}
		raw = append(raw, fromFile...)
	}
	if len(raw) == 0 {
		return fmt.Errorf("no titles given: pass titles as arguments or use --input")
	}

	before := make([]string, len(raw))
	after := make([]string, len(raw))
	for i, t := range raw {
		before[i] = titles.Preprocess(t)
		after[i] = engine.Apply(before[i])
	}

	if normalizeUnmatched {
		observability.NewPrinter(cmd.OutOrStdout()).PrintUnmatched(titles.Unmatched(before, after))
		return nil
	}
	out := cmd.OutOrStdout()
	for i, t := range raw {
		_, _ = fmt.Fprintf(out, "%s => %s\n", t, titles.TitleCase(after[i]))
	}
	return nil
}
