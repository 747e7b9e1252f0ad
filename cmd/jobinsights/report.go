package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/observability"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/report"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/schemas"
)

var reportCommand = &cobra.Command{
	Use:   "report [market...]",
	Short: "Summarize the clean tables",
	Long: `Aggregates each market's stored table into frequency sections: titles, cities, companies,
industries, grades, remote mode, gender, graduation requirement, posting months and the
daily posting trend.`,
	RunE: runReport,
}

var (
	reportTopN int
	reportJSON bool
)

func init() {
	reportCommand.Flags().IntVarP(&reportTopN, "top", "n", 0, "Rows per section (default: config)")
	reportCommand.Flags().BoolVar(&reportJSON, "json", false, "Print the reports as JSON")

	rootCmd.AddCommand(reportCommand)
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	markets, err := parseMarkets(args)
	if err != nil {
		return err
	}
	topN := appConfig.Report.TopN
	if reportTopN > 0 {
		topN = reportTopN
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	reports := make([]*report.Report, 0, len(markets))
	for _, m := range markets {
		records, err := store.Load(ctx, m)
		if err != nil {
			return err
		}
		reports = append(reports, report.Build(m, records, topN))
	}

	if reportJSON {
		for _, rep := range reports {
			if err := schemas.ValidateReport(rep); err != nil {
				return err
			}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(reports)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	for _, rep := range reports {
		printer.PrintReport(rep)
	}
	return nil
}
