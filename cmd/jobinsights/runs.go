package main

import (
	"github.com/spf13/cobra"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/observability"
)

var runsCommand = &cobra.Command{
	Use:   "runs",
	Short: "List recent cleaning runs",
	RunE:  runRuns,
}

var runsLimit int

func init() {
	runsCommand.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Maximum runs to list")
	rootCmd.AddCommand(runsCommand)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.Runs(ctx, runsLimit)
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintRuns(runs)
	return nil
}
