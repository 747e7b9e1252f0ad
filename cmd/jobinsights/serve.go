package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/server"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/server/ratelimit"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Serve the clean tables over a read-only JSON API",
	Long: `Starts an HTTP server exposing the stored market tables:

  GET  /health
  GET  /markets
  GET  /markets/{market}/report?top=N
  GET  /markets/{market}/jobs?title=&city=&limit=&offset=
  GET  /runs?limit=N
  POST /normalize   {"market": "egypt", "titles": ["..."]}

Requests are rate limited per client IP.`,
	RunE: runServe,
}

var serveAddr string

func init() {
	serveCommand.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: config)")
	rootCmd.AddCommand(serveCommand)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if serveAddr != "" {
		appConfig.Server.Addr = serveAddr
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	srv, err := server.New(server.Config{
		Addr:      appConfig.Server.Addr,
		Store:     store,
		TopN:      appConfig.Report.TopN,
		RateLimit: ratelimit.NewConfig(appConfig.Server.RateLimit, appConfig.Server.RateBurst),
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
