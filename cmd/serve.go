package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/readiness/internal/httpapi"
	"github.com/huangsam/readiness/internal/logger"
	"github.com/spf13/cobra"
)

// serveCmd runs the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve readiness scoring over HTTP",
	Long: `Start an HTTP API for scoring populations.

Endpoints:
  GET  /healthz       - liveness probe
  POST /v1/readiness  - score {"as_of": "...", "people": [...]}, returns the full report
  GET  /v1/metrics    - weights, formulas and tuning in use

Invalid people are reported in the response body; only a malformed body is a 400.

Examples:
  readiness serve --listen :8080
  readiness serve --store-backend sqlite`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return httpapi.NewServer(cfg, runStore, logger.Default()).ListenAndServe(ctx, cfg.Listen)
	},
}
