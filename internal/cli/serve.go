package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ParthGupta1304/CLARIX/internal/cache"
	"github.com/ParthGupta1304/CLARIX/internal/llm"
	"github.com/ParthGupta1304/CLARIX/internal/pipeline"
	"github.com/ParthGupta1304/CLARIX/internal/server"
)

var (
	serveHost    string
	servePort    int
	serveNoCache bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the verification engine as an HTTP service",
	Long: `Serve exposes the verification pipeline over HTTP for the upstream
backend: GET /health and POST /verify. Requests carry an optional
X-Internal-Token shared secret; identical content is answered from the
result cache.

Example:
  clarix serve --port 8000
  CLARIX_INTERNAL_TOKEN=secret clarix serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides config)")
	serveCmd.Flags().BoolVar(&serveNoCache, "no-cache", false, "disable the result cache")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg := loadConfig()
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if serveNoCache {
		cfg.Cache.Enabled = false
	}

	gateway, err := llm.NewClient(cfg.LLM, logger)
	if err != nil {
		return fmt.Errorf("configure gateway: %w", err)
	}

	logger.Info("clarix engine starting",
		zap.String("provider", gateway.ProviderName()),
		zap.String("model", cfg.LLM.Model))

	p := pipeline.New(gateway, cfg.Pipeline, logger)

	var results *cache.ResultCache
	if cfg.Cache.Enabled {
		results = cache.NewResultCache(cfg.Cache.TTL)
	}

	return server.New(p, results, cfg, logger).ListenAndServe(ctx)
}
