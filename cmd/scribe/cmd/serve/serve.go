package serve

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scribe/cmd/scribe/cmd/version"
	"scribe/internal/app"
)

var (
	host string
	port int
)

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "listen host (default HOST or 0.0.0.0)")
	Cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (default PORT or 8000)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API

- Endpoints: /agent, /upload, /history, /download, /stats, /health
- Swagger UI at /swagger/index.html, Prometheus metrics at /metrics
- Without an LLM key the agent falls back to keyword routing`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		verbose, _ := cmd.Flags().GetBool("verbose")
		application, cleanup, err := app.Bootstrap(ctx, app.BootstrapOptions{Verbose: verbose})
		if err != nil {
			return err
		}
		defer cleanup()

		cfg := application.Config
		if host != "" {
			cfg.Server.Host = host
		}
		if port != 0 {
			cfg.Server.Port = port
		}
		if !cfg.LLMConfigured() {
			application.Logger.Warn("agent running in degraded mode", zap.String("missing", cfg.LLM.KeyEnv))
		}
		if !cfg.DeepgramConfigured() {
			application.Logger.Warn("DEEPGRAM_API_KEY not configured, transcriptions will fail")
		}

		srv := application.NewServer(cfg.Server.Addr(), version.Version)
		return srv.Run(ctx, 10*time.Second)
	},
}
