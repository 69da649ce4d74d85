package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/dagrapport/internal/metrics"
	"github.com/ppiankov/dagrapport/internal/pipeline"
	"github.com/ppiankov/dagrapport/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report API over HTTP",
	Long: `Serve exposes report generation and the form checks as a JSON API:

  POST /api/generate   {"prompt": "..."}            free prompt to the model
  POST /api/report     form data                    full report
  POST /api/refine     {original, feedback, data}   adjusted report text
  POST /api/validate   {text, exempt}               camera-language check
  POST /api/split      {text}                       start/middle/end split
  GET  /healthz
  GET  /metrics                                     Prometheus metrics (server.metrics)

Example:
  dagrapport serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := currentConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var popts []pipeline.Option
		var sopts []server.Option
		if cfg.Server.Metrics {
			m := metrics.New()
			popts = append(popts, pipeline.WithMetrics(m))
			sopts = append(sopts, server.WithMetrics(m))
		}

		srv := server.New(pipeline.NewPipeline(cfg, logger, popts...), cfg.Server, logger, sopts...)
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

