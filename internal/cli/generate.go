package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/dagrapport/internal/model"
	"github.com/ppiankov/dagrapport/internal/pipeline"
)

const genTimeoutDefault = 2 * time.Minute

var (
	outJSON    string
	outMD      string
	genTimeout time.Duration
	noCache    bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <form.yaml>",
	Short: "Generate a daily report from a form file",
	Long: `Generate reads a filled-in form (YAML or JSON), splits the day narrative,
checks every field for camera language and asks the configured model for
the report.

Example:
  dagrapport generate sam.yaml
  dagrapport generate sam.yaml --md sam.md --json sam.json
  dagrapport generate sam.yaml --provider ollama --model llama3.1:8b`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	generateCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	generateCmd.Flags().DurationVar(&genTimeout, "timeout", genTimeoutDefault, "overall timeout")
	generateCmd.Flags().BoolVar(&noCache, "no-cache", false, "always call the model, even for a form seen before")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	data, err := model.LoadReportData(args[0])
	if err != nil {
		return fmt.Errorf("load form: %w", err)
	}

	p, err := newPipeline()
	if err != nil {
		return err
	}
	if !p.Enabled() {
		return fmt.Errorf("%w: set --provider and the matching API key (see 'dagrapport config show')", pipeline.ErrLLMDisabled)
	}

	ctx, cancel := context.WithTimeout(contextOrBackground(cmd.Context()), genTimeout)
	defer cancel()

	logger.Debug("generating report", zap.String("form", args[0]))
	rep, err := p.Run(ctx, data)
	if err != nil {
		return err
	}

	if err := p.RenderReport(cmd.OutOrStdout(), rep, outJSON, outMD); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}

// newPipeline builds a pipeline from the merged configuration
func newPipeline() (*pipeline.Pipeline, error) {
	cfg, err := currentConfig()
	if err != nil {
		return nil, err
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	return pipeline.NewPipeline(cfg, logger), nil
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
