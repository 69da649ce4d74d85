package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/dagrapport/internal/pipeline"
	"github.com/ppiankov/dagrapport/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Generate reports for every form in a directory",
	Long: `Batch generates a report for each .yaml, .yml and .json form in a
directory, several at a time. Each report is written as JSON and Markdown
to the output directory, named after its form file.

Model calls share one rate limiter, so a large batch stays within the
provider's quota.

Example:
  dagrapport batch ./formulieren
  dagrapport batch ./formulieren --concurrency 2 --output-dir ./rapporten`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./dagrapport-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "always call the model")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	errOut := cmd.ErrOrStderr()

	cfg, err := currentConfig()
	if err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	p := pipeline.NewPipeline(cfg, logger)
	if !p.Enabled() {
		return fmt.Errorf("%w: set --provider and the matching API key", pipeline.ErrLLMDisabled)
	}

	if err := os.MkdirAll(outputDir, 0o700); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(contextOrBackground(cmd.Context()), batchTimeout)
	defer cancel()

	fmt.Fprintf(errOut, "\n")
	fmt.Fprintf(errOut, "  Input dir:    %s\n", dir)
	fmt.Fprintf(errOut, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(errOut, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(errOut, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(errOut, "\n")

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	results, err := processor.ProcessDir(ctx, dir)
	if err != nil {
		return fmt.Errorf("process dir: %w", err)
	}

	successCount := 0
	failureCount := 0
	renderer := p.Renderer()

	for _, result := range results {
		name := filepath.Base(result.Path)
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(errOut, "✗ %s: %v\n", name, result.Error)
			continue
		}

		base := filepath.Join(outputDir, strings.TrimSuffix(name, filepath.Ext(name)))
		if err := renderer.RenderJSON(result.Report, base+".json"); err != nil {
			failureCount++
			fmt.Fprintf(errOut, "✗ %s: %v\n", name, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, base+".md"); err != nil {
			failureCount++
			fmt.Fprintf(errOut, "✗ %s: %v\n", name, err)
			continue
		}

		successCount++
		fmt.Fprintf(errOut, "✓ %s (%s, %d signalen)\n", name, result.Report.Data.ChildName, result.Report.FlagCount())
	}

	fmt.Fprintf(errOut, "\n")
	fmt.Fprintf(errOut, "  Total:     %d forms\n", len(results))
	fmt.Fprintf(errOut, "  Success:   %d\n", successCount)
	fmt.Fprintf(errOut, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(errOut, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d forms failed", failureCount, len(results))
	}
	return nil
}
