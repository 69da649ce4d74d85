package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/dagrapport/internal/model"
	"github.com/ppiankov/dagrapport/internal/pipeline"
)

var (
	feedback string
	formPath string
)

// refineCmd represents the refine command
var refineCmd = &cobra.Command{
	Use:   "refine <report.md|report.json>",
	Short: "Adjust a generated report with feedback",
	Long: `Refine sends a generated report back to the model together with your
feedback, for example a literal quote to add or a passage to shorten.

A JSON report carries its own form data. For a Markdown report pass the
form with --form so the model knows the child's name.

Example:
  dagrapport refine sam.json --feedback "Voeg toe: Sam zei 'ik wil buiten spelen'"
  dagrapport refine sam.md --form sam.yaml --feedback "Maak het stuk over de lunch korter" --md sam-v2.md`,
	Args: cobra.ExactArgs(1),
	RunE: runRefine,
}

func init() {
	rootCmd.AddCommand(refineCmd)

	refineCmd.Flags().StringVarP(&feedback, "feedback", "f", "", "what to change (required)")
	refineCmd.Flags().StringVar(&formPath, "form", "", "form file the report was generated from")
	refineCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	refineCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	refineCmd.Flags().DurationVar(&genTimeout, "timeout", genTimeoutDefault, "overall timeout")
	_ = refineCmd.MarkFlagRequired("feedback")
}

func runRefine(cmd *cobra.Command, args []string) error {
	original, data, err := loadGeneratedReport(args[0])
	if err != nil {
		return err
	}
	if formPath != "" {
		if data, err = model.LoadReportData(formPath); err != nil {
			return fmt.Errorf("load form: %w", err)
		}
	}

	p, err := newPipeline()
	if err != nil {
		return err
	}
	if !p.Enabled() {
		return fmt.Errorf("%w: set --provider and the matching API key", pipeline.ErrLLMDisabled)
	}

	ctx, cancel := context.WithTimeout(contextOrBackground(cmd.Context()), genTimeout)
	defer cancel()

	rep, err := p.Refine(ctx, original, feedback, data)
	if err != nil {
		return err
	}

	if err := p.RenderReport(cmd.OutOrStdout(), rep, outJSON, outMD); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}

// loadGeneratedReport returns the report text and, for JSON reports, the form data
func loadGeneratedReport(path string) (string, model.ReportData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", model.ReportData{}, fmt.Errorf("read report: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var rep model.Report
		if err := json.Unmarshal(raw, &rep); err != nil {
			return "", model.ReportData{}, fmt.Errorf("parse report: %w", err)
		}
		return rep.Text, rep.Data, nil
	}

	return reportBody(string(raw)), model.NewReportData(), nil
}

// reportBody cuts the generated text out of a Markdown report file:
// from the first bold line up to the first level-two heading
func reportBody(md string) string {
	if i := strings.Index(md, "**"); i >= 0 {
		if nl := strings.LastIndex(md[:i], "\n"); nl >= 0 {
			md = md[nl+1:]
		} else {
			md = md[i:]
		}
	}
	if i := strings.Index(md, "\n## "); i >= 0 {
		md = md[:i]
	}
	return strings.TrimSpace(md)
}
