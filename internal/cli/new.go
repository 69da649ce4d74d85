package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/dagrapport/internal/model"
	"github.com/ppiankov/dagrapport/internal/pipeline"
	"github.com/ppiankov/dagrapport/internal/wizard"
)

var (
	newOut      string
	newGenerate bool
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Fill in a form step by step",
	Long: `New asks the wizard questions one at a time, warns about camera language
while you type and writes the finished form as YAML.

Questions go to stderr so the form can be piped.

Example:
  dagrapport new --out sam.yaml
  dagrapport new --generate --md sam.md`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().StringVarP(&newOut, "out", "o", "", "write the form to this path instead of stdout")
	newCmd.Flags().BoolVar(&newGenerate, "generate", false, "generate the report right after the form is complete")
	newCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path when generating (optional)")
	newCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path when generating (optional)")
	newCmd.Flags().DurationVar(&genTimeout, "timeout", genTimeoutDefault, "overall timeout when generating")
}

func runNew(cmd *cobra.Command, _ []string) error {
	data, err := wizard.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr()).Run()
	if err != nil {
		return fmt.Errorf("wizard stopped: %w", err)
	}

	if newOut != "" {
		if err := writeForm(newOut, data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Formulier opgeslagen in %s\n", newOut)
	} else if !newGenerate {
		return encodeForm(cmd.OutOrStdout(), data)
	}

	if !newGenerate {
		return nil
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

	rep, err := p.Run(ctx, data)
	if err != nil {
		return err
	}
	return p.RenderReport(cmd.OutOrStdout(), rep, outJSON, outMD)
}

// writeForm stores the form privately; it holds a child's name
func writeForm(path string, data model.ReportData) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if err := encodeForm(f, data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func encodeForm(w io.Writer, data model.ReportData) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode form: %w", err)
	}
	return enc.Close()
}
