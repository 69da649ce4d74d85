package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/dagrapport/internal/model"
	"github.com/ppiankov/dagrapport/internal/report"
	"github.com/ppiankov/dagrapport/internal/validate"
)

// ErrFlagged makes check exit non-zero when text is not in camera language
var ErrFlagged = errors.New("text contains words that are not camera language")

var errNoInput = errors.New("no input: pass text as argument or '-' to read stdin")

var (
	exempt    bool
	checkForm string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [text|-]",
	Short: "Check text or a form for camera language",
	Long: `Check flags interpretations, diagnoses and assumed intentions in text,
with the message, tip and example rewrites for each category.

Use --exempt for text from the "SIGNALEN – indruk" field, where the offered
signal words (moe, boos, overprikkeld, ...) are allowed.

Exits with an error when anything was flagged.

Example:
  dagrapport check "Sam was erg druk vandaag"
  echo "Hij wilde niet mee" | dagrapport check -
  dagrapport check --form sam.yaml`,
	Args: cobra.ArbitraryArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&exempt, "exempt", false, "allow the pre-approved signal words")
	checkCmd.Flags().StringVar(&checkForm, "form", "", "check every field of a form file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := currentConfig()
	if err != nil {
		return err
	}
	r := report.NewRenderer(cfg.Output.Width, cfg.Output.Raw)
	out := cmd.OutOrStdout()

	var flags []model.FieldFlags
	if checkForm != "" {
		data, err := model.LoadReportData(checkForm)
		if err != nil {
			return fmt.Errorf("load form: %w", err)
		}
		flags = validate.ValidateForm(data)
	} else {
		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		if results := validate.Validate(text, exempt); len(results) > 0 {
			flags = []model.FieldFlags{{Field: "tekst", Results: results}}
		}
	}

	if len(flags) == 0 {
		fmt.Fprintln(out, "✓ Geen camera-taal signalen")
		return nil
	}

	r.RenderFlags(out, flags)
	return ErrFlagged
}

// readInput joins the arguments, or reads stdin for "-"
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 {
		return "", errNoInput
	}
	if len(args) == 1 && args[0] == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(raw), nil
	}
	return strings.Join(args, " "), nil
}
