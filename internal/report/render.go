package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/ppiankov/dagrapport/internal/model"
	"github.com/ppiankov/dagrapport/internal/validate"
)

// Reports describe children; files are readable by the owner only
const filePerm = 0o600

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("70"))
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	wordStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	tipStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	incidentNote = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// Renderer writes reports to files and terminals
type Renderer struct {
	width int
	raw   bool
}

// NewRenderer creates a renderer wrapping terminal output at width.
// Raw output skips terminal styling.
func NewRenderer(width int, raw bool) *Renderer {
	if width <= 0 {
		width = 80
	}
	return &Renderer{width: width, raw: raw}
}

// RenderJSON writes the full report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), filePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes the report as a Markdown document
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	if err := os.WriteFile(path, []byte(Markdown(report)), filePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Markdown returns the report as a Markdown document
func Markdown(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Dagrapportage %s\n\n", report.Data.ChildName)
	if !report.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "_%s", report.CreatedAt.Format("02-01-2006 15:04"))
		if report.Data.BegeleiderInitials != "" {
			fmt.Fprintf(&b, " · Begeleider %s", report.Data.BegeleiderInitials)
		}
		b.WriteString("_\n\n")
	}

	if text := strings.TrimSpace(report.Text); text != "" {
		b.WriteString(text)
		b.WriteString("\n")
	}

	if len(report.Flags) > 0 {
		b.WriteString("\n## Camera-taal signalen\n\n")
		for _, f := range report.Flags {
			for _, res := range f.Results {
				rule, _ := validate.Lookup(res.Category)
				fmt.Fprintf(&b, "- `%s` (%s): %s %s\n", f.Field, res.Category, strings.Join(res.FlaggedWords, ", "), rule.Message)
			}
		}
	}

	if report.LLM != nil && len(report.LLM.Warnings) > 0 {
		b.WriteString("\n## Waarschuwingen\n\n")
		for _, w := range report.LLM.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return b.String()
}

// RenderTerminal prints the report text, styled unless raw output was asked for
func (r *Renderer) RenderTerminal(w io.Writer, report *model.Report) error {
	text := strings.TrimSpace(report.Text)
	if text == "" {
		return nil
	}

	if r.raw {
		_, err := fmt.Fprintln(w, text)
		return err
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(r.width),
	)
	if err != nil {
		return fmt.Errorf("create terminal renderer: %w", err)
	}

	out, err := tr.Render(text)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// RenderFlags prints camera-language warnings per field
func (r *Renderer) RenderFlags(w io.Writer, flags []model.FieldFlags) {
	for _, f := range flags {
		for _, res := range f.Results {
			rule, _ := validate.Lookup(res.Category)
			fmt.Fprintf(w, "%s %s\n", r.style(warnStyle, "⚠ "+f.Field+":"), rule.Message)
			fmt.Fprintf(w, "  %s\n", r.style(wordStyle, strings.Join(res.FlaggedWords, ", ")))
			if rule.Tip != "" {
				fmt.Fprintf(w, "  %s\n", r.style(tipStyle, rule.Tip))
			}
			for _, s := range rule.Suggestions {
				fmt.Fprintf(w, "    → %s\n", s)
			}
		}
	}
}

// RenderSummary prints a short overview of a generated report
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	fmt.Fprintln(w, r.style(headerStyle, "Dagrapportage "+report.Data.ChildName))

	if report.LLM != nil {
		source := report.LLM.Provider
		if report.LLM.Model != "" {
			source += "/" + report.LLM.Model
		}
		if report.LLM.Cached {
			source += " (cache)"
		}
		fmt.Fprintf(w, "Model: %s", source)
		if report.LLM.TokensUsed > 0 {
			fmt.Fprintf(w, ", %d tokens", report.LLM.TokensUsed)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Secties: %d\n", len(report.Sections))
	if HasIncident(report.Sections) {
		fmt.Fprintln(w, r.style(incidentNote, "Bevat een incident"))
	}

	if n := report.FlagCount(); n > 0 {
		fmt.Fprintln(w, r.style(warnStyle, fmt.Sprintf("%d woord(en) buiten camera-taal", n)))
	} else {
		fmt.Fprintln(w, "Geen camera-taal signalen")
	}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if r.raw {
		return text
	}
	return s.Render(text)
}
