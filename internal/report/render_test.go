package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/dagrapport/internal/model"
)

func sampleReport() *model.Report {
	text := "**ALGEMEEN**\nSam speelde buiten.\n\n**INCIDENT**\nSam viel."
	return &model.Report{
		ID:        "r-1",
		CreatedAt: time.Date(2026, 3, 2, 15, 4, 0, 0, time.UTC),
		Data:      model.ReportData{ChildName: "Sam", BegeleiderInitials: "JK"},
		Flags: []model.FieldFlags{{
			Field: "activitiesGeneral",
			Results: []model.ValidationResult{{
				Category:     model.CategoryInterpretation,
				FlaggedWords: []string{"druk", "lastig"},
			}},
		}},
		Text:     text,
		Sections: Parse(text),
		LLM:      &model.LLMInfo{Provider: "gemini", Model: "gemini-3-flash-preview", TokensUsed: 120},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleReport())

	for _, want := range []string{
		"# Dagrapportage Sam",
		"_02-03-2026 15:04 · Begeleider JK_",
		"**ALGEMEEN**\nSam speelde buiten.",
		"## Camera-taal signalen",
		"- `activitiesGeneral` (interpretation): druk, lastig",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected markdown to contain %q, got:\n%s", want, md)
		}
	}
}

func TestRenderFiles(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(80, true)
	rep := sampleReport()

	jsonPath := filepath.Join(dir, "report.json")
	if err := r.RenderJSON(rep, jsonPath); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var back model.Report
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if back.ID != "r-1" || len(back.Sections) != 2 {
		t.Errorf("Unexpected decoded report: %+v", back)
	}

	info, err := os.Stat(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("Expected file mode 0600, got %v", info.Mode().Perm())
	}

	mdPath := filepath.Join(dir, "report.md")
	if err := r.RenderMarkdown(rep, mdPath); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}
	if _, err := os.Stat(mdPath); err != nil {
		t.Errorf("Expected markdown file, got %v", err)
	}

	if err := r.RenderJSON(rep, filepath.Join(dir, "missing", "x.json")); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestRenderTerminal_Raw(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(80, true).RenderTerminal(&buf, sampleReport()); err != nil {
		t.Fatalf("RenderTerminal failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "**ALGEMEEN**") {
		t.Errorf("Expected raw markdown, got %q", buf.String())
	}
}

func TestRenderTerminal_Styled(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(60, false).RenderTerminal(&buf, sampleReport()); err != nil {
		t.Fatalf("RenderTerminal failed: %v", err)
	}
	if !strings.Contains(buf.String(), "ALGEMEEN") {
		t.Errorf("Expected heading in rendered output, got %q", buf.String())
	}
}

func TestRenderTerminal_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(80, false).RenderTerminal(&buf, &model.Report{}); err != nil {
		t.Fatalf("RenderTerminal failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %q", buf.String())
	}
}

func TestRenderFlags(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(80, true).RenderFlags(&buf, sampleReport().Flags)

	out := buf.String()
	if !strings.Contains(out, "activitiesGeneral:") || !strings.Contains(out, "druk, lastig") {
		t.Errorf("Unexpected flags output: %q", out)
	}
	if !strings.Contains(out, "Let op") {
		t.Errorf("Expected category message, got %q", out)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(80, true).RenderSummary(&buf, sampleReport())

	out := buf.String()
	for _, want := range []string{
		"Dagrapportage Sam",
		"Model: gemini/gemini-3-flash-preview, 120 tokens",
		"Secties: 2",
		"Bevat een incident",
		"2 woord(en) buiten camera-taal",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected summary to contain %q, got:\n%s", want, out)
		}
	}
}
