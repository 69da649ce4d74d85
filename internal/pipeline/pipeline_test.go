package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/dagrapport/internal/llm"
	"github.com/ppiankov/dagrapport/internal/model"
)

type mockProvider struct {
	text  string
	err   error
	calls int
}

func (m *mockProvider) Name() string                         { return "mock" }
func (m *mockProvider) IsAvailable(ctx context.Context) bool { return true }

func (m *mockProvider) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.text, Model: "mock-1", TokensUsed: 12}, nil
}

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Output.Raw = true
	return cfg
}

func sampleForm() model.ReportData {
	return model.ReportData{
		ChildName:          "Sam",
		BegeleiderInitials: "JK",
		ActivitiesGeneral:  "We liepen naar het bos. Daarna was Sam druk. Tot slot aten we.",
		NeedsSignalsIndruk: "Sam leek moe",
		NeedsSignalsCamera: "Sam geeuwde",
		NeedsWhat:          "Rust",
		NeedsAction:        "Ik bood een pauze aan.",
		Goals:              []model.GoalEntry{{Title: "Samen spelen", Content: "Sam gaf de bal door."}},
	}
}

func newTestPipeline(p llm.Provider) *Pipeline {
	var reporter *llm.Reporter
	if p != nil {
		reporter = llm.NewReporter(p)
	}
	pl := NewWithReporter(testConfig(), reporter, nil)
	pl.now = func() time.Time { return time.Date(2026, 5, 1, 16, 0, 0, 0, time.UTC) }
	return pl
}

func TestPipeline_Run(t *testing.T) {
	mock := &mockProvider{text: "**ALGEMEEN**\nSam liep naar het bos.\n\n**DOELEN**"}
	p := newTestPipeline(mock)

	rep, err := p.Run(context.Background(), sampleForm())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rep.ID == "" {
		t.Error("Expected report ID")
	}
	if !rep.CreatedAt.Equal(time.Date(2026, 5, 1, 16, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected created time %v", rep.CreatedAt)
	}
	if rep.Timeline.Start != "We liepen naar het bos." || rep.Timeline.End != "aten we." {
		t.Errorf("Unexpected timeline: %+v", rep.Timeline)
	}
	if rep.Data.ActivitiesMid != "was Sam druk." {
		t.Errorf("Expected split written back to data, got %q", rep.Data.ActivitiesMid)
	}
	if rep.FlagCount() != 1 {
		t.Errorf("Expected 1 flagged word (druk), got %d: %+v", rep.FlagCount(), rep.Flags)
	}
	if len(rep.Sections) != 2 || rep.Sections[0].Heading != "ALGEMEEN" {
		t.Errorf("Unexpected sections: %+v", rep.Sections)
	}
	if rep.LLM == nil || rep.LLM.Provider != "mock" || rep.LLM.Model != "mock-1" || rep.LLM.TokensUsed != 12 {
		t.Errorf("Unexpected LLM info: %+v", rep.LLM)
	}
}

func TestPipeline_Run_KeepsExistingTimeline(t *testing.T) {
	p := newTestPipeline(&mockProvider{text: "ok"})

	data := sampleForm()
	data.ActivitiesStart = "Zelf ingevuld"

	rep, err := p.Run(context.Background(), data)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rep.Timeline.Start != "Zelf ingevuld" || rep.Timeline.Mid != "" {
		t.Errorf("Expected existing split to be kept, got %+v", rep.Timeline)
	}
}

func TestPipeline_Run_Disabled(t *testing.T) {
	p := newTestPipeline(nil)

	rep, err := p.Run(context.Background(), sampleForm())
	if !errors.Is(err, ErrLLMDisabled) {
		t.Fatalf("Expected ErrLLMDisabled, got %v", err)
	}
	if rep == nil || len(rep.Flags) == 0 {
		t.Error("Expected checked report alongside the error")
	}
	if p.Enabled() {
		t.Error("Expected pipeline to be disabled")
	}
}

func TestPipeline_Run_ProviderError(t *testing.T) {
	p := newTestPipeline(&mockProvider{err: errors.New("503")})

	_, err := p.Run(context.Background(), sampleForm())
	if !errors.Is(err, llm.ErrGenerate) {
		t.Errorf("Expected ErrGenerate, got %v", err)
	}
}

func TestPipeline_Run_EmptyText(t *testing.T) {
	p := newTestPipeline(&mockProvider{text: ""})

	rep, err := p.Run(context.Background(), sampleForm())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rep.Text != llm.EmptyReportText {
		t.Errorf("Expected fallback text, got %q", rep.Text)
	}
	if len(rep.LLM.Warnings) != 1 {
		t.Errorf("Expected a warning for the empty answer, got %v", rep.LLM.Warnings)
	}
}

func TestPipeline_Refine(t *testing.T) {
	mock := &mockProvider{text: "**ALGEMEEN**\nNieuwe versie."}
	p := newTestPipeline(mock)

	rep, err := p.Refine(context.Background(), "**ALGEMEEN**\nOud.", "Noem de wandeling", sampleForm())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rep.Text != "**ALGEMEEN**\nNieuwe versie." {
		t.Errorf("Unexpected text: %q", rep.Text)
	}
	if len(rep.Sections) != 1 {
		t.Errorf("Expected refined text to be parsed, got %+v", rep.Sections)
	}

	if _, err := newTestPipeline(nil).Refine(context.Background(), "a", "b", sampleForm()); !errors.Is(err, ErrLLMDisabled) {
		t.Errorf("Expected ErrLLMDisabled, got %v", err)
	}
}

func TestPipeline_RenderReport(t *testing.T) {
	p := newTestPipeline(&mockProvider{text: "**ALGEMEEN**\nSam liep naar het bos."})
	rep, err := p.Run(context.Background(), sampleForm())
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "r.json")
	mdPath := filepath.Join(dir, "r.md")

	var buf bytes.Buffer
	if err := p.RenderReport(&buf, rep, jsonPath, mdPath); err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}

	for _, path := range []string{jsonPath, mdPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected %s to exist: %v", path, err)
		}
	}
	if !strings.Contains(buf.String(), "Sam liep naar het bos.") {
		t.Errorf("Expected report text on terminal, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "druk") {
		t.Errorf("Expected flagged word in terminal output, got %q", buf.String())
	}
}

func TestNewPipeline_ProviderSetupFails(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	cfg := testConfig()
	cfg.LLM.APIKey = ""

	if p := NewPipeline(cfg, nil); p.Enabled() {
		t.Error("Expected generation to be disabled without an API key")
	}

	cfg.LLM.Provider = ""
	if p := NewPipeline(cfg, nil); p.Enabled() {
		t.Error("Expected generation to be disabled without a provider")
	}
}

func TestNewPipeline_Enabled(t *testing.T) {
	cfg := testConfig()
	cfg.LLM.Provider = "ollama"
	cfg.LLM.Model = "llama3.1"

	if p := NewPipeline(cfg, nil); !p.Enabled() {
		t.Error("Expected generation to be enabled for ollama")
	}
}
