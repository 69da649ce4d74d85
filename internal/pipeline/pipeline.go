package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ppiankov/dagrapport/internal/cache"
	"github.com/ppiankov/dagrapport/internal/extract"
	"github.com/ppiankov/dagrapport/internal/llm"
	"github.com/ppiankov/dagrapport/internal/metrics"
	"github.com/ppiankov/dagrapport/internal/model"
	"github.com/ppiankov/dagrapport/internal/report"
	"github.com/ppiankov/dagrapport/internal/validate"
	"github.com/ppiankov/dagrapport/internal/worker"
)

// ErrLLMDisabled is returned when a report is requested without a configured provider
var ErrLLMDisabled = errors.New("no LLM provider configured")

// Pipeline turns a finalized form into a report
type Pipeline struct {
	reporter *llm.Reporter // nil when generation is disabled
	renderer *report.Renderer
	config   *model.Config
	logger   *zap.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithMetrics records flagged words and, through the reporter, model calls
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// NewPipeline creates a pipeline from configuration.
// A provider that cannot be set up is logged and generation stays disabled.
func NewPipeline(cfg *model.Config, logger *zap.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := NewWithReporter(cfg, nil, logger, opts...)

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg))
	switch {
	case err != nil:
		p.logger.Warn("LLM provider unavailable, report generation disabled",
			zap.String("provider", cfg.LLM.Provider), zap.Error(err))
	case provider != nil:
		ropts := []llm.ReporterOption{
			llm.WithLimiter(worker.NewLimiter(cfg.LLM.RequestsPerMin, 1)),
			llm.WithMaxTokens(cfg.LLM.MaxTokens),
			llm.WithLogger(logger),
			llm.WithMetrics(p.metrics),
		}
		if cfg.Cache.Enabled {
			ropts = append(ropts, llm.WithCache(cache.New(cfg.Cache.TTL, cfg.Cache.Dir), cfg.Cache.TTL))
		}
		p.reporter = llm.NewReporter(provider, ropts...)
	}

	return p
}

// NewWithReporter creates a pipeline around an existing reporter (nil disables generation)
func NewWithReporter(cfg *model.Config, reporter *llm.Reporter, logger *zap.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pipeline{
		reporter: reporter,
		renderer: report.NewRenderer(cfg.Output.Width, cfg.Output.Raw),
		config:   cfg,
		logger:   logger.Named("pipeline"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Enabled reports whether report text can be generated
func (p *Pipeline) Enabled() bool {
	return p.reporter != nil
}

// Reporter returns the reporter, nil when generation is disabled
func (p *Pipeline) Reporter() *llm.Reporter {
	return p.reporter
}

// Renderer returns the configured renderer
func (p *Pipeline) Renderer() *report.Renderer {
	return p.renderer
}

// Check splits the timeline and validates every field without calling a model
func (p *Pipeline) Check(data model.ReportData) *model.Report {
	segments := model.TimelineSegments{
		Start: data.ActivitiesStart,
		Mid:   data.ActivitiesMid,
		End:   data.ActivitiesEnd,
	}
	if !data.HasTimeline() {
		segments = extract.ApplyTimeline(&data)
	}

	flags := validate.ValidateForm(data)
	p.metrics.ObserveFlags(flags)

	return &model.Report{
		ID:        uuid.NewString(),
		CreatedAt: p.now().UTC(),
		Data:      data,
		Timeline:  segments,
		Flags:     flags,
	}
}

// Run checks the form and generates the report text
func (p *Pipeline) Run(ctx context.Context, data model.ReportData) (*model.Report, error) {
	rep := p.Check(data)
	p.logger.Debug("form checked",
		zap.String("report_id", rep.ID),
		zap.Int("flagged_words", rep.FlagCount()))

	if p.reporter == nil {
		return rep, ErrLLMDisabled
	}

	c, err := p.reporter.GenerateReport(ctx, rep.Data)
	if err != nil {
		return rep, err
	}

	p.attach(rep, c)
	p.logger.Info("report generated",
		zap.String("report_id", rep.ID),
		zap.String("model", c.Model),
		zap.Bool("cached", c.Cached),
		zap.Int("sections", len(rep.Sections)))

	return rep, nil
}

// Refine rewrites a generated report according to feedback and re-parses it
func (p *Pipeline) Refine(ctx context.Context, original, feedback string, data model.ReportData) (*model.Report, error) {
	if p.reporter == nil {
		return nil, ErrLLMDisabled
	}

	c, err := p.reporter.RefineReport(ctx, original, feedback, data)
	if err != nil {
		return nil, err
	}

	rep := p.Check(data)
	p.attach(rep, c)
	return rep, nil
}

func (p *Pipeline) attach(rep *model.Report, c *llm.Completion) {
	rep.Text = c.Text
	rep.Sections = report.Parse(c.Text)
	rep.LLM = &model.LLMInfo{
		Provider:   p.reporter.Provider().Name(),
		Model:      c.Model,
		TokensUsed: c.TokensUsed,
		Cached:     c.Cached,
	}
	if c.Text == llm.EmptyReportText {
		rep.LLM.Warnings = append(rep.LLM.Warnings, "model returned no text")
	}
}

// RenderReport writes the report to the requested files and prints it to w
func (p *Pipeline) RenderReport(w io.Writer, rep *model.Report, jsonPath, mdPath string) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(rep, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		p.logger.Debug("wrote JSON", zap.String("path", jsonPath))
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(rep, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		p.logger.Debug("wrote Markdown", zap.String("path", mdPath))
	}

	if err := p.renderer.RenderTerminal(w, rep); err != nil {
		return fmt.Errorf("render terminal: %w", err)
	}
	p.renderer.RenderFlags(w, rep.Flags)
	p.renderer.RenderSummary(w, rep)

	return nil
}
