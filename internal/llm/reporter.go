package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/dagrapport/internal/cache"
	"github.com/ppiankov/dagrapport/internal/metrics"
	"github.com/ppiankov/dagrapport/internal/model"
	"github.com/ppiankov/dagrapport/internal/worker"
)

// User-facing failures of the two report calls
var (
	ErrGenerate = errors.New("Fout bij het genereren van het rapport via AI.")
	ErrRefine   = errors.New("Fout bij het bijsturen van het rapport.")
)

// EmptyReportText replaces an empty model answer on first generation
const EmptyReportText = "Er kon geen rapport worden gegenereerd."

// RawTemperature is used for free prompts that carry no report instruction
const RawTemperature float32 = 1.0

// Completion is a model answer with its bookkeeping
type Completion struct {
	Text       string `json:"text"`
	Model      string `json:"model"`
	TokensUsed int    `json:"tokens_used"`
	Cached     bool   `json:"-"`
}

// Reporter turns form data into report text through a Provider.
// Calls are rate limited per provider and identical requests are served from cache.
type Reporter struct {
	provider  Provider
	limiter   *worker.Limiter
	cache     cache.Cache
	cacheTTL  time.Duration
	maxTokens int
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// ReporterOption configures a Reporter
type ReporterOption func(*Reporter)

// WithLimiter rate limits provider calls
func WithLimiter(l *worker.Limiter) ReporterOption {
	return func(r *Reporter) { r.limiter = l }
}

// WithCache stores completions for ttl
func WithCache(c cache.Cache, ttl time.Duration) ReporterOption {
	return func(r *Reporter) {
		r.cache = c
		r.cacheTTL = ttl
	}
}

// WithMaxTokens caps the response length
func WithMaxTokens(n int) ReporterOption {
	return func(r *Reporter) { r.maxTokens = n }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) ReporterOption {
	return func(r *Reporter) { r.logger = l }
}

// WithMetrics records model calls and cache lookups
func WithMetrics(m *metrics.Metrics) ReporterOption {
	return func(r *Reporter) { r.metrics = m }
}

// NewReporter creates a reporter for provider
func NewReporter(provider Provider, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		provider: provider,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.Named("reporter")
	return r
}

// Provider returns the underlying provider
func (r *Reporter) Provider() Provider {
	return r.provider
}

// Generate writes the first report for data
func (r *Reporter) Generate(ctx context.Context, data model.ReportData) (string, error) {
	c, err := r.GenerateReport(ctx, data)
	if err != nil {
		return "", err
	}
	return c.Text, nil
}

// GenerateReport is Generate with model and token details
func (r *Reporter) GenerateReport(ctx context.Context, data model.ReportData) (*Completion, error) {
	req := GenerateRequest{
		System:      BuildSystemInstruction(data),
		Prompt:      BuildGeneratePrompt(data),
		Temperature: GenerateTemperature,
		MaxTokens:   r.maxTokens,
	}

	c, err := r.complete(ctx, req)
	if err != nil {
		r.logger.Error("report generation failed", zap.String("provider", r.provider.Name()), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrGenerate, err)
	}
	if c.Text == "" {
		c.Text = EmptyReportText
	}
	return c, nil
}

// Refine rewrites original according to feedback.
// An empty model answer keeps the original report.
func (r *Reporter) Refine(ctx context.Context, original, feedback string, data model.ReportData) (string, error) {
	c, err := r.RefineReport(ctx, original, feedback, data)
	if err != nil {
		return "", err
	}
	return c.Text, nil
}

// RefineReport is Refine with model and token details
func (r *Reporter) RefineReport(ctx context.Context, original, feedback string, data model.ReportData) (*Completion, error) {
	req := GenerateRequest{
		System:      BuildRefineInstruction(original, feedback),
		Prompt:      BuildRefinePrompt(data),
		Temperature: RefineTemperature,
		MaxTokens:   r.maxTokens,
	}

	c, err := r.complete(ctx, req)
	if err != nil {
		r.logger.Error("report refinement failed", zap.String("provider", r.provider.Name()), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrRefine, err)
	}
	if c.Text == "" {
		c.Text = original
	}
	return c, nil
}

// Complete sends a free prompt without the report instruction
func (r *Reporter) Complete(ctx context.Context, prompt string) (*Completion, error) {
	return r.complete(ctx, GenerateRequest{
		Prompt:      prompt,
		Temperature: RawTemperature,
		MaxTokens:   r.maxTokens,
	})
}

func (r *Reporter) complete(ctx context.Context, req GenerateRequest) (*Completion, error) {
	name := r.provider.Name()
	key := r.cacheKey(req)

	if r.cache != nil {
		if c, ok := r.cached(key); ok {
			r.metrics.ObserveCache(true)
			r.logger.Debug("cache hit", zap.String("provider", name))
			return c, nil
		}
		r.metrics.ObserveCache(false)
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx, name); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	start := time.Now()
	resp, err := r.provider.Generate(ctx, req)
	if err != nil {
		r.metrics.ObserveCompletion(name, metrics.OutcomeError, 0, time.Since(start))
		return nil, err
	}
	outcome := metrics.OutcomeOK
	if resp.Text == "" {
		outcome = metrics.OutcomeEmpty
	}
	r.metrics.ObserveCompletion(name, outcome, resp.TokensUsed, time.Since(start))
	r.logger.Debug("completion",
		zap.String("provider", name),
		zap.String("model", resp.Model),
		zap.Int("tokens", resp.TokensUsed),
		zap.Duration("took", time.Since(start)))

	c := &Completion{
		Text:       resp.Text,
		Model:      resp.Model,
		TokensUsed: resp.TokensUsed,
	}

	// Empty answers are not cached so a retry can reach the model again
	if r.cache != nil && c.Text != "" {
		if raw, err := json.Marshal(c); err == nil {
			if err := r.cache.Set(key, raw, r.cacheTTL); err != nil {
				r.logger.Warn("cache write failed", zap.Error(err))
			}
		}
	}

	return c, nil
}

// cacheKey identifies a request by everything that changes the answer,
// including the model and endpoint the provider resolves to
func (r *Reporter) cacheKey(req GenerateRequest) string {
	modelName, endpoint := req.Model, ""
	if t, ok := r.provider.(Target); ok {
		if modelName == "" {
			modelName = t.Model()
		}
		endpoint = t.Endpoint()
	}
	return cache.CacheKey(r.provider.Name(), endpoint, modelName, req.System, req.Prompt,
		strconv.FormatFloat(float64(req.Temperature), 'f', -1, 32), strconv.Itoa(req.MaxTokens))
}

func (r *Reporter) cached(key string) (*Completion, bool) {
	raw, ok := r.cache.Get(key)
	if !ok {
		return nil, false
	}
	var c Completion
	if err := json.Unmarshal(raw, &c); err != nil {
		r.logger.Warn("dropping unreadable cache entry", zap.Error(err))
		_ = r.cache.Delete(key)
		return nil, false
	}
	c.Cached = true
	return &c, true
}
