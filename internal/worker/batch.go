package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/dagrapport/internal/model"
)

// Generator produces a report for one form
type Generator interface {
	Run(ctx context.Context, data model.ReportData) (*model.Report, error)
}

// FormFile is a form loaded from disk
type FormFile struct {
	Path string
	Data model.ReportData
}

// GenerateJob generates the report for one form file
type GenerateJob struct {
	Form      FormFile
	Generator Generator
}

// Execute executes the generate job
func (j *GenerateJob) Execute(ctx context.Context) Result {
	report, err := j.Generator.Run(ctx, j.Form.Data)
	return &GenerateResult{
		Path:   j.Form.Path,
		Report: report,
		Error:  err,
	}
}

// GenerateResult represents the result of a generate job
type GenerateResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the generate result
func (r *GenerateResult) GetError() error {
	return r.Error
}

// BatchProcessor generates reports for many forms concurrently
type BatchProcessor struct {
	generator   Generator
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(generator Generator, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		generator:   generator,
		concurrency: concurrency,
	}
}

// ProcessForms runs every form and returns results ordered by path
func (b *BatchProcessor) ProcessForms(ctx context.Context, forms []FormFile) []*GenerateResult {
	if len(forms) == 0 {
		return []*GenerateResult{}
	}

	jobs := make([]Job, len(forms))
	for i, f := range forms {
		jobs[i] = &GenerateJob{Form: f, Generator: b.generator}
	}

	results := NewPool(ctx, b.concurrency).Run(jobs)

	out := make([]*GenerateResult, 0, len(forms))
	done := make(map[string]bool, len(results))
	for _, r := range results {
		gr := r.(*GenerateResult)
		done[gr.Path] = true
		out = append(out, gr)
	}

	// Forms never picked up before cancellation still get a result
	for _, f := range forms {
		if done[f.Path] {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		out = append(out, &GenerateResult{Path: f.Path, Error: err})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })

	return out
}

// ProcessDir loads every form in dir and processes them
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*GenerateResult, error) {
	forms, err := ReadFormsFromDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read forms: %w", err)
	}
	return b.ProcessForms(ctx, forms), nil
}

// ReadFormsFromDir loads all .yaml, .yml and .json forms in dir, in name order
func ReadFormsFromDir(dir string) ([]FormFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var forms []FormFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}

		path := filepath.Join(dir, e.Name())
		data, err := model.LoadReportData(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		forms = append(forms, FormFile{Path: path, Data: data})
	}

	return forms, nil
}
