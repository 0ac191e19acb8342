package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/reg-hunter/internal/pipeline"
	"github.com/DjordjeVuckovic/reg-hunter/pkg/apis"
	"github.com/panjf2000/ants/v2"
)

type Processor interface {
	Process(ctx context.Context, sub pipeline.Submission) (*pipeline.Result, error)
	Preview(ctx context.Context, sub pipeline.Submission) (*pipeline.Preview, error)
}

// Outcome is the result of one manifest entry.
type Outcome struct {
	Index   int
	Key     string
	Result  *pipeline.Result
	Preview *pipeline.Preview
	Err     error
}

type Report struct {
	Outcomes  []Outcome
	Succeeded int
	Failed    int
	Elapsed   time.Duration
}

func (r *Report) Err() error {
	if r.Failed == 0 {
		return nil
	}
	errs := make([]error, 0, r.Failed)
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("documents[%d] %s: %w", o.Index, o.Key, o.Err))
		}
	}
	return errors.Join(errs...)
}

type Runner struct {
	processor Processor
	workers   int
	preview   bool
}

type RunnerOption func(*Runner)

func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithPreview analyzes documents without storing them.
func WithPreview() RunnerOption {
	return func(r *Runner) {
		r.preview = true
	}
}

func NewRunner(processor Processor, opts ...RunnerOption) *Runner {
	r := &Runner{
		processor: processor,
		workers:   runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run submits every document through the processor on a bounded worker pool.
// Entry failures are collected in the report rather than aborting the run.
func (r *Runner) Run(ctx context.Context, docs []apis.ManifestDocument) (*Report, error) {
	start := time.Now()

	pool, err := ants.NewPool(r.workers, ants.WithPanicHandler(func(p any) {
		slog.Error("Ingest worker panic recovered", "panic", p)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	outcomes := make([]Outcome, len(docs))
	var wg sync.WaitGroup

	for i, d := range docs {
		sub := pipeline.Submission{Text: d.Text, URL: d.URL, Title: d.Title}
		outcomes[i] = Outcome{Index: i, Key: entryKey(d)}

		if err := ctx.Err(); err != nil {
			outcomes[i].Err = err
			continue
		}

		wg.Add(1)
		task := func() {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					outcomes[i].Err = fmt.Errorf("panic: %v", p)
				}
			}()
			r.handle(ctx, &outcomes[i], sub)
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			outcomes[i].Err = fmt.Errorf("failed to submit task: %w", err)
		}
	}

	wg.Wait()

	report := &Report{Outcomes: outcomes, Elapsed: time.Since(start)}
	for _, o := range outcomes {
		if o.Err != nil {
			report.Failed++
		} else {
			report.Succeeded++
		}
	}

	slog.Info("Ingest finished",
		"total", len(docs),
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"workers", r.workers,
		"preview", r.preview,
		"elapsed", report.Elapsed,
	)
	return report, nil
}

func (r *Runner) handle(ctx context.Context, out *Outcome, sub pipeline.Submission) {
	if r.preview {
		out.Preview, out.Err = r.processor.Preview(ctx, sub)
	} else {
		out.Result, out.Err = r.processor.Process(ctx, sub)
	}

	if out.Err != nil {
		slog.Error("Document failed", "index", out.Index, "key", out.Key, "error", out.Err)
		return
	}
	slog.Debug("Document ingested", "index", out.Index, "key", out.Key)
}

func entryKey(d apis.ManifestDocument) string {
	if d.URL != "" {
		return d.URL
	}
	if d.Title != "" {
		return d.Title
	}
	return "text"
}
