// Package stats loads a platform's tables, extracts organization signals
// and classifies them into a per-platform activity breakdown.
package stats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"dao-activity-lab/internal/classify"
	"dao-activity-lab/internal/domain"
	"dao-activity-lab/internal/extract"
	"dao-activity-lab/internal/observability"
	"dao-activity-lab/internal/storage"
)

// Aggregator computes classification results from a record source.
type Aggregator struct {
	source     storage.RecordSource
	thresholds map[domain.Platform]classify.Thresholds
	now        func() time.Time // Injectable clock for deterministic output
	logger     *log.Logger
	metrics    *observability.Metrics
	workers    int
}

// NewAggregator creates an aggregator reading from source.
func NewAggregator(source storage.RecordSource) *Aggregator {
	return &Aggregator{
		source:  source,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  log.New(io.Discard, "", 0),
		metrics: observability.DefaultMetrics,
		workers: 1,
	}
}

// WithClock sets the reference instant used for age and recency.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// WithThresholds overrides the default thresholds for the given platforms.
func (a *Aggregator) WithThresholds(t map[domain.Platform]classify.Thresholds) *Aggregator {
	a.thresholds = t
	return a
}

// WithLogger sets the run logger.
func (a *Aggregator) WithLogger(l *log.Logger) *Aggregator {
	a.logger = l
	return a
}

// WithMetrics sets the metrics sink.
func (a *Aggregator) WithMetrics(m *observability.Metrics) *Aggregator {
	a.metrics = m
	return a
}

// WithWorkers bounds concurrent table loads and classification chunks.
func (a *Aggregator) WithWorkers(n int) *Aggregator {
	if n < 1 {
		n = 1
	}
	a.workers = n
	return a
}

// PlatformStats is one platform's outcome in GetAllStats.
type PlatformStats struct {
	Platform domain.Platform
	Result   *domain.ClassificationResult
	Err      error
}

// GetStats analyzes one platform. An unknown name returns
// *domain.UnsupportedPlatformError; every later failure is wrapped in
// *domain.PlatformAnalysisError.
func (a *Aggregator) GetStats(ctx context.Context, platformName string) (*domain.ClassificationResult, error) {
	p, err := domain.ParsePlatform(platformName)
	if err != nil {
		return nil, err
	}
	return a.analyze(ctx, p)
}

// GetAllStats analyzes every supported platform independently. A failing
// platform does not stop the others.
func (a *Aggregator) GetAllStats(ctx context.Context) []PlatformStats {
	out := make([]PlatformStats, 0, len(domain.Platforms))
	for _, p := range domain.Platforms {
		result, err := a.analyze(ctx, p)
		out = append(out, PlatformStats{Platform: p, Result: result, Err: err})
	}
	return out
}

func (a *Aggregator) analyze(ctx context.Context, p domain.Platform) (*domain.ClassificationResult, error) {
	runID := uuid.NewString()
	started := time.Now()
	a.logger.Printf("run %s: analyzing %s", runID, p)

	result, err := a.run(ctx, p)
	elapsed := time.Since(started).Seconds()
	if err != nil {
		a.metrics.RecordAnalysis(string(p), "error", elapsed)
		a.logger.Printf("run %s: %s failed: %v", runID, p, err)
		return nil, &domain.PlatformAnalysisError{Platform: p, Err: err}
	}

	a.metrics.RecordAnalysis(string(p), "ok", elapsed)
	counts := make(map[string]int, len(domain.Categories))
	for _, c := range domain.Categories {
		counts[string(c)] = result.CategoryCount(c)
	}
	a.metrics.SetCategoryCounts(string(p), counts, time.Now().Unix())
	a.logger.Printf("run %s: %s done: %d organizations, %d active (%.1fs)",
		runID, p, result.TotalOrganizations, result.ActiveOrganizations, elapsed)
	return result, nil
}

func (a *Aggregator) run(ctx context.Context, p domain.Platform) (*domain.ClassificationResult, error) {
	spec, ok := extract.Lookup(p)
	if !ok {
		return nil, &domain.UnsupportedPlatformError{Name: string(p)}
	}

	tables, err := a.load(ctx, spec)
	if err != nil {
		return nil, err
	}

	signals, err := spec.Extract(tables)
	if err != nil {
		return nil, err
	}

	t := spec.Thresholds
	if override, ok := a.thresholds[p]; ok {
		t = override
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	result := classify.ClassifyParallel(signals, a.now(), t, a.workers)
	result.Platform = p
	return &result, nil
}

// load reads the platform's categories concurrently. Missing mandatory
// categories fail with MissingInputError; missing optional ones are skipped.
// When several loads fail, the error of the first category in spec order
// wins, whatever order the loads finish in.
func (a *Aggregator) load(ctx context.Context, spec extract.Spec) (map[string]*domain.Table, error) {
	categories := spec.Categories()
	mandatory := make(map[string]bool, len(spec.Mandatory))
	for _, c := range spec.Mandatory {
		mandatory[c] = true
	}

	var (
		mu     sync.Mutex
		tables = make(map[string]*domain.Table)
		errs   = make([]error, len(categories))
	)

	// loads do not cancel each other; errs keeps spec order
	var g errgroup.Group
	g.SetLimit(a.workers)
	for i, category := range categories {
		g.Go(func() error {
			t, err := a.source.Load(ctx, spec.Platform, category)
			if err != nil {
				errs[i] = a.loadError(spec.Platform, category, mandatory[category], err)
				return nil
			}
			a.metrics.RecordTableLoaded(string(spec.Platform), category, len(t.Rows))

			mu.Lock()
			tables[category] = t
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return tables, nil
}

func (a *Aggregator) loadError(p domain.Platform, category string, mandatory bool, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		if !mandatory {
			a.logger.Printf("%s: optional %s not found, skipping", p, category)
			return nil
		}
		a.metrics.RecordLoadError(string(p), category, "missing")
		return &domain.MissingInputError{Platform: p, Category: category}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	a.metrics.RecordLoadError(string(p), category, "error")
	if mandatory {
		return &domain.MissingInputError{Platform: p, Category: category, Err: err}
	}
	return fmt.Errorf("load %s: %w", category, err)
}
