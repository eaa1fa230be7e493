package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/DjordjeVuckovic/ts-bench/internal/bench/classify"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/details"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/memory"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/metrics"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/spec"
)

type Runner struct {
	config Config
}

func New(cfg Config) *Runner {
	if cfg.Runs <= 0 {
		cfg.Runs = DefaultRuns
	}
	if cfg.TestFraction == 0 {
		cfg.TestFraction = DefaultTestFraction
	}
	return &Runner{config: cfg}
}

// RunAll benchmarks every configured metric on every dataset of the spec.
// Metrics whose distance is not implemented are logged and left out.
func (r *Runner) RunAll(ctx context.Context, bs *spec.BenchSpec, loader dataset.Loader) (*BenchmarkResult, error) {
	br := &BenchmarkResult{
		Results:  result.New(),
		Runtimes: make(map[string]map[string]RuntimeStats),
		Config:   r.config,
	}

	var runs []MetricRun
	for _, m := range r.config.MetricRuns(bs) {
		if _, err := classify.New(m.Distance, m.Args); err != nil {
			if errors.Is(err, classify.ErrUnknownMetric) {
				slog.Error("metric is not implemented", "metric", m.Name, "distance", m.Distance)
				br.Skipped = append(br.Skipped, m.Name)
				continue
			}
			return nil, fmt.Errorf("metric %q: %w", m.Name, err)
		}
		runs = append(runs, m)
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no runnable metrics")
	}

	for _, name := range bs.Datasets.Names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ds, err := loader.Load(name)
		if err != nil {
			return nil, fmt.Errorf("load dataset %q: %w", name, err)
		}
		slog.Info("loaded dataset", "dataset", name, "instances", ds.Len())

		dr, rec, runtimes, err := r.RunDataset(ctx, ds, runs)
		if err != nil {
			return nil, fmt.Errorf("dataset %q: %w", name, err)
		}
		br.Results.Set(name, dr)
		br.Details = append(br.Details, rec)
		br.Runtimes[name] = runtimes
	}

	return br, nil
}

// RunDataset splits a dataset and runs every metric on it.
func (r *Runner) RunDataset(ctx context.Context, ds *dataset.Dataset, runs []MetricRun) (*result.DatasetResult, details.Record, map[string]RuntimeStats, error) {
	train, test, err := dataset.Split(ds, r.config.TestFraction, r.config.Seed)
	if err != nil {
		return nil, details.Record{}, nil, err
	}

	rec := details.Describe(ds.Name, train, test)
	dr := result.NewDatasetResult()
	setProperties(&dr.Properties, rec)

	runtimes := make(map[string]RuntimeStats, len(runs))
	for _, m := range runs {
		slog.Info("running metric", "dataset", ds.Name, "metric", m.Name)
		scores, stats, err := r.runMetric(ctx, m, train, test)
		if err != nil {
			return nil, details.Record{}, nil, fmt.Errorf("metric %q: %w", m.Name, err)
		}
		dr.SetRecord(m.Name, scores)
		runtimes[m.Name] = stats
	}
	return dr, rec, runtimes, nil
}

func setProperties(p *result.Properties, rec details.Record) {
	p.Set("num_of_dimensions", rec.Dimensions)
	p.Set("num_of_instances", rec.Instances)
	p.Set("num_of_timestamps", rec.Timestamps)
	p.Set("num_of_classes", rec.Classes)
	p.Set("unique_lengths", rec.UniqueLengths)
	p.Set("missing_values_count", rec.MissingValues)
}

func (r *Runner) runMetric(ctx context.Context, m MetricRun, train, test *dataset.Dataset) (*result.ScoreRecord, RuntimeStats, error) {
	c, err := classify.New(m.Distance, m.Args)
	if err != nil {
		return nil, RuntimeStats{}, err
	}
	if err := c.Fit(train.Series, train.Labels); err != nil {
		return nil, RuntimeStats{}, err
	}

	for i := 0; i < r.config.WarmupRuns; i++ {
		if _, err := c.Predict(test.Series); err != nil {
			return nil, RuntimeStats{}, fmt.Errorf("warmup: %w", err)
		}
	}

	var pred []string
	var durations []time.Duration
	peak, err := memory.PeakUsage(ctx, func(ctx context.Context) error {
		for i := 0; i < r.config.Runs; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			p, err := c.Predict(test.Series)
			if err != nil {
				return err
			}
			durations = append(durations, time.Since(start))
			pred = p
		}
		return nil
	}, memory.Options{Interval: r.config.MemoryInterval, Sampler: r.config.Sampler})
	if err != nil {
		return nil, RuntimeStats{}, fmt.Errorf("predict: %w", err)
	}
	stats := ComputeRuntimeStats(durations)

	proba, err := c.PredictProba(test.Series)
	if err != nil {
		return nil, RuntimeStats{}, fmt.Errorf("predict proba: %w", err)
	}
	scores, err := metrics.ComputeAll(test.Labels, pred, proba, c.Classes())
	if err != nil {
		if !errors.Is(err, metrics.ErrUndefinedAUROC) {
			return nil, RuntimeStats{}, fmt.Errorf("score: %w", err)
		}
		slog.Warn("auroc undefined, recording 0", "dataset", test.Name, "metric", m.Name)
		scores.AUROC = 0
	}

	rec := result.NewScoreRecord()
	if m.Args != nil {
		rec.Arguments = maps.Clone(m.Args)
	}
	rec.Arguments["njobs"] = r.config.Jobs
	rec.Set(result.ScoreAccuracy, scores.Accuracy)
	rec.Set(result.ScoreRecall, scores.Recall)
	rec.Set(result.ScoreF1, scores.F1)
	rec.Set(result.ScoreAUROC, scores.AUROC)
	rec.Set(result.ScoreRuntime, stats.Seconds())
	rec.Set(result.ScoreMemoryFootprint, memory.ToMB(peak))

	slog.Info("scored metric",
		"dataset", test.Name,
		"metric", m.Name,
		"accuracy", scores.Accuracy,
		"recall", scores.Recall,
		"f1", scores.F1,
		"auroc", scores.AUROC,
		"runtime", stats.Seconds(),
		"memory", memory.FormatMB(peak),
	)
	return rec, stats, nil
}
