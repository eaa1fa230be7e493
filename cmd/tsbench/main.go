package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/DjordjeVuckovic/ts-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/details"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/report"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/spec"
	"github.com/DjordjeVuckovic/ts-bench/pkg/stringsutil"
)

func main() {
	cfg := parseFlags()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bs, err := loadSpec(cfg)
	if err != nil {
		slog.Error("Failed to load spec", "error", err)
		os.Exit(1)
	}
	loader := dataset.NewUCRLoader(bs.Datasets.Dir)

	switch cfg.Mode {
	case "bench":
		err = runBench(ctx, cfg, bs, loader)
	case "details":
		err = runDetails(ctx, cfg, bs, loader)
	default:
		err = fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	if err != nil {
		slog.Error("Run failed", "mode", cfg.Mode, "error", err)
		os.Exit(1)
	}
}

func loadSpec(cfg cliConfig) (*spec.BenchSpec, error) {
	var bs *spec.BenchSpec
	var err error
	if cfg.SpecPath == "" {
		bs, err = cfg.quickSpec()
	} else {
		bs, err = spec.LoadFromFile(cfg.SpecPath)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.applyDomains(bs); err != nil {
		return nil, err
	}
	if cfg.SpecPath == "" {
		return bs, nil
	}

	if cfg.Output != "" {
		bs.Output = cfg.Output
	}
	slog.Info("Loaded benchmark spec", "path", cfg.SpecPath, "datasets", len(bs.Datasets.Names), "metrics", len(bs.Order))
	return bs, nil
}

// archiveDetails numbers the records and tags them with the spec's domains.
func archiveDetails(records []details.Record, bs *spec.BenchSpec) *details.Details {
	d := details.Generate(records)
	d.SetDomains(bs.Datasets.Domains)
	return d
}

func runBench(ctx context.Context, cfg cliConfig, bs *spec.BenchSpec, loader dataset.Loader) error {
	r := runner.New(runner.ConfigFromSpec(bs))
	br, err := r.RunAll(ctx, bs, loader)
	if err != nil {
		return err
	}
	if len(br.Skipped) > 0 {
		slog.Warn("Metrics left out of the results", "metrics", br.Skipped)
	}

	if bs.Output != "" {
		if err := result.WriteFile(br.Results, bs.Output); err != nil {
			return err
		}
		slog.Info("Results written", "path", bs.Output)
	}
	if cfg.DetailsOut != "" {
		if err := details.WriteFile(archiveDetails(br.Details, bs), cfg.DetailsOut); err != nil {
			return err
		}
		slog.Info("Details written", "path", cfg.DetailsOut)
	}

	summary, err := report.Summarize(br.Results, bs.Output, stringsutil.SplitList(cfg.Exclude)...)
	if err != nil {
		return err
	}
	report.WriteTable(summary, os.Stdout)

	if cfg.SummaryOut != "" {
		if err := report.WriteJSON(summary, cfg.SummaryOut); err != nil {
			return err
		}
		slog.Info("Summary written", "path", cfg.SummaryOut)
	}
	return nil
}

// runDetails describes every dataset of the spec without classifying.
func runDetails(ctx context.Context, cfg cliConfig, bs *spec.BenchSpec, loader dataset.Loader) error {
	if cfg.Output == "" {
		return fmt.Errorf("details mode requires -output")
	}

	records := make([]details.Record, 0, len(bs.Datasets.Names))
	for _, name := range bs.Datasets.Names {
		if err := ctx.Err(); err != nil {
			return err
		}
		ds, err := loader.Load(name)
		if err != nil {
			return fmt.Errorf("load dataset %q: %w", name, err)
		}
		train, test, err := dataset.Split(ds, bs.Split.TestFraction, bs.Split.Seed)
		if err != nil {
			return fmt.Errorf("split dataset %q: %w", name, err)
		}
		records = append(records, details.Describe(name, train, test))
	}

	if err := details.WriteFile(archiveDetails(records, bs), cfg.Output); err != nil {
		return err
	}
	slog.Info("Details written", "path", cfg.Output, "datasets", len(records))
	return nil
}
