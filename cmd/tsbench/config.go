package main

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/DjordjeVuckovic/ts-bench/internal/bench/spec"
	"github.com/DjordjeVuckovic/ts-bench/pkg/stringsutil"
)

type cliConfig struct {
	SpecPath     string
	DataDir      string
	Datasets     string
	Metrics      string
	Window       *float64
	Jobs         int
	Warmup       int
	Runs         int
	TestFraction float64
	Seed         uint64
	Output       string
	DetailsOut   string
	SummaryOut   string
	Exclude      string
	Mode         string
	DomainsPath  string
}

func parseFlags() cliConfig {
	cfg := cliConfig{}

	flag.StringVar(&cfg.SpecPath, "spec", "", "Path to benchmark spec YAML")
	flag.StringVar(&cfg.DataDir, "data", "data/UCRArchive_2018", "Dataset directory (quick mode)")
	flag.StringVar(&cfg.Datasets, "datasets", "", "Dataset names, comma-separated (quick mode)")
	flag.StringVar(&cfg.Metrics, "metrics", "dtw", "Distances to benchmark, comma-separated (quick mode)")
	flag.Func("window", "Warping window applied to metrics without one", func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		cfg.Window = &v
		return nil
	})
	flag.IntVar(&cfg.Jobs, "njobs", spec.DefaultJobs, "Recorded number of classifier jobs")
	flag.IntVar(&cfg.Warmup, "warmup", 0, "Number of warmup predictions before measurement")
	flag.IntVar(&cfg.Runs, "runs", 1, "Number of measured predictions (mean runtime recorded)")
	flag.Float64Var(&cfg.TestFraction, "test-fraction", spec.DefaultTestFraction, "Share of instances held out for testing")
	flag.Uint64Var(&cfg.Seed, "seed", spec.DefaultSeed, "Split seed")
	flag.StringVar(&cfg.Output, "output", "", "Result JSON path (bench mode) or details JSON path (details mode)")
	flag.StringVar(&cfg.DetailsOut, "details-output", "", "Also write the dataset details of a bench run")
	flag.StringVar(&cfg.SummaryOut, "summary", "", "Write the console summary as JSON")
	flag.StringVar(&cfg.Exclude, "exclude", "", "Scores left out of the ranking, comma-separated")
	flag.StringVar(&cfg.Mode, "mode", "bench", "Run mode: bench or details")
	flag.StringVar(&cfg.DomainsPath, "domains", "", "YAML or JSON file mapping dataset names to their domain")

	flag.Parse()
	return cfg
}

// quickSpec builds a spec from the flags: every listed distance becomes a
// metric of the same name.
func (c cliConfig) quickSpec() (*spec.BenchSpec, error) {
	names := stringsutil.SplitList(c.Datasets)
	if len(names) == 0 {
		return nil, fmt.Errorf("quick mode requires -datasets")
	}
	metrics := make(map[string]spec.MetricConfig)
	for _, m := range stringsutil.SplitList(c.Metrics) {
		metrics[m] = spec.MetricConfig{Distance: m}
	}

	bs := &spec.BenchSpec{
		Datasets: spec.DatasetsConfig{Dir: c.DataDir, Names: names},
		Metrics:  metrics,
		Window:   c.Window,
		Jobs:     c.Jobs,
		Runs:     spec.RunsConfig{Warmup: c.Warmup, Iterations: c.Runs},
		Split:    spec.SplitConfig{TestFraction: c.TestFraction, Seed: c.Seed},
		Output:   c.Output,
	}
	if err := spec.Validate(bs); err != nil {
		return nil, err
	}
	return bs, nil
}


// applyDomains adds the domains file entries of the spec's datasets to the
// spec. File entries win over the ones in the spec.
func (c cliConfig) applyDomains(bs *spec.BenchSpec) error {
	if c.DomainsPath == "" {
		return nil
	}
	domains, err := spec.LoadDomains(c.DomainsPath)
	if err != nil {
		return err
	}
	if bs.Datasets.Domains == nil {
		bs.Datasets.Domains = make(map[string]string)
	}
	for _, name := range bs.Datasets.Names {
		if dom, ok := domains[name]; ok {
			bs.Datasets.Domains[name] = dom
		}
	}
	return nil
}
