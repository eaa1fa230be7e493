package runner

import (
	"maps"
	"time"

	"github.com/DjordjeVuckovic/ts-bench/internal/bench/memory"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/spec"
)

const (
	DefaultTestFraction = spec.DefaultTestFraction
	DefaultSeed         = spec.DefaultSeed
	DefaultJobs         = spec.DefaultJobs
	DefaultWarmupRuns   = 0
	DefaultRuns         = 1
)

type Config struct {
	// Window is added as "window" argument to every metric that does not set
	// one itself. Nil leaves the arguments alone.
	Window       *float64
	Jobs         int
	TestFraction float64
	Seed         uint64
	WarmupRuns   int
	Runs         int

	MemoryInterval time.Duration
	// Sampler defaults to the RSS of the current process.
	Sampler memory.Sampler
}

func DefaultConfig() Config {
	return Config{
		Jobs:           DefaultJobs,
		TestFraction:   DefaultTestFraction,
		Seed:           DefaultSeed,
		WarmupRuns:     DefaultWarmupRuns,
		Runs:           DefaultRuns,
		MemoryInterval: memory.DefaultInterval,
	}
}

// ConfigFromSpec takes the run settings of a benchmark spec.
func ConfigFromSpec(bs *spec.BenchSpec) Config {
	cfg := DefaultConfig()
	cfg.Window = bs.Window
	cfg.Jobs = bs.Jobs
	cfg.TestFraction = bs.Split.TestFraction
	cfg.Seed = bs.Split.Seed
	cfg.WarmupRuns = bs.Runs.Warmup
	cfg.Runs = bs.Runs.Iterations
	return cfg
}

// MetricRun is one configured metric as it is executed and recorded.
type MetricRun struct {
	Name     string
	Distance string
	Args     map[string]any
}

// MetricRuns resolves the spec's metrics in order, applying the window.
func (c Config) MetricRuns(bs *spec.BenchSpec) []MetricRun {
	runs := make([]MetricRun, 0, len(bs.Order))
	for _, name := range bs.Order {
		m := bs.Metrics[name]
		args := maps.Clone(m.Args)
		if args == nil {
			args = make(map[string]any)
		}
		if _, ok := args["window"]; !ok && c.Window != nil {
			args["window"] = *c.Window
		}
		runs = append(runs, MetricRun{Name: name, Distance: m.Distance, Args: args})
	}
	return runs
}
