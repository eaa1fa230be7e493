package runner

import (
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/details"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
)

type BenchmarkResult struct {
	Results *result.ResultSet
	// Details describes every benchmarked dataset in run order.
	Details []details.Record
	// Runtimes holds the prediction time stats per dataset and metric.
	Runtimes map[string]map[string]RuntimeStats
	// Skipped lists metrics whose distance is not implemented.
	Skipped []string
	Config  Config
}

// MetricRuntime aggregates the prediction times of a metric over all datasets.
func (br *BenchmarkResult) MetricRuntime(metric string) RuntimeStats {
	var stats []RuntimeStats
	for _, byMetric := range br.Runtimes {
		if s, ok := byMetric[metric]; ok {
			stats = append(stats, s)
		}
	}
	return AggregateRuntimeStats(stats)
}
