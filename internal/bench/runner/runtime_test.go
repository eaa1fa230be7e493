package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeRuntimeStats_Empty(t *testing.T) {
	stats := ComputeRuntimeStats(nil)
	assert.Zero(t, stats.Min)
	assert.Zero(t, stats.Max)
	assert.Zero(t, stats.Mean)
	assert.Zero(t, stats.Median)
	assert.Zero(t, stats.SampleCount)
	assert.True(t, stats.IsZero())
}

func TestComputeRuntimeStats_SingleValue(t *testing.T) {
	stats := ComputeRuntimeStats([]time.Duration{10 * time.Millisecond})

	assert.Equal(t, 10*time.Millisecond, stats.Min)
	assert.Equal(t, 10*time.Millisecond, stats.Max)
	assert.Equal(t, 10*time.Millisecond, stats.Mean)
	assert.Equal(t, 10*time.Millisecond, stats.Median)
	assert.Equal(t, 1, stats.SampleCount)
	assert.Zero(t, stats.Stddev)
	assert.InDelta(t, 0.01, stats.Seconds(), 1e-12)
}

func TestComputeRuntimeStats_Unsorted(t *testing.T) {
	durations := []time.Duration{
		50 * time.Millisecond,
		10 * time.Millisecond,
		30 * time.Millisecond,
		20 * time.Millisecond,
		40 * time.Millisecond,
	}
	stats := ComputeRuntimeStats(durations)

	assert.Equal(t, 10*time.Millisecond, stats.Min)
	assert.Equal(t, 50*time.Millisecond, stats.Max)
	assert.Equal(t, 30*time.Millisecond, stats.Mean)
	assert.Equal(t, 30*time.Millisecond, stats.Median)
	assert.Greater(t, stats.Stddev, time.Duration(0))
}

func TestComputeRuntimeStats_Percentiles(t *testing.T) {
	durations := make([]time.Duration, 100)
	for i := range durations {
		durations[i] = time.Duration(i+1) * time.Millisecond
	}
	stats := ComputeRuntimeStats(durations)

	assert.InDelta(t, float64(50*time.Millisecond), float64(stats.P50()), float64(time.Millisecond))
	assert.InDelta(t, float64(95*time.Millisecond), float64(stats.P95()), float64(time.Millisecond))
	assert.InDelta(t, float64(99*time.Millisecond), float64(stats.P99()), float64(time.Millisecond))
}

func TestAggregateRuntimeStats(t *testing.T) {
	s1 := ComputeRuntimeStats([]time.Duration{10 * time.Millisecond, 20 * time.Millisecond})
	s2 := ComputeRuntimeStats([]time.Duration{30 * time.Millisecond, 40 * time.Millisecond})

	agg := AggregateRuntimeStats([]RuntimeStats{s1, s2})
	assert.Equal(t, 10*time.Millisecond, agg.Min)
	assert.Equal(t, 40*time.Millisecond, agg.Max)
	assert.Equal(t, 4, agg.SampleCount)
	assert.Equal(t, 25*time.Millisecond, agg.Mean)

	assert.True(t, AggregateRuntimeStats(nil).IsZero())
}

func TestPercentile_EdgeCases(t *testing.T) {
	sorted := []time.Duration{10 * time.Millisecond}
	assert.Equal(t, 10*time.Millisecond, percentile(sorted, 0))
	assert.Equal(t, 10*time.Millisecond, percentile(sorted, 100))
	assert.Zero(t, percentile(nil, 50))
}
