package runner

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/ts-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/memory"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapLoader map[string]*dataset.Dataset

func (l mapLoader) Load(name string) (*dataset.Dataset, error) {
	ds, ok := l[name]
	if !ok {
		return nil, fmt.Errorf("no dataset %q", name)
	}
	return ds, nil
}

// twoClusters has instances near 0 labelled "low" and near 10 labelled "high".
func twoClusters(name string) *dataset.Dataset {
	ds := &dataset.Dataset{Name: name}
	for i := 0; i < 6; i++ {
		off := float64(i) * 0.1
		ds.Series = append(ds.Series, dataset.Series{{off, off + 0.2, off}})
		ds.Labels = append(ds.Labels, "low")
		ds.Series = append(ds.Series, dataset.Series{{10 + off, 10.2 + off, 10 + off}})
		ds.Labels = append(ds.Labels, "high")
	}
	return ds
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MemoryInterval = time.Millisecond
	cfg.Sampler = memory.SamplerFunc(func(context.Context) (uint64, error) { return 2 * 1024 * 1024, nil })
	return cfg
}

func TestConfig_MetricRuns(t *testing.T) {
	window := 0.1
	bs := &spec.BenchSpec{
		Metrics: map[string]spec.MetricConfig{
			"dtw":  {Distance: "dtw"},
			"wdtw": {Distance: "wdtw", Args: map[string]any{"g": 0.05, "window": -1.0}},
		},
		Order: []string{"wdtw", "dtw"},
	}

	cfg := DefaultConfig()
	runs := cfg.MetricRuns(bs)
	require.Len(t, runs, 2)
	assert.Equal(t, "wdtw", runs[0].Name)
	assert.NotContains(t, runs[1].Args, "window")

	cfg.Window = &window
	runs = cfg.MetricRuns(bs)
	assert.Equal(t, 0.1, runs[1].Args["window"])
	assert.Equal(t, -1.0, runs[0].Args["window"], "explicit window wins")
	assert.NotContains(t, bs.Metrics["dtw"].Args, "window", "spec is not modified")
}

func TestRunAll(t *testing.T) {
	bs := &spec.BenchSpec{
		Datasets: spec.DatasetsConfig{Dir: "unused", Names: []string{"Clusters", "MoreClusters"}},
		Metrics: map[string]spec.MetricConfig{
			"dtw":   {Distance: "dtw"},
			"agdtw": {Distance: "agdtw", Args: map[string]any{"sigma": 1}},
			"euc":   {Distance: "euclidean"},
		},
		Order: []string{"dtw", "agdtw", "euc"},
		Jobs:  -1,
	}
	loader := mapLoader{"Clusters": twoClusters("Clusters"), "MoreClusters": twoClusters("MoreClusters")}

	br, err := New(testConfig()).RunAll(context.Background(), bs, loader)
	require.NoError(t, err)

	assert.Equal(t, []string{"agdtw"}, br.Skipped)
	assert.Equal(t, []string{"Clusters", "MoreClusters"}, br.Results.Datasets())
	assert.Equal(t, []string{"dtw", "euc"}, br.Results.Metrics())
	assert.Equal(t, []string{"accuracy", "recall", "f1-score", "auroc", "runtime", "memory_footprint"}, br.Results.Scores())
	require.NoError(t, br.Results.Validate())

	acc, err := br.Results.Score("Clusters", "dtw", result.ScoreAccuracy)
	require.NoError(t, err)
	assert.Equal(t, 1.0, acc)

	mem, err := br.Results.Score("Clusters", "euc", result.ScoreMemoryFootprint)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, mem, 1e-9)

	rec, err := br.Results.Record("MoreClusters", "dtw")
	require.NoError(t, err)
	assert.Equal(t, -1, rec.Arguments["njobs"])

	d, ok := br.Results.Dataset("Clusters")
	require.True(t, ok)
	classes, ok := d.Properties.Int("num_of_classes")
	assert.True(t, ok)
	assert.Equal(t, 2, classes)

	require.Len(t, br.Details, 2)
	assert.Equal(t, 9, br.Details[0].TrainInstances)
	assert.Equal(t, 3, br.Details[0].TestInstances)
	assert.Equal(t, 2, br.MetricRuntime("dtw").SampleCount)
}

func TestRunAll_Errors(t *testing.T) {
	t.Run("unknown dataset", func(t *testing.T) {
		bs := &spec.BenchSpec{
			Datasets: spec.DatasetsConfig{Names: []string{"missing"}},
			Metrics:  map[string]spec.MetricConfig{"dtw": {Distance: "dtw"}},
			Order:    []string{"dtw"},
		}
		_, err := New(testConfig()).RunAll(context.Background(), bs, mapLoader{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("nothing runnable", func(t *testing.T) {
		bs := &spec.BenchSpec{
			Datasets: spec.DatasetsConfig{Names: []string{"Clusters"}},
			Metrics:  map[string]spec.MetricConfig{"sdtw": {Distance: "sdtw"}},
			Order:    []string{"sdtw"},
		}
		_, err := New(testConfig()).RunAll(context.Background(), bs, mapLoader{"Clusters": twoClusters("Clusters")})
		assert.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		bs := &spec.BenchSpec{
			Datasets: spec.DatasetsConfig{Names: []string{"Clusters"}},
			Metrics:  map[string]spec.MetricConfig{"dtw": {Distance: "dtw"}},
			Order:    []string{"dtw"},
		}
		_, err := New(testConfig()).RunAll(ctx, bs, mapLoader{"Clusters": twoClusters("Clusters")})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
