package spec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("valid spec", func(t *testing.T) {
		yaml := `
datasets:
  dir: data/UEA
  names: [BasicMotions, Epilepsy]

metrics:
  dtw:
    distance: dtw
  wdtw:
    distance: wdtw
    args:
      g: 0.05

order: [wdtw, dtw]
window: 0.1
njobs: 4

runs:
  warmup: 1
  iterations: 3

split:
  test_fraction: 0.3
  seed: 7
`
		s, err := Parse([]byte(yaml))
		require.NoError(t, err)
		assert.Equal(t, []string{"BasicMotions", "Epilepsy"}, s.Datasets.Names)
		assert.Nil(t, s.Datasets.Domains)
		assert.Equal(t, []string{"wdtw", "dtw"}, s.Order)
		assert.Equal(t, 0.05, s.Metrics["wdtw"].Args["g"])
		require.NotNil(t, s.Window)
		assert.Equal(t, 0.1, *s.Window)
		assert.Equal(t, 4, s.Jobs)
		assert.Equal(t, 3, s.Runs.Iterations)
		assert.Equal(t, 0.3, s.Split.TestFraction)
		assert.Equal(t, uint64(7), s.Split.Seed)
	})

	t.Run("defaults applied", func(t *testing.T) {
		yaml := `
datasets:
  dir: data
  names: [BasicMotions]
metrics:
  wdtw: {distance: wdtw}
  dtw: {distance: dtw}
`
		s, err := Parse([]byte(yaml))
		require.NoError(t, err)
		assert.Equal(t, []string{"dtw", "wdtw"}, s.Order)
		assert.Nil(t, s.Window)
		assert.Equal(t, DefaultJobs, s.Jobs)
		assert.Equal(t, 1, s.Runs.Iterations)
		assert.Equal(t, DefaultTestFraction, s.Split.TestFraction)
		assert.Equal(t, uint64(DefaultSeed), s.Split.Seed)
	})

	errCases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "no datasets",
			yaml: "datasets: {dir: data}\nmetrics: {dtw: {distance: dtw}}\n",
			want: "no datasets",
		},
		{
			name: "no dataset dir",
			yaml: "datasets: {names: [a]}\nmetrics: {dtw: {distance: dtw}}\n",
			want: "no dataset dir",
		},
		{
			name: "no metrics",
			yaml: "datasets: {dir: data, names: [a]}\n",
			want: "no metrics",
		},
		{
			name: "metric without distance",
			yaml: "datasets: {dir: data, names: [a]}\nmetrics: {dtw: {}}\n",
			want: "has no distance",
		},
		{
			name: "order references unknown metric",
			yaml: "datasets: {dir: data, names: [a]}\nmetrics: {dtw: {distance: dtw}}\norder: [dtw, sdtw]\n",
			want: "unknown metric",
		},
		{
			name: "duplicate order entry",
			yaml: "datasets: {dir: data, names: [a]}\nmetrics: {dtw: {distance: dtw}}\norder: [dtw, dtw]\n",
			want: "listed twice",
		},
		{
			name: "domain of unlisted dataset",
			yaml: "datasets: {dir: data, names: [a], domains: {b: HAR}}\nmetrics: {dtw: {distance: dtw}}\n",
			want: "unlisted dataset",
		},
		{
			name: "bad test fraction",
			yaml: "datasets: {dir: data, names: [a]}\nmetrics: {dtw: {distance: dtw}}\nsplit: {test_fraction: 1.5}\n",
			want: "test fraction",
		},
	}
	for _, tt := range errCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("datasets: {dir: data, names: [a]}\nmetrics: {dtw: {distance: dtw}}\n"), 0644))

	s, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"dtw"}, s.Order)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParse_Domains(t *testing.T) {
	s, err := Parse([]byte("datasets: {dir: data, names: [BasicMotions, ECG200], domains: {BasicMotions: HAR}}\nmetrics: {dtw: {distance: dtw}}\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"BasicMotions": "HAR"}, s.Datasets.Domains)
}

func TestLoadDomains(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "domains.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("BasicMotions: HAR\nECG200: ECG\n"), 0644))
	domains, err := LoadDomains(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"BasicMotions": "HAR", "ECG200": "ECG"}, domains)

	jsonPath := filepath.Join(dir, "domains.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"Epilepsy": "HAR"}`), 0644))
	domains, err = LoadDomains(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Epilepsy": "HAR"}, domains)

	_, err = LoadDomains(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	badPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("- a\n- b\n"), 0644))
	_, err = LoadDomains(badPath)
	assert.Error(t, err)
}
