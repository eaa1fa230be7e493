package result

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/ts-bench/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "BasicMotions": {
    "properties": {"num_of_dimensions": 6, "num_of_instances": 30, "num_of_classes": 4},
    "dtw": {"arguments": {"njobs": -1}, "accuracy": 0.9, "recall": 0.8, "f1-score": 0.85, "auroc": 0.95, "runtime": 1.5, "memory_footprint": "12.50000 MB"},
    "agdtw_manhattan": {"arguments": {"sigma": 1, "window": 0.1}, "accuracy": 1.0, "recall": 0.9, "f1-score": 0.9, "auroc": 0.99, "runtime": 3.25, "memory_footprint": 10}
  },
  "AtrialFibrillation": {
    "properties": {"num_of_dimensions": 2, "num_of_instances": 11, "num_of_classes": 3},
    "dtw": {"arguments": {}, "accuracy": 0.3, "recall": 0.3, "f1-score": 0.25, "auroc": 0.5, "runtime": 0.5, "memory_footprint": 1},
    "agdtw_manhattan": {"arguments": {}, "accuracy": 0.4, "recall": 0.35, "f1-score": 0.3, "auroc": 0.55, "runtime": 0.75, "memory_footprint": 1}
  }
}`

func TestParse(t *testing.T) {
	t.Run("preserves key order", func(t *testing.T) {
		rs, err := Parse([]byte(sampleJSON))
		require.NoError(t, err)

		assert.Equal(t, []string{"BasicMotions", "AtrialFibrillation"}, rs.Datasets())
		assert.Equal(t, []string{"dtw", "agdtw_manhattan"}, rs.Metrics())
		assert.Equal(t, []string{"accuracy", "recall", "f1-score", "auroc", "runtime", "memory_footprint"}, rs.Scores())
	})

	t.Run("memory footprint strings become megabytes", func(t *testing.T) {
		rs, err := Parse([]byte(sampleJSON))
		require.NoError(t, err)

		v, err := rs.Score("BasicMotions", "dtw", ScoreMemoryFootprint)
		require.NoError(t, err)
		assert.InDelta(t, 12.5, v, 1e-9)
	})

	t.Run("arguments and properties decoded", func(t *testing.T) {
		rs, err := Parse([]byte(sampleJSON))
		require.NoError(t, err)

		rec, err := rs.Record("BasicMotions", "agdtw_manhattan")
		require.NoError(t, err)
		w, ok := rec.Window()
		assert.True(t, ok)
		assert.InDelta(t, 0.1, w, 1e-9)

		d, _ := rs.Dataset("BasicMotions")
		classes, ok := d.Properties.Int("num_of_classes")
		assert.True(t, ok)
		assert.Equal(t, 4, classes)
	})

	t.Run("rejects heterogeneous metrics", func(t *testing.T) {
		data := `{
  "a": {"dtw": {"accuracy": 1}, "sdtw": {"accuracy": 1}},
  "b": {"dtw": {"accuracy": 1}}
}`
		_, err := Parse([]byte(data))
		require.Error(t, err)
		var ve *apperr.ValidationError
		assert.True(t, errors.As(err, &ve))
		assert.Contains(t, err.Error(), "has metrics")
	})

	t.Run("rejects heterogeneous scores", func(t *testing.T) {
		data := `{
  "a": {"dtw": {"accuracy": 1, "recall": 1}, "sdtw": {"accuracy": 1}}
}`
		_, err := Parse([]byte(data))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "has scores")
	})

	t.Run("rejects non numeric scores", func(t *testing.T) {
		_, err := Parse([]byte(`{"a": {"dtw": {"accuracy": "high"}}}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not numeric")
	})

	t.Run("rejects empty set", func(t *testing.T) {
		_, err := Parse([]byte(`{}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no datasets")
	})
}

func TestWriteFile_RoundTripKeepsOrder(t *testing.T) {
	rs, err := Parse([]byte(sampleJSON))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteFile(rs, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n      \"BasicMotions\"")

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, rs.Datasets(), loaded.Datasets())
	assert.Equal(t, rs.Metrics(), loaded.Metrics())
	assert.Equal(t, rs.Scores(), loaded.Scores())

	v, err := loaded.Score("AtrialFibrillation", "agdtw_manhattan", ScoreRuntime)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, v, 1e-9)
}

func TestLoadMerged(t *testing.T) {
	dir := t.TempDir()
	uea := filepath.Join(dir, "UEA.json")
	ucr := filepath.Join(dir, "UCR.json")
	require.NoError(t, os.WriteFile(uea, []byte(`{"a": {"dtw": {"accuracy": 0.1}}}`), 0644))
	require.NoError(t, os.WriteFile(ucr, []byte(`{"b": {"dtw": {"accuracy": 0.2}}, "a": {"dtw": {"accuracy": 0.3}}}`), 0644))

	rs, err := LoadMerged(uea, ucr)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, rs.Datasets())

	v, err := rs.Score("a", "dtw", ScoreAccuracy)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, v, 1e-9)
}

func TestParseFootprint(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "1.50000 MB", want: 1.5},
		{in: "2048 KB", want: 2},
		{in: "1048576 B", want: 1},
		{in: "3", want: 3},
		{in: "3 GB", wantErr: true},
		{in: "", wantErr: true},
		{in: "x MB", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFootprint(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
