package csvexport

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/ts-bench/internal/bench/rank"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "a": {
    "dtw": {"accuracy": 0.6, "f1-score": 0.8, "runtime": 2.5},
    "agdtw_manhattan": {"accuracy": 0.3, "f1-score": 0.4, "runtime": 1}
  },
  "b": {
    "dtw": {"accuracy": 0, "f1-score": 0, "runtime": 4},
    "agdtw_manhattan": {"accuracy": 0.6, "f1-score": 0.8, "runtime": 3}
  }
}`

func parse(t *testing.T) *result.ResultSet {
	t.Helper()
	rs, err := result.Parse([]byte(sampleJSON))
	require.NoError(t, err)
	return rs
}

func TestWriteWide(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWide(parse(t), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Datasets / Metrics,dtw,,,agdtw_manhattan,,", lines[0])
	assert.Equal(t, ",accuracy,f1-score,runtime,accuracy,f1-score,runtime", lines[1])
	assert.Equal(t, `a,"0,6","0,8","2,5","0,3","0,4",1`, lines[2])
}

func TestWriteRankingRuntime(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "csv")
	files, err := WriteRankingRuntime(parse(t), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.csv"),
		filepath.Join(dir, "b.csv"),
		filepath.Join(dir, "pgfplots.tex"),
		filepath.Join(dir, "ranking.csv"),
	}, files)

	tex, err := os.ReadFile(filepath.Join(dir, "pgfplots.tex"))
	require.NoError(t, err)
	assert.Contains(t, string(tex), "xmode = log,")
	assert.Contains(t, string(tex), "x index = {2}, y index = {1}]{a.csv};")
	assert.Contains(t, string(tex), "x index = {2}, y index = {1}]{b.csv};")
	assert.Contains(t, string(tex), "           a,\n           b,\n")

	raw, err := os.ReadFile(filepath.Join(dir, "a.csv"))
	require.NoError(t, err)
	assert.Equal(t, "metric,ranking,runtime\nagdtw_manhattan,0.5,1\ndtw,1,2.5\n", string(raw))

	raw, err = os.ReadFile(filepath.Join(dir, "ranking.csv"))
	require.NoError(t, err)
	assert.Equal(t, "metric,average,neg_error,pos_error\ndtw,0.5,0.5,0.5\nagdtw-manhattan,0.75,0.25,0.25\n", string(raw))
}

func TestWriteScoreColumns(t *testing.T) {
	var buf bytes.Buffer
	err := WriteScoreColumns(parse(t), rank.ScoreRanking, map[string]string{"a": "DS 1"}, &buf, result.ScoreF1)
	require.NoError(t, err)
	assert.Equal(t, "dataset,dtw,agdtw_manhattan\nDS 1,0.6,0.3\nb,0,0.6\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteScoreColumns(parse(t), result.ScoreRuntime, nil, &buf))
	assert.Contains(t, buf.String(), "a,2.5,1\n")

	assert.Error(t, WriteScoreColumns(parse(t), "auroc", nil, &bytes.Buffer{}))
}

func TestWriteMetricAverage(t *testing.T) {
	path, err := WriteMetricAverage(t.TempDir(), "dtw", "accuracy", 0.5, 2)
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "metric,average-accuracy,average-runtime\ndtw,0.5,2\n", string(raw))
}

func TestWriteWideFile(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteWideFile(parse(t), filepath.Join(dir, "UEA_archive.json"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "UEA_archive.csv"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(raw), "\n"))

	_, err = WriteWideFile(parse(t), filepath.Join(dir, "missing", "UEA_archive.json"))
	assert.ErrorContains(t, err, "create")
}

func TestWriteMetricAverage_MissingDir(t *testing.T) {
	_, err := WriteMetricAverage(filepath.Join(t.TempDir(), "missing"), "dtw", "accuracy", 0.5, 2)
	assert.ErrorContains(t, err, "create")
}
