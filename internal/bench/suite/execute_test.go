package suite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/ts-bench/internal/bench/confusion"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultJSON = `{
  "BasicMotions": {
    "dtw": {"arguments": {"window": 0.1}, "accuracy": 1, "recall": 1, "f1-score": 1, "runtime": 2},
    "bagdtw": {"arguments": {"window": 0.1}, "accuracy": 0.8, "recall": 0.75, "f1-score": 0.75, "runtime": 4}
  },
  "Epilepsy": {
    "dtw": {"arguments": {"window": 0.1}, "accuracy": 0.8, "recall": 0.75, "f1-score": 0.75, "runtime": 1},
    "bagdtw": {"arguments": {"window": 0.1}, "accuracy": 0.8, "recall": 0.75, "f1-score": 0.75, "runtime": 3}
  }
}`

const detailsJSON = `{
  "BasicMotions": {"short_name": "DS 1", "name": "BasicMotions", "num_of_dimensions": 6, "num_of_classes": 4, "len test set": 40, "domain": "HAR"},
  "Epilepsy": {"short_name": "DS 2", "name": "Epilepsy", "num_of_dimensions": 3, "num_of_classes": 4, "len test set": 100, "domain": "HAR"}
}`

func writePlan(t *testing.T, plan string) (*LoadedPlan, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "json"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "json", "UEA_archive.json"), []byte(resultJSON), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "json", "UEA_details.json"), []byte(detailsJSON), 0644))

	path := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(plan), 0644))
	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	return loaded, dir
}

func TestExecute(t *testing.T) {
	loaded, dir := writePlan(t, `
name: uea
output: tex
inputs:
  uea: json/UEA_archive.json
details:
  uea: json/UEA_details.json
params:
  window: 0.1
templates:
  - id: scb
    text: "size = {{window}}"
jobs:
  - kind: table
    input: uea
    details: uea
    template: scb
    exclude: [runtime]
  - kind: score_diagram
    input: uea
    score: accuracy
    specific: "size = {{window}}"
  - kind: details_table
    details: uea
  - kind: csv
    input: uea
  - kind: perfect
    inputs: [uea]
    scbs: ["0.1"]
    output: perfect.json
`)

	written, err := Execute(context.Background(), loaded)
	require.NoError(t, err)

	tex := filepath.Join(dir, "tex", "UEA_archive")
	assert.Equal(t, []string{
		filepath.Join(tex, "table_UEA_bagdtw-dtw_size=0.1.tex"),
		filepath.Join(tex, "pgfplot_accuracy_size=0.1.tex"),
		filepath.Join(dir, "tex", "UEA_details", "table_UEA_datasets.tex"),
		filepath.Join(dir, "json", "UEA_archive.csv"),
		filepath.Join(dir, "perfect.json"),
	}, written)
	for _, path := range written {
		assert.FileExists(t, path)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "perfect.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"Warping Window Size = 0.1"`)
	assert.Contains(t, string(raw), `"BasicMotions"`)
	assert.NotContains(t, string(raw), `"Epilepsy"`)
}

func TestExecute_Confusion(t *testing.T) {
	t.Run("fails on undefined values", func(t *testing.T) {
		loaded, _ := writePlan(t, `
jobs:
  - kind: confusion
    input: json/UEA_archive.json
    details: json/UEA_details.json
    output: derived.json
`)
		_, err := Execute(context.Background(), loaded)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BasicMotions")
	})

	t.Run("drops undefined datasets", func(t *testing.T) {
		loaded, dir := writePlan(t, `
jobs:
  - kind: confusion
    input: json/UEA_archive.json
    details: json/UEA_details.json
    output: derived.json
    drop_undefined: true
`)
		written, err := Execute(context.Background(), loaded)
		require.NoError(t, err)
		require.Equal(t, []string{filepath.Join(dir, "derived.json")}, written)

		rs, err := result.LoadFromFile(written[0])
		require.NoError(t, err)
		assert.Equal(t, []string{"Epilepsy"}, rs.Datasets())
		assert.Contains(t, rs.Scores(), confusion.TP)
	})
}

func TestExecute_CanceledContext(t *testing.T) {
	loaded, _ := writePlan(t, `
jobs:
  - kind: details_table
    details: json/UEA_details.json
`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	written, err := Execute(ctx, loaded)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, written)
}

func TestExecute_MissingTemplateParam(t *testing.T) {
	loaded, _ := writePlan(t, `
jobs:
  - kind: score_diagram
    input: json/UEA_archive.json
    score: accuracy
    specific: "size = {{window}}"
`)
	_, err := Execute(context.Background(), loaded)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing params")
}
