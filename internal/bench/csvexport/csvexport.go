// Package csvexport writes result sets as CSV side files for spreadsheets
// and pgfplots.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/ts-bench/internal/bench/rank"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/report"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// decimalComma formats a value with a comma as decimal separator.
func decimalComma(v float64) string {
	return strings.Replace(formatFloat(v), ".", ",", 1)
}

// WriteWide writes one row per dataset and one column per (metric, score).
// The first header row names the metrics, padded with empty cells; the
// second names the scores.
func WriteWide(rs *result.ResultSet, w io.Writer) error {
	metrics := rs.Metrics()
	scores := rs.Scores()

	cw := csv.NewWriter(w)
	header1 := []string{"Datasets / Metrics"}
	header2 := []string{""}
	for _, m := range metrics {
		header1 = append(header1, m)
		for range len(scores) - 1 {
			header1 = append(header1, "")
		}
		header2 = append(header2, scores...)
	}
	if err := cw.Write(header1); err != nil {
		return err
	}
	if err := cw.Write(header2); err != nil {
		return err
	}

	for _, ds := range rs.Datasets() {
		row := []string{ds}
		for _, m := range metrics {
			for _, s := range scores {
				v, err := rs.Score(ds, m, s)
				if err != nil {
					return err
				}
				row = append(row, decimalComma(v))
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteWideFile writes WriteWide output next to the result file, replacing
// its .json extension by .csv.
func WriteWideFile(rs *result.ResultSet, jsonPath string) (string, error) {
	path := strings.TrimSuffix(jsonPath, filepath.Ext(jsonPath)) + ".csv"
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	err = WriteWide(rs, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// AccuracyF1Ranking is the two-score ranking used by the runtime export.
func AccuracyF1Ranking(rec *result.ScoreRecord) float64 {
	acc, _ := rec.Get(result.ScoreAccuracy)
	f1, _ := rec.Get(result.ScoreF1)
	return math.Sqrt(acc*acc + f1*f1)
}

// WriteRankingRuntime writes, for every dataset, <dir>/<dataset>.csv with
// the metrics ordered by runtime, <dir>/pgfplots.tex plotting ranking over
// runtime for every dataset, and <dir>/ranking.csv with the mean ranking of
// every metric and its error bars. It returns the written files.
func WriteRankingRuntime(rs *result.ResultSet, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	metrics := rs.Metrics()
	var written []string

	texPath := filepath.Join(dir, "pgfplots.tex")
	plot := report.NewTablePlot(texPath, report.AxisOptions{XLabel: "Runtime", YLabel: "Ranking", XLog: true}, nil)

	for _, ds := range rs.Datasets() {
		d, _ := rs.Dataset(ds)
		type entry struct {
			metric  string
			ranking float64
			runtime float64
		}
		entries := make([]entry, 0, len(metrics))
		for _, m := range metrics {
			rec, ok := d.Record(m)
			if !ok {
				return nil, fmt.Errorf("dataset %q has no metric %q", ds, m)
			}
			rt, _ := rec.Get(result.ScoreRuntime)
			entries = append(entries, entry{metric: m, ranking: AccuracyF1Ranking(rec), runtime: rt})
		}
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].runtime < entries[j].runtime })

		rows := [][]string{{"metric", "ranking", "runtime"}}
		for _, e := range entries {
			rows = append(rows, []string{e.metric, formatFloat(e.ranking), formatFloat(e.runtime)})
		}
		path := filepath.Join(dir, ds+".csv")
		if err := writeRows(path, rows); err != nil {
			return nil, err
		}
		written = append(written, path)
		plot.AddTable(ds, ds+".csv", 2, 1)
	}
	if err := plot.Close(); err != nil {
		return nil, fmt.Errorf("close ranking runtime plot: %w", err)
	}
	written = append(written, texPath)

	rows := [][]string{{"metric", "average", "neg_error", "pos_error"}}
	for _, m := range metrics {
		var sum float64
		lo, hi := math.Inf(1), 0.0
		for _, ds := range rs.Datasets() {
			rec, err := rs.Record(ds, m)
			if err != nil {
				return nil, err
			}
			r := AccuracyF1Ranking(rec)
			sum += r
			lo, hi = min(lo, r), max(hi, r)
		}
		avg := sum / float64(rs.Len())
		rows = append(rows, []string{
			strings.ReplaceAll(m, "_", "-"),
			formatFloat(avg),
			formatFloat(avg - lo),
			formatFloat(hi - avg),
		})
	}
	path := filepath.Join(dir, "ranking.csv")
	if err := writeRows(path, rows); err != nil {
		return nil, err
	}
	return append(written, path), nil
}

// WriteScoreColumns writes one row per dataset with the score (or ranking)
// of every metric as columns. labels maps dataset names to the value of the
// dataset column; missing entries use the dataset name.
func WriteScoreColumns(rs *result.ResultSet, score string, labels map[string]string, w io.Writer, exclude ...string) error {
	metrics := rs.Metrics()
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"dataset"}, metrics...)); err != nil {
		return err
	}
	for _, ds := range rs.Datasets() {
		label := ds
		if l, ok := labels[ds]; ok {
			label = l
		}
		row := []string{label}
		for _, m := range metrics {
			rec, err := rs.Record(ds, m)
			if err != nil {
				return err
			}
			var v float64
			if score == rank.ScoreRanking {
				v = rank.Ranking(rec, exclude...)
			} else if v, err = rs.Score(ds, m, score); err != nil {
				return err
			}
			row = append(row, formatFloat(v))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMetricAverage writes <dir>/<metric>.csv holding the mean score and
// mean runtime of a metric.
func WriteMetricAverage(dir, metric, score string, avgScore, avgRuntime float64) (string, error) {
	path := filepath.Join(dir, metric+".csv")
	rows := [][]string{
		{"metric", "average-" + score, "average-runtime"},
		{metric, formatFloat(avgScore), formatFloat(avgRuntime)},
	}
	if err := writeRows(path, rows); err != nil {
		return "", err
	}
	return path, nil
}

func writeRows(path string, rows [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := csv.NewWriter(f).WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
