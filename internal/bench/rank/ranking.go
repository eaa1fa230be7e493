package rank

import (
	"fmt"
	"math"
	"slices"

	"github.com/DjordjeVuckovic/ts-bench/internal/apperr"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
)

// ScoreRanking selects the ranking instead of a stored score in MeanScore.
const ScoreRanking = "ranking"

// Ranking computes the Euclidean norm of all scores of a record except
// runtime and the excluded names.
func Ranking(rec *result.ScoreRecord, exclude ...string) float64 {
	var sum float64
	for _, name := range rec.Names() {
		if name == result.ScoreRuntime || slices.Contains(exclude, name) {
			continue
		}
		v, _ := rec.Get(name)
		sum += v * v
	}
	return math.Sqrt(sum)
}

// MeanScore averages either the ranking or a stored score of a metric over
// all datasets.
func MeanScore(rs *result.ResultSet, metric, score string, exclude ...string) (float64, error) {
	datasets := rs.Datasets()
	if len(datasets) == 0 {
		return 0, apperr.NewValidation("result set has no datasets")
	}

	var sum float64
	for _, ds := range datasets {
		rec, err := rs.Record(ds, metric)
		if err != nil {
			return 0, err
		}
		if score == ScoreRanking {
			sum += Ranking(rec, exclude...)
			continue
		}
		v, ok := rec.Get(score)
		if !ok {
			return 0, apperr.NewValidation(fmt.Sprintf("dataset %q metric %q has no score %q", ds, metric, score))
		}
		sum += v
	}
	return sum / float64(len(datasets)), nil
}

func MeanRuntime(rs *result.ResultSet, metric string) (float64, error) {
	return MeanScore(rs, metric, result.ScoreRuntime)
}

// Spread summarizes the per-dataset rankings of one metric.
type Spread struct {
	Mean     float64
	Min      float64
	Max      float64
	NegError float64
	PosError float64
}

// RankingSpread returns the mean ranking of a metric with its distance to
// the smallest and largest ranking.
func RankingSpread(rs *result.ResultSet, metric string, exclude ...string) (Spread, error) {
	datasets := rs.Datasets()
	if len(datasets) == 0 {
		return Spread{}, apperr.NewValidation("result set has no datasets")
	}

	s := Spread{Min: math.Inf(1)}
	var sum float64
	for _, ds := range datasets {
		rec, err := rs.Record(ds, metric)
		if err != nil {
			return Spread{}, err
		}
		r := Ranking(rec, exclude...)
		sum += r
		s.Min = min(s.Min, r)
		s.Max = max(s.Max, r)
	}
	s.Mean = sum / float64(len(datasets))
	s.NegError = s.Mean - s.Min
	s.PosError = s.Max - s.Mean
	return s, nil
}

// MeanRankings returns the mean ranking of every metric of the schema.
func MeanRankings(rs *result.ResultSet, exclude ...string) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, m := range rs.Metrics() {
		v, err := MeanScore(rs, m, ScoreRanking, exclude...)
		if err != nil {
			return nil, err
		}
		out[m] = v
	}
	return out, nil
}

// DatasetRankings returns dataset → metric → ranking.
func DatasetRankings(rs *result.ResultSet, exclude ...string) map[string]map[string]float64 {
	out := make(map[string]map[string]float64, rs.Len())
	for _, ds := range rs.Datasets() {
		d, _ := rs.Dataset(ds)
		row := make(map[string]float64)
		for _, m := range d.Metrics() {
			rec, _ := d.Record(m)
			row[m] = Ranking(rec, exclude...)
		}
		out[ds] = row
	}
	return out
}
