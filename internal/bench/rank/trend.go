package rank

import (
	"fmt"
	"math"

	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
)

// TrendInput is one result file of a constraint-band sweep.
type TrendInput struct {
	SCB     float64
	Results *result.ResultSet
}

// TrendPoint is a metric's mean runtime and mean ranking at one band size.
type TrendPoint struct {
	Runtime float64
	Ranking float64
	SCB     float64
}

// Trend computes one point per input in input order. The band size is
// reported as absolute value so the unconstrained run (-1) plots as 1.
func Trend(inputs []TrendInput, metric string, exclude ...string) ([]TrendPoint, error) {
	points := make([]TrendPoint, 0, len(inputs))
	for _, in := range inputs {
		runtime, err := MeanRuntime(in.Results, metric)
		if err != nil {
			return nil, fmt.Errorf("scb %v: %w", in.SCB, err)
		}
		ranking, err := MeanScore(in.Results, metric, ScoreRanking, exclude...)
		if err != nil {
			return nil, fmt.Errorf("scb %v: %w", in.SCB, err)
		}
		points = append(points, TrendPoint{Runtime: runtime, Ranking: ranking, SCB: math.Abs(in.SCB)})
	}
	return points, nil
}

// TrendInputs reads the band size of every result set from the window
// argument of its reference metric.
func TrendInputs(sets []*result.ResultSet, reference string) ([]TrendInput, error) {
	out := make([]TrendInput, 0, len(sets))
	for i, rs := range sets {
		datasets := rs.Datasets()
		if len(datasets) == 0 {
			return nil, fmt.Errorf("result set %d is empty", i)
		}
		rec, err := rs.Record(datasets[0], reference)
		if err != nil {
			return nil, err
		}
		w, ok := rec.Window()
		if !ok {
			return nil, fmt.Errorf("result set %d: metric %q has no window argument", i, reference)
		}
		out = append(out, TrendInput{SCB: w, Results: rs})
	}
	return out, nil
}
