package rank

import (
	"math"

	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
)

// HighScoreMap maps dataset → score name → winning metric.
type HighScoreMap map[string]map[string]string

// HighScores finds the winning metric of every score on every dataset. The
// best runtime is the smallest, every other score the largest. A metric
// equal to the current best takes over, so the last of several tied
// metrics wins.
func HighScores(rs *result.ResultSet) HighScoreMap {
	out := make(HighScoreMap, rs.Len())
	scores := rs.Scores()

	for _, ds := range rs.Datasets() {
		d, _ := rs.Dataset(ds)
		winners := make(map[string]string, len(scores))

		for _, score := range scores {
			best, better := 0.0, func(v, b float64) bool { return v >= b }
			if score == result.ScoreRuntime {
				best, better = math.Inf(1), func(v, b float64) bool { return v <= b }
			}

			for _, m := range d.Metrics() {
				rec, _ := d.Record(m)
				v, ok := rec.Get(score)
				if !ok {
					continue
				}
				if better(v, best) {
					best = v
					winners[score] = m
				}
			}
		}
		out[ds] = winners
	}
	return out
}

// IsHigh reports whether metric holds the best value of score on dataset.
func (h HighScoreMap) IsHigh(dataset, score, metric string) bool {
	w, ok := h[dataset][score]
	return ok && w == metric
}
