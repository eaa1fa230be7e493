package report

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/DjordjeVuckovic/ts-bench/internal/bench/rank"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
)

// Summarize computes the mean ranking, runtime and score of every metric.
// Wins counts the datasets on which a metric holds the best value of at
// least one ranked score. Metrics are ordered by descending mean ranking.
func Summarize(rs *result.ResultSet, source string, exclude ...string) (*Summary, error) {
	s := &Summary{
		Meta: SummaryMeta{
			Source:      source,
			Timestamp:   time.Now().UTC(),
			Datasets:    rs.Len(),
			Excluded:    exclude,
			Environment: NewEnvironmentInfo(),
		},
	}

	ranked := rs.ScoresExcept(append([]string{result.ScoreRuntime}, exclude...)...)
	high := rank.HighScores(rs)
	hasRuntime := slices.Contains(rs.Scores(), result.ScoreRuntime)

	for _, m := range rs.Metrics() {
		spread, err := rank.RankingSpread(rs, m, exclude...)
		if err != nil {
			return nil, fmt.Errorf("summarize %s: %w", m, err)
		}
		entry := MetricSummary{
			Metric:      m,
			MeanRanking: spread.Mean,
			NegError:    spread.NegError,
			PosError:    spread.PosError,
			MeanScores:  make(map[string]float64, len(ranked)),
		}

		if hasRuntime {
			if entry.MeanRuntime, err = rank.MeanRuntime(rs, m); err != nil {
				return nil, fmt.Errorf("summarize %s: %w", m, err)
			}
		}
		for _, score := range ranked {
			if entry.MeanScores[score], err = rank.MeanScore(rs, m, score); err != nil {
				return nil, fmt.Errorf("summarize %s: %w", m, err)
			}
		}
		for _, ds := range rs.Datasets() {
			for _, score := range ranked {
				if high.IsHigh(ds, score, m) {
					entry.Wins++
					break
				}
			}
		}
		s.Metrics = append(s.Metrics, entry)
	}

	sort.SliceStable(s.Metrics, func(i, j int) bool {
		return s.Metrics[i].MeanRanking > s.Metrics[j].MeanRanking
	})
	return s, nil
}
