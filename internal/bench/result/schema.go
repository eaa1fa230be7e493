package result

import (
	"fmt"
	"slices"

	"github.com/DjordjeVuckovic/ts-bench/internal/apperr"
)

// Metrics returns the metric names of the first dataset.
func (rs *ResultSet) Metrics() []string {
	if len(rs.datasets) == 0 {
		return nil
	}
	return rs.byName[rs.datasets[0]].Metrics()
}

// Scores returns the score names of the first metric of the first dataset.
func (rs *ResultSet) Scores() []string {
	first, ok := rs.firstRecord()
	if !ok {
		return nil
	}
	return first.Names()
}

// ScoresExcept returns the schema scores without the given names.
func (rs *ResultSet) ScoresExcept(exclude ...string) []string {
	var out []string
	for _, s := range rs.Scores() {
		if !slices.Contains(exclude, s) {
			out = append(out, s)
		}
	}
	return out
}

func (rs *ResultSet) firstRecord() (*ScoreRecord, bool) {
	if len(rs.datasets) == 0 {
		return nil, false
	}
	d := rs.byName[rs.datasets[0]]
	if len(d.metrics) == 0 {
		return nil, false
	}
	return d.records[d.metrics[0]], true
}

// Validate checks that every dataset carries the same metric set and every
// metric record the same score set as the first entry.
func (rs *ResultSet) Validate() error {
	if len(rs.datasets) == 0 {
		return apperr.NewValidation("result set has no datasets")
	}

	metrics := rs.Metrics()
	if len(metrics) == 0 {
		return apperr.NewValidation(fmt.Sprintf("dataset %q has no metrics", rs.datasets[0]))
	}
	scores := rs.Scores()

	for _, name := range rs.datasets {
		d := rs.byName[name]
		if !sameSet(metrics, d.metrics) {
			return apperr.NewValidation(fmt.Sprintf("dataset %q has metrics %v, expected %v", name, d.metrics, metrics))
		}
		for _, m := range d.metrics {
			if !sameSet(scores, d.records[m].names) {
				return apperr.NewValidation(fmt.Sprintf("dataset %q metric %q has scores %v, expected %v", name, m, d.records[m].names, scores))
			}
		}
	}
	return nil
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		if !slices.Contains(b, x) {
			return false
		}
	}
	return true
}

// Record looks up the score record of a dataset/metric pair.
func (rs *ResultSet) Record(dataset, metric string) (*ScoreRecord, error) {
	d, ok := rs.byName[dataset]
	if !ok {
		return nil, apperr.NewValidation(fmt.Sprintf("unknown dataset %q", dataset))
	}
	r, ok := d.records[metric]
	if !ok {
		return nil, apperr.NewValidation(fmt.Sprintf("dataset %q has no metric %q", dataset, metric))
	}
	return r, nil
}

// Score looks up a single value.
func (rs *ResultSet) Score(dataset, metric, score string) (float64, error) {
	r, err := rs.Record(dataset, metric)
	if err != nil {
		return 0, err
	}
	v, ok := r.Get(score)
	if !ok {
		return 0, apperr.NewValidation(fmt.Sprintf("dataset %q metric %q has no score %q", dataset, metric, score))
	}
	return v, nil
}
