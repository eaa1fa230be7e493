package rank

import (
	"fmt"

	"github.com/DjordjeVuckovic/ts-bench/internal/apperr"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/details"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
)

// Bin is the mean ranking of every metric over the datasets sharing one
// property value.
type Bin struct {
	Label    string
	Value    float64
	Datasets []string
	Means    map[string]float64
}

// Binning is the result of grouping a result set by a dataset property.
type Binning struct {
	Property string
	Metrics  []string
	Bins     []Bin
}

// Point is one x/y pair of a correlation series.
type Point struct {
	X     float64
	Y     float64
	Label string
}

// Series holds the points of one metric across all bins.
type Series struct {
	Metric string
	Points []Point
}

// Correlate groups the datasets of rs by a details property and computes
// the mean ranking per (property value, metric).
func Correlate(rs *result.ResultSet, det *details.Details, property string, exclude ...string) (*Binning, error) {
	groups, err := det.GroupBy(property, rs.Datasets())
	if err != nil {
		return nil, err
	}

	b := &Binning{Property: property, Metrics: rs.Metrics()}
	for _, g := range groups {
		bin := Bin{Label: g.Label, Value: g.Value, Datasets: g.Datasets, Means: make(map[string]float64)}
		for _, m := range b.Metrics {
			var sum float64
			for _, ds := range g.Datasets {
				rec, err := rs.Record(ds, m)
				if err != nil {
					return nil, err
				}
				sum += Ranking(rec, exclude...)
			}
			bin.Means[m] = sum / float64(len(g.Datasets))
		}
		b.Bins = append(b.Bins, bin)
	}
	return b, nil
}

// ByMetric transposes the binning into one series per metric.
func (b *Binning) ByMetric() []Series {
	out := make([]Series, 0, len(b.Metrics))
	for _, m := range b.Metrics {
		s := Series{Metric: m, Points: make([]Point, 0, len(b.Bins))}
		for _, bin := range b.Bins {
			s.Points = append(s.Points, Point{X: bin.Value, Y: bin.Means[m], Label: bin.Label})
		}
		out = append(out, s)
	}
	return out
}

// Normalize returns a copy whose cells are divided by the global mean
// ranking of their metric.
func (b *Binning) Normalize(global map[string]float64) (*Binning, error) {
	out := &Binning{Property: b.Property, Metrics: b.Metrics}
	for _, bin := range b.Bins {
		nb := Bin{Label: bin.Label, Value: bin.Value, Datasets: bin.Datasets, Means: make(map[string]float64, len(bin.Means))}
		for m, v := range bin.Means {
			g, ok := global[m]
			if !ok {
				return nil, apperr.NewValidation(fmt.Sprintf("no global ranking for metric %q", m))
			}
			if g == 0 {
				return nil, apperr.NewValidation(fmt.Sprintf("global ranking of metric %q is zero", m))
			}
			nb.Means[m] = v / g
		}
		out.Bins = append(out.Bins, nb)
	}
	return out, nil
}

// Winners returns the metric with the highest mean ranking per bin label.
// Ties go to the later metric.
func (b *Binning) Winners() map[string]string {
	out := make(map[string]string, len(b.Bins))
	for _, bin := range b.Bins {
		best := 0.0
		for _, m := range b.Metrics {
			if v := bin.Means[m]; v >= best {
				best = v
				out[bin.Label] = m
			}
		}
	}
	return out
}

// SpreadSeries shifts the x position of series i by (i - (n-1)/2) * step so that
// series sharing an x value are drawn side by side.
func SpreadSeries(series []Series, step float64) []Series {
	n := len(series)
	out := make([]Series, n)
	for i, s := range series {
		offset := (float64(i) - float64(n-1)/2) * step
		pts := make([]Point, len(s.Points))
		for j, p := range s.Points {
			pts[j] = Point{X: p.X + offset, Y: p.Y, Label: p.Label}
		}
		out[i] = Series{Metric: s.Metric, Points: pts}
	}
	return out
}
