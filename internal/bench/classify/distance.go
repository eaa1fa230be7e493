package classify

import (
	"errors"
	"fmt"
	"math"

	"github.com/DjordjeVuckovic/ts-bench/internal/bench/dataset"
)

var (
	ErrEmptySequence  = errors.New("input sequences must be non-empty")
	ErrLengthMismatch = errors.New("sequences differ in length")
	ErrTooShort       = errors.New("derivative needs at least three points")
)

// Distance measures the dissimilarity of two univariate sequences.
type Distance interface {
	Name() string
	Between(a, b []float64) (float64, error)
}

// SeriesDistance sums the per-dimension distances of two multivariate series.
func SeriesDistance(d Distance, a, b dataset.Series) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%d dimensions against %d", len(a), len(b))
	}
	var sum float64
	for i := range a {
		v, err := d.Between(a[i], b[i])
		if err != nil {
			return 0, fmt.Errorf("dimension %d: %w", i, err)
		}
		sum += v
	}
	return sum, nil
}

type Euclidean struct{}

func (Euclidean) Name() string { return "euclidean" }

func (Euclidean) Between(a, b []float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, ErrEmptySequence
	}
	if len(a) != len(b) {
		return 0, ErrLengthMismatch
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// DTW is dynamic time warping with squared point costs and a Sakoe-Chiba
// band. Window is the band radius as a fraction of the longer sequence;
// a negative window leaves the alignment unconstrained.
type DTW struct {
	Window float64
	// Derivative compares first derivative estimates instead of raw values.
	Derivative bool
	// G enables the logistic weight of WDTW when positive.
	G float64
}

func (d DTW) Name() string {
	switch {
	case d.Derivative && d.G > 0:
		return "wddtw"
	case d.G > 0:
		return "wdtw"
	case d.Derivative:
		return "ddtw"
	}
	return "dtw"
}

func (d DTW) Between(a, b []float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, ErrEmptySequence
	}
	if d.Derivative {
		var err error
		if a, err = derivative(a); err != nil {
			return 0, err
		}
		if b, err = derivative(b); err != nil {
			return 0, err
		}
	}

	n, m := len(a), len(b)
	band := bandRadius(d.Window, n, m)

	var weights []float64
	if d.G > 0 {
		weights = logisticWeights(max(n, m), d.G)
	}

	inf := math.Inf(1)
	prev := make([]float64, m+1)
	curr := make([]float64, m+1)
	for j := 1; j <= m; j++ {
		prev[j] = inf
	}

	for i := 1; i <= n; i++ {
		curr[0] = inf
		for j := 1; j <= m; j++ {
			if abs(i-j) > band {
				curr[j] = inf
				continue
			}
			diff := a[i-1] - b[j-1]
			cost := diff * diff
			if weights != nil {
				cost *= weights[abs(i-j)]
			}
			curr[j] = cost + min(prev[j], curr[j-1], prev[j-1])
		}
		prev, curr = curr, prev
	}
	return prev[m], nil
}

// bandRadius converts the window fraction into a cell radius wide enough to
// reach the last cell of sequences of unequal length.
func bandRadius(window float64, n, m int) int {
	if window < 0 || window >= 1 {
		return max(n, m)
	}
	r := int(math.Ceil(window * float64(max(n, m))))
	return max(r, abs(n-m))
}

// logisticWeights returns w(k) = 1 / (1 + exp(-g * (k - n/2))) for k in [0, n).
func logisticWeights(n int, g float64) []float64 {
	w := make([]float64, n)
	half := float64(n) / 2
	for k := range w {
		w[k] = 1 / (1 + math.Exp(-g*(float64(k)-half)))
	}
	return w
}

// derivative is the Keogh & Pazzani estimate; endpoints copy their neighbours.
func derivative(x []float64) ([]float64, error) {
	n := len(x)
	if n < 3 {
		return nil, ErrTooShort
	}
	out := make([]float64, n)
	for i := 1; i < n-1; i++ {
		out[i] = ((x[i] - x[i-1]) + (x[i+1]-x[i-1])/2) / 2
	}
	out[0] = out[1]
	out[n-1] = out[n-2]
	return out, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
