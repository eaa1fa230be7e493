package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
)

// Series is one multivariate instance: dimension × time.
type Series [][]float64

// Dataset is a labeled collection of time series.
type Dataset struct {
	Name   string
	Series []Series
	Labels []string
}

func (d *Dataset) Len() int { return len(d.Series) }

// Dimensions returns the dimension count of the first instance.
func (d *Dataset) Dimensions() int {
	if len(d.Series) == 0 {
		return 0
	}
	return len(d.Series[0])
}

// Timestamps returns the length of the first dimension of the first instance.
func (d *Dataset) Timestamps() int {
	if len(d.Series) == 0 || len(d.Series[0]) == 0 {
		return 0
	}
	return len(d.Series[0][0])
}

// Classes returns the distinct labels in sorted order.
func (d *Dataset) Classes() []string {
	return UniqueLabels(d.Labels)
}

// EqualLength reports whether every dimension of every instance has the
// length of the first instance's first dimension.
func (d *Dataset) EqualLength() bool {
	want := d.Timestamps()
	for _, s := range d.Series {
		for _, dim := range s {
			if len(dim) != want {
				return false
			}
		}
	}
	return true
}

// MissingValues counts NaN values across all instances.
func (d *Dataset) MissingValues() int {
	var count int
	for _, s := range d.Series {
		for _, dim := range s {
			for _, v := range dim {
				if math.IsNaN(v) {
					count++
				}
			}
		}
	}
	return count
}

// ClassCounts returns the number of instances per label.
func (d *Dataset) ClassCounts() map[string]int {
	counts := make(map[string]int)
	for _, l := range d.Labels {
		counts[l]++
	}
	return counts
}

func (d *Dataset) subset(idx []int) *Dataset {
	out := &Dataset{
		Name:   d.Name,
		Series: make([]Series, len(idx)),
		Labels: make([]string, len(idx)),
	}
	for i, j := range idx {
		out.Series[i] = d.Series[j]
		out.Labels[i] = d.Labels[j]
	}
	return out
}

// Split shuffles the instances with the given seed and cuts off the test
// share, rounding the test size up.
func Split(d *Dataset, testFraction float64, seed uint64) (train, test *Dataset, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction must be in (0, 1), got %v", testFraction)
	}
	n := d.Len()
	nTest := int(math.Ceil(float64(n) * testFraction))
	if nTest == 0 || nTest >= n {
		return nil, nil, fmt.Errorf("dataset %q with %d instances cannot be split by %v", d.Name, n, testFraction)
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	r.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	return d.subset(idx[nTest:]), d.subset(idx[:nTest]), nil
}

func UniqueLabels(labels []string) []string {
	out := slices.Clone(labels)
	slices.Sort(out)
	return slices.Compact(out)
}
