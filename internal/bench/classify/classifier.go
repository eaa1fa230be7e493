// Package classify provides nearest-neighbour time-series classifiers over
// elastic distance measures.
package classify

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/DjordjeVuckovic/ts-bench/internal/bench/dataset"
)

var ErrNotFitted = errors.New("classifier is not fitted")

type Classifier interface {
	Fit(series []dataset.Series, labels []string) error
	Predict(series []dataset.Series) ([]string, error)
	// PredictProba returns one row per series with a probability per class
	// in Classes order.
	PredictProba(series []dataset.Series) ([][]float64, error)
	Classes() []string
	Name() string
}

// KNN is a 1-nearest-neighbour classifier. Ties go to the training instance
// seen first.
type KNN struct {
	dist    Distance
	train   []dataset.Series
	labels  []string
	classes []string
}

func NewKNN(d Distance) *KNN {
	return &KNN{dist: d}
}

func (k *KNN) Name() string { return k.dist.Name() }

func (k *KNN) Fit(series []dataset.Series, labels []string) error {
	if len(series) == 0 {
		return errors.New("fit: no training instances")
	}
	if len(series) != len(labels) {
		return fmt.Errorf("fit: %d instances for %d labels", len(series), len(labels))
	}
	k.train = series
	k.labels = labels
	k.classes = dataset.UniqueLabels(labels)
	return nil
}

func (k *KNN) Classes() []string { return slices.Clone(k.classes) }

func (k *KNN) Predict(series []dataset.Series) ([]string, error) {
	out := make([]string, len(series))
	for i, s := range series {
		idx, err := k.nearest(s)
		if err != nil {
			return nil, fmt.Errorf("predict instance %d: %w", i, err)
		}
		out[i] = k.labels[idx]
	}
	return out, nil
}

func (k *KNN) PredictProba(series []dataset.Series) ([][]float64, error) {
	pred, err := k.Predict(series)
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(pred))
	for i, label := range pred {
		row := make([]float64, len(k.classes))
		row[slices.Index(k.classes, label)] = 1
		out[i] = row
	}
	return out, nil
}

func (k *KNN) nearest(s dataset.Series) (int, error) {
	if k.train == nil {
		return 0, ErrNotFitted
	}
	best, bestIdx := math.Inf(1), -1
	for i, t := range k.train {
		d, err := SeriesDistance(k.dist, s, t)
		if err != nil {
			return 0, err
		}
		if d < best {
			best, bestIdx = d, i
		}
	}
	if bestIdx < 0 {
		return 0, errors.New("no finite distance to any training instance")
	}
	return bestIdx, nil
}
