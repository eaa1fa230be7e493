package classify

import (
	"testing"

	"github.com/DjordjeVuckovic/ts-bench/internal/bench/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDTW_Between(t *testing.T) {
	tests := []struct {
		name string
		dist DTW
		a, b []float64
		want float64
	}{
		{name: "identical", dist: DTW{Window: -1}, a: []float64{1, 2, 3}, b: []float64{1, 2, 3}, want: 0},
		{name: "warps repeated point", dist: DTW{Window: -1}, a: []float64{0, 1, 2}, b: []float64{0, 1, 1, 2}, want: 0},
		{name: "shift unconstrained", dist: DTW{Window: -1}, a: []float64{0, 1, 0, 0}, b: []float64{0, 0, 1, 0}, want: 0},
		{name: "shift inside band", dist: DTW{Window: 0.25}, a: []float64{0, 1, 0, 0}, b: []float64{0, 0, 1, 0}, want: 0},
		{name: "zero band is lockstep", dist: DTW{Window: 0}, a: []float64{0, 1, 0, 0}, b: []float64{0, 0, 1, 0}, want: 2},
		{name: "derivative of parallel lines", dist: DTW{Window: -1, Derivative: true}, a: []float64{0, 1, 2, 3}, b: []float64{5, 6, 7, 8}, want: 0},
		{name: "weighted identical", dist: DTW{Window: -1, G: 0.05}, a: []float64{3, 1, 2}, b: []float64{3, 1, 2}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.dist.Between(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestDTW_Errors(t *testing.T) {
	_, err := DTW{}.Between(nil, []float64{1})
	assert.ErrorIs(t, err, ErrEmptySequence)

	_, err = DTW{Derivative: true}.Between([]float64{1, 2}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrTooShort)
}

func TestDTW_WeightsScaleCost(t *testing.T) {
	a := []float64{0, 1, 2, 3}
	b := []float64{1, 2, 3, 4}

	plain, err := DTW{Window: 0}.Between(a, b)
	require.NoError(t, err)
	weighted, err := DTW{Window: 0, G: 0.05}.Between(a, b)
	require.NoError(t, err)

	// lockstep keeps every cell on the diagonal where the weight is below one half
	assert.InDelta(t, 4, plain, 1e-9)
	assert.Less(t, weighted, plain/2)
}

func TestLogisticWeights(t *testing.T) {
	w := logisticWeights(4, 0.05)
	require.Len(t, w, 4)
	assert.InDelta(t, 0.5, w[2], 1e-12)
	assert.Less(t, w[0], w[3])
}

func TestEuclidean(t *testing.T) {
	got, err := Euclidean{}.Between([]float64{0, 0}, []float64{3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 5, got, 1e-9)

	_, err = Euclidean{}.Between([]float64{0}, []float64{3, 4})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestSeriesDistance(t *testing.T) {
	a := dataset.Series{{0, 0}, {1, 1}}
	b := dataset.Series{{3, 4}, {1, 1}}

	got, err := SeriesDistance(Euclidean{}, a, b)
	require.NoError(t, err)
	assert.InDelta(t, 5, got, 1e-9)

	_, err = SeriesDistance(Euclidean{}, a, dataset.Series{{3, 4}})
	assert.Error(t, err)
}

func TestKNN(t *testing.T) {
	train := []dataset.Series{{{0, 0, 0}}, {{5, 5, 5}}, {{0, 0, 0}}}
	labels := []string{"a", "b", "c"}

	knn := NewKNN(DTW{Window: -1})
	_, err := knn.Predict(train)
	assert.ErrorIs(t, err, ErrNotFitted)

	require.NoError(t, knn.Fit(train, labels))
	assert.Equal(t, []string{"a", "b", "c"}, knn.Classes())
	assert.Equal(t, "dtw", knn.Name())

	pred, err := knn.Predict([]dataset.Series{{{1, 1, 1}}, {{4, 4, 4}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, pred, "ties go to the first training instance")

	proba, err := knn.PredictProba([]dataset.Series{{{4, 4, 4}}})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 1, 0}}, proba)

	assert.Error(t, knn.Fit(train, labels[:1]))
}

func TestNew(t *testing.T) {
	tests := []struct {
		distance string
		args     map[string]any
		want     string
		wantErr  bool
	}{
		{distance: "dtw", want: "dtw"},
		{distance: "ddtw", args: map[string]any{"window": 0.1}, want: "ddtw"},
		{distance: "wdtw", args: map[string]any{"g": 0.05}, want: "wdtw"},
		{distance: "wddtw", args: map[string]any{"window": 1}, want: "wddtw"},
		{distance: "euclidean", want: "euclidean"},
		{distance: "agdtw", wantErr: true},
		{distance: "dtw", args: map[string]any{"window": "wide"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.distance, func(t *testing.T) {
			c, err := New(tt.distance, tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Name())
		})
	}

	_, err := New("agdtw", nil)
	assert.ErrorIs(t, err, ErrUnknownMetric)
}
