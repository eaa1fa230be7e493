package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/ts-bench/internal/apperr"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/details"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
	"github.com/google/go-cmp/cmp"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultJSON = `{
  "BasicMotions": {
    "dtw": {"arguments": {}, "accuracy": 0.6, "f1-score": 0.8, "runtime": 2},
    "bagdtw": {"arguments": {}, "accuracy": 1.0, "f1-score": 0.0, "runtime": 4}
  },
  "Epilepsy": {
    "dtw": {"arguments": {}, "accuracy": 0.3, "f1-score": 0.4, "runtime": 1},
    "bagdtw": {"arguments": {}, "accuracy": 0.5, "f1-score": 0.5, "runtime": 3}
  },
  "Heartbeat": {
    "dtw": {"arguments": {}, "accuracy": 0.7, "f1-score": 0.7, "runtime": 1},
    "bagdtw": {"arguments": {}, "accuracy": 0.8, "f1-score": 0.6, "runtime": 3}
  }
}`

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	rs, err := result.Parse([]byte(resultJSON))
	require.NoError(t, err)
	det := details.Generate([]details.Record{
		{Name: "BasicMotions", Classes: 4, Dimensions: 6, Domain: "HAR"},
		{Name: "Epilepsy", Classes: 4, Dimensions: 3, Domain: "HAR"},
		{Name: "Heartbeat", Classes: 2, Dimensions: 61, Domain: "AUDIO"},
	})

	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	r := NewResultsRouter(e, rs, det)
	require.NoError(t, r.Validate())
	r.Bind()
	return e
}

func get(t *testing.T, e *echo.Echo, target string, out any) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func TestListDatasets(t *testing.T) {
	e := newTestEcho(t)

	tests := []struct {
		name    string
		target  string
		want    []string
		hasMore bool
	}{
		{name: "defaults", target: "/datasets", want: []string{"BasicMotions", "Epilepsy", "Heartbeat"}},
		{name: "first page", target: "/datasets?page=1&size=2", want: []string{"BasicMotions", "Epilepsy"}, hasMore: true},
		{name: "second page", target: "/datasets?page=2&size=2", want: []string{"Heartbeat"}},
		{name: "past the end", target: "/datasets?page=5&size=2", want: []string{}},
		{name: "invalid params fall back", target: "/datasets?page=x&size=-1", want: []string{"BasicMotions", "Epilepsy", "Heartbeat"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				Items   []DatasetSummary `json:"items"`
				Total   int64            `json:"total"`
				HasMore bool             `json:"has_more"`
			}
			require.Equal(t, http.StatusOK, get(t, e, tt.target, &body))

			names := make([]string, 0, len(body.Items))
			for _, it := range body.Items {
				names = append(names, it.Name)
			}
			assert.Equal(t, tt.want, names)
			assert.Equal(t, int64(3), body.Total)
			assert.Equal(t, tt.hasMore, body.HasMore)
		})
	}
}

func TestDataset(t *testing.T) {
	e := newTestEcho(t)

	t.Run("known dataset", func(t *testing.T) {
		var body DatasetResponse
		require.Equal(t, http.StatusOK, get(t, e, "/datasets/BasicMotions?exclude=runtime", &body))

		assert.Equal(t, "BasicMotions", body.Name)
		require.NotNil(t, body.Details)
		assert.Equal(t, 4, body.Details.Classes)
		assert.Equal(t, 0.6, body.Scores["dtw"]["accuracy"])
		assert.InDelta(t, 1.0, body.Rankings["dtw"], 1e-9)
		assert.InDelta(t, 1.0, body.Rankings["bagdtw"], 1e-9)
	})

	t.Run("unknown dataset", func(t *testing.T) {
		var body map[string]string
		assert.Equal(t, http.StatusNotFound, get(t, e, "/datasets/Nope", &body))
		assert.Contains(t, body["error"], "not found")
	})
}

func TestRankings(t *testing.T) {
	e := newTestEcho(t)

	var body map[string]map[string]float64
	require.Equal(t, http.StatusOK, get(t, e, "/rankings?exclude=runtime", &body))

	want := map[string]map[string]float64{
		"BasicMotions": {"dtw": 1.0, "bagdtw": 1.0},
		"Epilepsy":     {"dtw": 0.5, "bagdtw": 0.7071067811865476},
		"Heartbeat":    {"dtw": 0.9899494936611666, "bagdtw": 1.0},
	}
	approx := cmp.Comparer(func(a, b float64) bool {
		d := a - b
		return d < 1e-9 && d > -1e-9
	})
	if diff := cmp.Diff(want, body, approx); diff != "" {
		t.Errorf("rankings mismatch (-want +got):\n%s", diff)
	}
}

func TestHighScores(t *testing.T) {
	e := newTestEcho(t)

	var body map[string]map[string]string
	require.Equal(t, http.StatusOK, get(t, e, "/highscores", &body))
	assert.Equal(t, "bagdtw", body["BasicMotions"]["accuracy"])
	assert.Equal(t, "dtw", body["BasicMotions"]["f1-score"])
	assert.Equal(t, "dtw", body["Epilepsy"]["runtime"])
}

func TestCorrelations(t *testing.T) {
	e := newTestEcho(t)

	t.Run("by class cardinality", func(t *testing.T) {
		var body CorrelationResponse
		require.Equal(t, http.StatusOK, get(t, e, "/correlations/classes?exclude=runtime", &body))

		assert.Equal(t, "classes", body.Property)
		require.Len(t, body.Bins, 2)
		assert.Equal(t, "2", body.Bins[0].Label)
		assert.Equal(t, []string{"Heartbeat"}, body.Bins[0].Datasets)
		assert.Equal(t, "4", body.Bins[1].Label)
		assert.InDelta(t, 0.75, body.Bins[1].Means["dtw"], 1e-9)
		assert.Equal(t, "bagdtw", body.Winners["2"])
	})

	t.Run("unknown property", func(t *testing.T) {
		var body map[string]string
		assert.Equal(t, http.StatusBadRequest, get(t, e, "/correlations/color", &body))
		assert.Contains(t, body["error"], "unknown grouping property")
	})
}
