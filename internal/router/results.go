package router

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/DjordjeVuckovic/ts-bench/internal/apperr"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/details"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/rank"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
	"github.com/DjordjeVuckovic/ts-bench/pkg/pagination"
	"github.com/DjordjeVuckovic/ts-bench/pkg/stringsutil"
	"github.com/labstack/echo/v4"
)

// DatasetSummary is one entry of the dataset listing.
type DatasetSummary struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name,omitempty"`
	Classes   int    `json:"num_of_classes"`
	Dims      int    `json:"num_of_dimensions"`
	Domain    string `json:"domain,omitempty"`
}

// DatasetResponse carries the scores of every metric on one dataset.
type DatasetResponse struct {
	Name     string                        `json:"name"`
	Details  *details.Record               `json:"details,omitempty"`
	Scores   map[string]map[string]float64 `json:"scores"`
	Rankings map[string]float64            `json:"rankings"`
}

// CorrelationResponse is the mean ranking per property value and metric.
type CorrelationResponse struct {
	Property string            `json:"property"`
	Metrics  []string          `json:"metrics"`
	Bins     []CorrelationBin  `json:"bins"`
	Winners  map[string]string `json:"winners"`
}

type CorrelationBin struct {
	Label    string             `json:"label"`
	Value    float64            `json:"value"`
	Datasets []string           `json:"datasets"`
	Means    map[string]float64 `json:"means"`
}

type ResultsRouter struct {
	e   *echo.Echo
	rs  *result.ResultSet
	det *details.Details
}

func NewResultsRouter(e *echo.Echo, rs *result.ResultSet, det *details.Details) *ResultsRouter {
	return &ResultsRouter{
		e:   e,
		rs:  rs,
		det: det,
	}
}

func (r *ResultsRouter) Bind() {
	r.e.GET("/datasets", r.listDatasetsHandler)
	r.e.GET("/datasets/:name", r.datasetHandler)
	r.e.GET("/rankings", r.rankingsHandler)
	r.e.GET("/highscores", r.highScoresHandler)
	r.e.GET("/correlations/:property", r.correlationHandler)
}

// listDatasetsHandler godoc
// @Summary List benchmarked datasets
// @Tags datasets
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} pagination.OffsetResult[DatasetSummary]
// @Router /datasets [get]
func (r *ResultsRouter) listDatasetsHandler(c echo.Context) error {
	req := pagination.OffsetRequest{
		Page: queryInt(c, "page", 1),
		Size: queryInt(c, "size", pagination.PageDefaultSize),
	}
	req.Normalize()

	names := r.rs.Datasets()
	start, end := req.Bounds(len(names))

	items := make([]DatasetSummary, 0, end-start)
	for _, name := range names[start:end] {
		item := DatasetSummary{Name: name}
		if rec, ok := r.det.Get(name); ok {
			item.ShortName = rec.ShortName
			item.Classes = rec.Classes
			item.Dims = rec.Dimensions
			item.Domain = rec.Domain
		}
		items = append(items, item)
	}

	return c.JSON(http.StatusOK, pagination.NewOffsetResult(items, len(names), req))
}

// datasetHandler godoc
// @Summary Scores of one dataset
// @Tags datasets
// @Produce json
// @Param name path string true "Dataset name"
// @Param exclude query string false "Comma separated scores left out of the ranking"
// @Success 200 {object} DatasetResponse
// @Failure 404 {object} map[string]string
// @Router /datasets/{name} [get]
func (r *ResultsRouter) datasetHandler(c echo.Context) error {
	name := c.Param("name")
	d, ok := r.rs.Dataset(name)
	if !ok {
		return apperr.NewNotFound("dataset", name)
	}

	exclude := stringsutil.SplitList(c.QueryParam("exclude"))
	resp := DatasetResponse{
		Name:     name,
		Scores:   make(map[string]map[string]float64),
		Rankings: make(map[string]float64),
	}
	if rec, ok := r.det.Get(name); ok {
		resp.Details = &rec
	}
	for _, m := range d.Metrics() {
		rec, _ := d.Record(m)
		resp.Scores[m] = rec.Values()
		resp.Rankings[m] = rank.Ranking(rec, exclude...)
	}
	return c.JSON(http.StatusOK, resp)
}

// rankingsHandler godoc
// @Summary Ranking of every metric on every dataset
// @Tags rankings
// @Produce json
// @Param exclude query string false "Comma separated scores left out of the ranking"
// @Success 200 {object} map[string]map[string]float64
// @Router /rankings [get]
func (r *ResultsRouter) rankingsHandler(c echo.Context) error {
	exclude := stringsutil.SplitList(c.QueryParam("exclude"))
	return c.JSON(http.StatusOK, rank.DatasetRankings(r.rs, exclude...))
}

// highScoresHandler godoc
// @Summary Winning metric per dataset and score
// @Tags rankings
// @Produce json
// @Success 200 {object} map[string]map[string]string
// @Router /highscores [get]
func (r *ResultsRouter) highScoresHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, rank.HighScores(r.rs))
}

// correlationHandler godoc
// @Summary Mean ranking grouped by a dataset property
// @Tags rankings
// @Produce json
// @Param property path string true "classes, dimensions or domain"
// @Param exclude query string false "Comma separated scores left out of the ranking"
// @Param normalize query bool false "Divide by the global mean ranking"
// @Success 200 {object} CorrelationResponse
// @Failure 400 {object} map[string]string
// @Router /correlations/{property} [get]
func (r *ResultsRouter) correlationHandler(c echo.Context) error {
	property := c.Param("property")
	exclude := stringsutil.SplitList(c.QueryParam("exclude"))

	b, err := rank.Correlate(r.rs, r.det, property, exclude...)
	if err != nil {
		return err
	}
	if c.QueryParam("normalize") == "true" {
		global, err := rank.MeanRankings(r.rs, exclude...)
		if err != nil {
			return err
		}
		if b, err = b.Normalize(global); err != nil {
			return err
		}
	}

	resp := CorrelationResponse{
		Property: b.Property,
		Metrics:  b.Metrics,
		Bins:     make([]CorrelationBin, 0, len(b.Bins)),
		Winners:  b.Winners(),
	}
	for _, bin := range b.Bins {
		resp.Bins = append(resp.Bins, CorrelationBin{
			Label:    bin.Label,
			Value:    bin.Value,
			Datasets: bin.Datasets,
			Means:    bin.Means,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return def
	}
	return v
}

// Validate reports whether the router has data to serve.
func (r *ResultsRouter) Validate() error {
	if r.rs == nil || r.rs.Len() == 0 {
		return errors.New("no results loaded")
	}
	if r.det == nil {
		return errors.New("no dataset details loaded")
	}
	return nil
}
