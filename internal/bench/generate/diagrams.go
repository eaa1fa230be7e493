package generate

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/DjordjeVuckovic/ts-bench/internal/bench/csvexport"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/details"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/rank"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/report"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
)

var propertyLabels = map[string]string{
	details.PropertyClasses:    "Class Cardinality",
	details.PropertyDimensions: "Dimensionality",
	details.PropertyDomain:     "Domain",
}

// ScoreDiagram plots the mean runtime against the mean score of every
// metric. score may be rank.ScoreRanking.
func (g *Generator) ScoreDiagram(resultPath, specific, score string, exclude []string) (string, error) {
	rs, err := result.LoadFromFile(resultPath)
	if err != nil {
		return "", err
	}
	paths, err := PathsFor(resultPath, g.OutRoot)
	if err != nil {
		return "", err
	}
	path := filepath.Join(paths.TexDir, fmt.Sprintf("pgfplot_%s_%s.tex", score, compact(specific)))
	axis := report.AxisOptions{XLabel: "Mean Runtime", YLabel: "Mean " + capitalize(score), XLog: true}
	return path, g.meanPlot(rs, rs.Metrics(), score, exclude, path, axis, []string{resultPath})
}

// ConsolidationDiagram is the score diagram of a distance-consolidation run
// with metrics in sorted order and a linear runtime axis.
func (g *Generator) ConsolidationDiagram(resultPath, score string, exclude []string) (string, error) {
	rs, err := result.LoadFromFile(resultPath)
	if err != nil {
		return "", err
	}
	paths, err := PathsFor(resultPath, g.OutRoot)
	if err != nil {
		return "", err
	}
	path := filepath.Join(paths.TexDir, fmt.Sprintf("pgfplot_%s_distance_consolidations.tex", score))
	axis := report.AxisOptions{XLabel: "Mean Runtime", YLabel: "Mean " + capitalize(score)}
	return path, g.meanPlot(rs, rs.SortedMetrics(), score, exclude, path, axis, []string{resultPath})
}

func (g *Generator) meanPlot(rs *result.ResultSet, metrics []string, score string, exclude []string, path string, axis report.AxisOptions, sources []string) error {
	plot := report.NewScatterPlot(path, axis, sources)
	for _, m := range metrics {
		runtime, err := rank.MeanRuntime(rs, m)
		if err != nil {
			return err
		}
		value, err := rank.MeanScore(rs, m, score, exclude...)
		if err != nil {
			return err
		}
		plot.AddSeries(m, []report.PlotPoint{{X: runtime, Y: value}})
	}
	if err := plot.Close(); err != nil {
		return fmt.Errorf("close plot: %w", err)
	}
	slog.Info("Wrote score diagram", "path", path, "score", score, "metrics", len(metrics))
	return nil
}

// TrendDiagram plots, per metric, how mean runtime and mean ranking move
// across result files recorded with different constraint band sizes.
func (g *Generator) TrendDiagram(folder string, files []string, name string, exclude []string) (string, error) {
	if name == "" || len(files) == 0 {
		return "", fmt.Errorf("trend diagram needs a name and at least one file")
	}

	sources := make([]string, len(files))
	sets := make([]*result.ResultSet, len(files))
	for i, f := range files {
		sources[i] = filepath.Join(folder, f)
		rs, err := result.LoadFromFile(sources[i])
		if err != nil {
			return "", err
		}
		sets[i] = rs
	}

	inputs, err := rank.TrendInputs(sets, g.TrendReference)
	if err != nil {
		return "", err
	}
	paths, err := PathsFor(filepath.Join(folder, "SCB_trends.json"), g.OutRoot)
	if err != nil {
		return "", err
	}
	path := filepath.Join(paths.TexDir, fmt.Sprintf("pgfplot_%s_scb_trend.tex", name))

	plot := report.NewTrendPlot(path, report.AxisOptions{XLabel: "Mean Runtime", YLabel: "Mean Ranking", XLog: true}, sources)
	for _, m := range sets[0].Metrics() {
		trend, err := rank.Trend(inputs, m, exclude...)
		if err != nil {
			return "", err
		}
		points := make([]report.PlotPoint, len(trend))
		scb := make([]float64, len(trend))
		for i, p := range trend {
			points[i] = report.PlotPoint{X: p.Runtime, Y: p.Ranking}
			scb[i] = p.SCB
		}
		if err := plot.AddTrend(m, points, scb); err != nil {
			return "", err
		}
	}
	if err := plot.Close(); err != nil {
		return "", fmt.Errorf("close trend plot: %w", err)
	}
	slog.Info("Wrote trend diagram", "path", path, "files", len(files))
	return path, nil
}

// CorrelationOptions selects a correlation diagram over merged archives.
type CorrelationOptions struct {
	ResultPaths []string
	DetailsPath string
	Property    string
	SCB         string
	// Normalize divides every bin by the metric's mean ranking over all datasets.
	Normalize bool
	Exclude   []string
}

// CorrelationDiagram merges the result files, groups the datasets by a
// details property and writes a bar plot and a table of the mean ranking
// per property value into the correlations directory.
func (g *Generator) CorrelationDiagram(opts CorrelationOptions) ([]string, error) {
	if len(opts.ResultPaths) == 0 {
		return nil, fmt.Errorf("correlation diagram needs at least one result file")
	}
	label, ok := propertyLabels[opts.Property]
	if !ok {
		return nil, fmt.Errorf("unknown correlation property %q", opts.Property)
	}

	rs, err := result.LoadMerged(opts.ResultPaths...)
	if err != nil {
		return nil, err
	}
	det, err := details.LoadFromFile(opts.DetailsPath)
	if err != nil {
		return nil, err
	}
	paths, err := PathsFor(opts.ResultPaths[0], g.OutRoot)
	if err != nil {
		return nil, err
	}

	binning, err := rank.Correlate(rs, det, opts.Property, opts.Exclude...)
	if err != nil {
		return nil, err
	}
	ylabel := "Mean Ranking"
	if opts.Normalize {
		global, err := rank.MeanRankings(rs, opts.Exclude...)
		if err != nil {
			return nil, err
		}
		if binning, err = binning.Normalize(global); err != nil {
			return nil, err
		}
		ylabel = "Relative Mean Ranking"
	}

	sources := append(append([]string{}, opts.ResultPaths...), opts.DetailsPath)
	base := fmt.Sprintf("%s_ranking_over_%s", opts.SCB, opts.Property)

	plotPath := filepath.Join(paths.CorrelationsDir, "pgfplot_"+base+".tex")
	plot := report.NewCorrelationPlot(plotPath, report.AxisOptions{XLabel: label, YLabel: ylabel}, sources)
	plot.BarWidth = g.SpreadStep
	ticks := make([]float64, len(binning.Bins))
	tickLabels := make([]string, len(binning.Bins))
	for i, b := range binning.Bins {
		ticks[i], tickLabels[i] = b.Value, b.Label
	}
	if err := plot.SetTicks(ticks, tickLabels); err != nil {
		return nil, err
	}
	for _, s := range rank.SpreadSeries(binning.ByMetric(), g.SpreadStep) {
		points := make([]report.PlotPoint, len(s.Points))
		for i, p := range s.Points {
			points[i] = report.PlotPoint{X: p.X, Y: p.Y}
		}
		plot.AddSeries(s.Metric, points)
	}
	if err := plot.Close(); err != nil {
		return nil, fmt.Errorf("close correlation plot: %w", err)
	}

	tablePath := filepath.Join(paths.CorrelationsDir, "table_"+base+".tex")
	caption := fmt.Sprintf(`%s over %s \gls{scb} %s`, ylabel, label, opts.SCB)
	tbl := report.NewCorrelationTable(tablePath, label, binning.Metrics, sources, caption, compact(base))
	winners := binning.Winners()
	for _, b := range binning.Bins {
		means := make([]float64, len(binning.Metrics))
		for i, m := range binning.Metrics {
			means[i] = b.Means[m]
		}
		if err := tbl.AddRow(b.Label, means, winners[b.Label]); err != nil {
			return nil, err
		}
	}
	if err := tbl.Close(); err != nil {
		return nil, fmt.Errorf("close correlation table: %w", err)
	}

	slog.Info("Wrote correlation diagram", "plot", plotPath, "table", tablePath, "bins", len(binning.Bins))
	return []string{plotPath, tablePath}, nil
}

// AverageDiagram writes <metric>.csv with the mean score and mean runtime of
// every metric and a pgfplots file plotting them over a logarithmic runtime
// axis. It also writes <score>.csv with one row per dataset and one column
// per metric, plotted over the datasets in datasets.tex.
func (g *Generator) AverageDiagram(resultPath, detailsPath, score string, exclude []string) (string, error) {
	rs, err := result.LoadFromFile(resultPath)
	if err != nil {
		return "", err
	}
	paths, err := PathsFor(resultPath, g.OutRoot)
	if err != nil {
		return "", err
	}

	labels := map[string]string{}
	sources := []string{resultPath}
	if detailsPath != "" {
		det, err := details.LoadFromFile(detailsPath)
		if err != nil {
			return "", err
		}
		for _, ds := range rs.Datasets() {
			if short, err := det.ShortName(ds); err == nil {
				labels[ds] = short
			}
		}
		sources = append(sources, detailsPath)
	}

	dir := filepath.Join(paths.TexDir, score)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	title := fmt.Sprintf("Average %s over Average Runtime", capitalize(score))
	path := filepath.Join(dir, "pgfplots.tex")
	plot := report.NewTablePlot(path,
		report.AxisOptions{Title: title, XLabel: "Average Runtime", YLabel: "Average " + capitalize(score), XLog: true}, sources)

	for _, m := range rs.Metrics() {
		avg, err := rank.MeanScore(rs, m, score, exclude...)
		if err != nil {
			return "", err
		}
		runtime, err := rank.MeanRuntime(rs, m)
		if err != nil {
			return "", err
		}
		if _, err := csvexport.WriteMetricAverage(dir, m, score, avg, runtime); err != nil {
			return "", err
		}
		plot.AddTable(m, m+".csv", 2, 1)
	}
	if err := plot.Close(); err != nil {
		return "", fmt.Errorf("close average plot: %w", err)
	}

	datasetsPath, err := datasetScorePlot(rs, paths, dir, score, labels, sources, exclude)
	if err != nil {
		return "", err
	}
	slog.Info("Wrote average diagram", "path", path, "datasets", datasetsPath, "score", score)
	return path, nil
}

// datasetScorePlot writes <score>.csv and datasets.tex plotting every
// metric column over the datasets.
func datasetScorePlot(rs *result.ResultSet, paths Paths, dir, score string, labels map[string]string, sources, exclude []string) (string, error) {
	dataPath := filepath.Join(dir, score+".csv")
	f, err := os.Create(dataPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dataPath, err)
	}
	err = csvexport.WriteScoreColumns(rs, score, labels, f, exclude...)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("write %s: %w", dataPath, err)
	}

	rel, err := filepath.Rel(paths.TexRoot, dataPath)
	if err != nil {
		rel = dataPath
	}
	rel = filepath.ToSlash(rel)

	path := filepath.Join(dir, "datasets.tex")
	plot := report.NewSingleScorePlot(path, rel,
		report.AxisOptions{Title: "Average " + capitalize(score), XLabel: "Datasets", YLabel: capitalize(score)}, sources)
	for i, m := range rs.Metrics() {
		plot.AddColumn(m, "../"+rel, i+1)
	}
	if err := plot.Close(); err != nil {
		return "", fmt.Errorf("close dataset score plot: %w", err)
	}
	return path, nil
}
