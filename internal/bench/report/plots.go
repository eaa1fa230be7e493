package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultOverlapTolerance is the relative distance below which two plot
// points count as overlapping.
const DefaultOverlapTolerance = 0.03

// labelAnchors are cycled through for labels of overlapping points. The
// first entry is the anchor of a point nothing else overlaps.
var labelAnchors = []string{"south", "north", "east", "west"}

// PlotPoint is one coordinate with the text printed next to it.
type PlotPoint struct {
	X    float64
	Y    float64
	Meta string
}

type plotSeries struct {
	name   string
	points []PlotPoint
}

// AxisOptions configures the axis environment of a plot.
type AxisOptions struct {
	Title  string
	XLabel string
	YLabel string
	XLog   bool
}

func (o AxisOptions) lines(extra ...string) []string {
	lines := []string{`    \begin{axis}[`}
	if o.Title != "" {
		lines = append(lines, fmt.Sprintf("        title = {%s},", o.Title))
	}
	if o.XLog {
		lines = append(lines, "        xmode = log,")
	}
	lines = append(lines,
		fmt.Sprintf("        xlabel = {%s},", o.XLabel),
		fmt.Sprintf("        ylabel = {%s},", o.YLabel),
		"        grid = both,",
		"        grid style={line width=.2pt, draw=gray!10},",
		"        major grid style={line width=.2pt,draw=gray!50},",
		"        minor tick num=5,",
		"        legend style={",
		`            font={\small},`,
		"        },",
		"        legend cell align={left},",
		"        legend pos = south east,",
		"        clip=false,",
	)
	lines = append(lines, extra...)
	return append(lines, "    ]")
}

// labelPlacer assigns node anchors so labels of coinciding points do not
// overlap.
type labelPlacer struct {
	tolerance float64
	placed    []PlotPoint
}

func close2(a, b, tol float64) bool {
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale == 0 {
		return true
	}
	return math.Abs(a-b) <= tol*scale
}

// anchor returns the anchor for p and records it as placed. The n-th point
// at a position takes entry n of labelAnchors, wrapping around.
func (l *labelPlacer) anchor(p PlotPoint) string {
	overlaps := 0
	for _, q := range l.placed {
		if close2(p.X, q.X, l.tolerance) && close2(p.Y, q.Y, l.tolerance) {
			overlaps++
		}
	}
	l.placed = append(l.placed, p)
	return labelAnchors[overlaps%len(labelAnchors)]
}

// ScatterPlot draws one marked series per metric with a label printed at
// every point.
type ScatterPlot struct {
	TexFile
	Axis      AxisOptions
	Tolerance float64
	series    []plotSeries
}

func NewScatterPlot(path string, axis AxisOptions, sources []string) *ScatterPlot {
	return &ScatterPlot{
		TexFile:   newTexFile(path, "ScatterPlot", sources),
		Axis:      axis,
		Tolerance: DefaultOverlapTolerance,
	}
}

// AddSeries adds the points of a metric. Points without Meta are labeled
// with their y value.
func (p *ScatterPlot) AddSeries(metric string, points []PlotPoint) {
	pts := make([]PlotPoint, len(points))
	for i, pt := range points {
		if pt.Meta == "" {
			pt.Meta = fmt.Sprintf("%.2f", pt.Y)
		}
		pts[i] = pt
	}
	p.series = append(p.series, plotSeries{name: metric, points: pts})
}

func (p *ScatterPlot) compile() []string {
	return compileScatter(p.Axis, p.Tolerance, "only marks", p.series)
}

func (p *ScatterPlot) Render() (string, error) { return p.render(p.compile()) }

func (p *ScatterPlot) Close() error { return p.flush(p.compile()) }

func compileScatter(axis AxisOptions, tol float64, style string, series []plotSeries) []string {
	lines := []string{`\begin{tikzpicture}`}
	lines = append(lines, axis.lines(
		"        nodes near coords,",
		`        point meta=explicit symbolic,`,
		`        visualization depends on={value \thisrow{anchor}\as\labelanchor},`,
		`        every node near coord/.append style={anchor=\labelanchor, font=\tiny},`,
	)...)

	placer := &labelPlacer{tolerance: tol}
	for _, s := range series {
		lines = append(lines, fmt.Sprintf(`        \addplot+[%s] table[meta=label] {`, style))
		lines = append(lines, "            x y label anchor")
		for _, pt := range s.points {
			lines = append(lines, fmt.Sprintf("            %s %s {%s} %s",
				formatCoord(pt.X), formatCoord(pt.Y), pt.Meta, placer.anchor(pt)))
		}
		lines = append(lines, "        };")
		lines = append(lines, fmt.Sprintf(`        \addlegendentry{%s}`, legend(s.name)))
	}
	return append(lines, `    \end{axis}`, `\end{tikzpicture}`)
}

// TrendPlot connects the points of a metric across constraint band sizes and
// prints the band size next to each point.
type TrendPlot struct {
	TexFile
	Axis      AxisOptions
	Tolerance float64
	series    []plotSeries
}

func NewTrendPlot(path string, axis AxisOptions, sources []string) *TrendPlot {
	return &TrendPlot{
		TexFile:   newTexFile(path, "TrendPlot", sources),
		Axis:      axis,
		Tolerance: DefaultOverlapTolerance,
	}
}

// AddTrend adds a metric's (runtime, ranking) points labeled with their
// band size.
func (p *TrendPlot) AddTrend(metric string, points []PlotPoint, scb []float64) error {
	if len(points) != len(scb) {
		return fmt.Errorf("trend %q has %d points and %d band sizes", metric, len(points), len(scb))
	}
	pts := make([]PlotPoint, len(points))
	for i, pt := range points {
		pt.Meta = strconv.FormatFloat(scb[i], 'g', -1, 64)
		pts[i] = pt
	}
	p.series = append(p.series, plotSeries{name: metric, points: pts})
	return nil
}

func (p *TrendPlot) compile() []string {
	return compileScatter(p.Axis, p.Tolerance, "mark=*", p.series)
}

func (p *TrendPlot) Render() (string, error) { return p.render(p.compile()) }

func (p *TrendPlot) Close() error { return p.flush(p.compile()) }

// CorrelationPlot draws one bar series per metric over property values shown
// as custom tick labels.
type CorrelationPlot struct {
	TexFile
	Axis     AxisOptions
	BarWidth float64
	ticks    []float64
	labels   []string
	series   []plotSeries
}

func NewCorrelationPlot(path string, axis AxisOptions, sources []string) *CorrelationPlot {
	return &CorrelationPlot{
		TexFile: newTexFile(path, "CorrelationPlot", sources),
		Axis:    axis,
	}
}

// SetTicks places the tick labels at the given x positions.
func (p *CorrelationPlot) SetTicks(positions []float64, labels []string) error {
	if len(positions) != len(labels) {
		return fmt.Errorf("%d tick positions for %d labels", len(positions), len(labels))
	}
	p.ticks, p.labels = positions, labels
	return nil
}

func (p *CorrelationPlot) AddSeries(metric string, points []PlotPoint) {
	p.series = append(p.series, plotSeries{name: metric, points: points})
}

func (p *CorrelationPlot) compile() []string {
	ticks := make([]string, len(p.ticks))
	for i, t := range p.ticks {
		ticks[i] = formatCoord(t)
	}
	labels := make([]string, len(p.labels))
	for i, l := range p.labels {
		labels[i] = "{" + Escape(l) + "}"
	}

	axis := p.Axis
	axis.XLog = false
	lines := []string{`\begin{tikzpicture}`}
	lines = append(lines, axis.lines(
		fmt.Sprintf("        xtick={%s},", strings.Join(ticks, ",")),
		fmt.Sprintf("        xticklabels={%s},", strings.Join(labels, ",")),
	)...)

	barStyle := "ybar, bar shift=0pt"
	if p.BarWidth > 0 {
		barStyle += fmt.Sprintf(", bar width=%s", formatCoord(p.BarWidth))
	}
	for _, s := range p.series {
		coords := make([]string, len(s.points))
		for i, pt := range s.points {
			coords[i] = fmt.Sprintf("(%s,%s)", formatCoord(pt.X), formatCoord(pt.Y))
		}
		lines = append(lines,
			fmt.Sprintf(`        \addplot+[%s] coordinates {%s};`, barStyle, strings.Join(coords, " ")),
			fmt.Sprintf(`        \addlegendentry{%s}`, legend(s.name)),
		)
	}
	return append(lines, `    \end{axis}`, `\end{tikzpicture}`)
}

func (p *CorrelationPlot) Render() (string, error) { return p.render(p.compile()) }

func (p *CorrelationPlot) Close() error { return p.flush(p.compile()) }

// SingleScorePlot reads a CSV side file with one row per dataset and plots a
// column per metric over the dataset index.
type SingleScorePlot struct {
	TexFile
	Axis     AxisOptions
	dataPath string
	plots    []string
	legend   []string
}

func NewSingleScorePlot(path, dataPath string, axis AxisOptions, sources []string) *SingleScorePlot {
	return &SingleScorePlot{
		TexFile:  newTexFile(path, "SingleScorePlot", sources),
		Axis:     axis,
		dataPath: dataPath,
	}
}

// AddColumn plots column yIndex of csvFile under the metric's legend entry.
func (p *SingleScorePlot) AddColumn(metric, csvFile string, yIndex int) {
	p.plots = append(p.plots, fmt.Sprintf(
		`        \addplot+ table[ col sep = comma, x expr=\coordindex, y index = {%d}]{%s};`, yIndex, csvFile))
	p.legend = append(p.legend, metric)
}

func (p *SingleScorePlot) compile() []string {
	axis := p.Axis
	axis.XLog = false
	lines := []string{
		fmt.Sprintf(`\pgfplotstableread[col sep=comma] {../%s}\datatable`, p.dataPath),
		`\begin{tikzpicture}`,
	}
	lines = append(lines, axis.lines(
		"        xtick = data,",
		`        xticklabels from table={\datatable}{dataset},`,
		"        x tick label style = {rotate = 45, anchor = east},",
	)...)
	lines = append(lines, p.plots...)
	lines = append(lines, `        \legend{`)
	for _, e := range p.legend {
		lines = append(lines, fmt.Sprintf("           %s,", legend(e)))
	}
	lines = append(lines, "        }")
	return append(lines, `    \end{axis}`, `\end{tikzpicture}`)
}

func (p *SingleScorePlot) Render() (string, error) { return p.render(p.compile()) }

func (p *SingleScorePlot) Close() error { return p.flush(p.compile()) }

// TablePlot draws one line per CSV file, reading the x and y values from
// the given column indices.
type TablePlot struct {
	TexFile
	Axis   AxisOptions
	plots  []string
	legend []string
}

func NewTablePlot(path string, axis AxisOptions, sources []string) *TablePlot {
	return &TablePlot{
		TexFile: newTexFile(path, "TablePlot", sources),
		Axis:    axis,
	}
}

// AddTable plots columns xIndex and yIndex of csvFile under the legend
// entry name.
func (p *TablePlot) AddTable(name, csvFile string, xIndex, yIndex int) {
	p.plots = append(p.plots, fmt.Sprintf(
		`        \addplot+ table[ col sep = comma, x index = {%d}, y index = {%d}]{%s};`, xIndex, yIndex, csvFile))
	p.legend = append(p.legend, name)
}

func (p *TablePlot) compile() []string {
	lines := []string{`\begin{tikzpicture}`}
	lines = append(lines, p.Axis.lines("        nodes near coords,")...)
	lines = append(lines, `        \legend{`)
	for _, e := range p.legend {
		lines = append(lines, fmt.Sprintf("           %s,", legend(e)))
	}
	lines = append(lines, "        }")
	lines = append(lines, p.plots...)
	return append(lines, `    \end{axis}`, `\end{tikzpicture}`)
}

func (p *TablePlot) Render() (string, error) { return p.render(p.compile()) }

func (p *TablePlot) Close() error { return p.flush(p.compile()) }

func legend(metric string) string {
	return Escape(LegendEntry(metric))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
