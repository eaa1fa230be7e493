package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/ts-bench/internal/bench/details"
)

// ScoreTable is a longtable with one column group per metric and one column
// per score inside each group.
type ScoreTable struct {
	TexFile
	columns string
	metrics []string
	scores  []string
}

// ScoreColumns builds the column spec |l|cc..c|cc..c| for the given counts.
func ScoreColumns(metrics, scores int) string {
	group := strings.Repeat("c", scores)
	groups := make([]string, metrics)
	for i := range groups {
		groups[i] = group
	}
	return "|l|" + strings.Join(groups, "|") + "|"
}

func NewScoreTable(path string, metrics, scores, sources []string, caption, label string) *ScoreTable {
	t := &ScoreTable{
		TexFile: newTexFile(path, "ScoreTable", sources),
		columns: ScoreColumns(len(metrics), len(scores)),
		metrics: metrics,
		scores:  scores,
	}
	t.Caption, t.Label = caption, label
	return t
}

// AddRow appends a dataset row. bold marks the cells holding a high score.
func (t *ScoreTable) AddRow(name string, values []float64, bold []bool) error {
	if want := len(t.metrics) * len(t.scores); len(values) != want || len(bold) != want {
		return fmt.Errorf("row %q has %d values and %d bold flags, table has %d cells", name, len(values), len(bold), want)
	}
	cells := []string{name}
	for i, v := range values {
		cells = append(cells, FormatCell(v, bold[i]))
	}
	t.add("\t" + row(cells))
	return nil
}

func (t *ScoreTable) compile() []string {
	groups := []string{""}
	for _, m := range t.metrics {
		groups = append(groups, fmt.Sprintf(`\multicolumn{%d}{c|}{%s}`, len(t.scores), HeaderTranslation(m)))
	}
	short := []string{"Datasets"}
	for range t.metrics {
		for _, s := range t.scores {
			short = append(short, ShortLabel(s))
		}
	}

	lines := []string{
		fmt.Sprintf(`\begin{longtable}{%s}`, t.columns),
		`	\hline`,
		"\t" + row(groups),
		"\t" + row(short),
		`	\hline`,
		`	\endhead`,
	}
	lines = append(lines, t.body...)
	return append(lines,
		`	\hline`,
		fmt.Sprintf(`	\caption{%s}\label{tab:%s}%s`, t.Caption, t.Label, eol),
		`\end{longtable}`,
	)
}

func (t *ScoreTable) Render() (string, error) { return t.render(t.compile()) }

func (t *ScoreTable) Close() error { return t.flush(t.compile()) }

var detailsHeader = []string{
	"Short", "Name", "Dim.", "Inst.", "Length", "Classes", "Equal", "Missing", "Train", "Test", "Imbalance",
}

// DetailsTable lists the descriptors of every dataset of an archive.
type DetailsTable struct {
	TexFile
}

func NewDetailsTable(path string, sources []string, caption, label string) *DetailsTable {
	t := &DetailsTable{TexFile: newTexFile(path, "DetailsTable", sources)}
	t.Caption, t.Label = caption, label
	return t
}

func (t *DetailsTable) AddRecord(r details.Record) {
	equal := "no"
	if r.UniqueLengths {
		equal = "yes"
	}
	t.add("\t" + row([]string{
		r.ShortName,
		Escape(r.Name),
		strconv.Itoa(r.Dimensions),
		strconv.Itoa(r.Instances),
		strconv.Itoa(r.Timestamps),
		strconv.Itoa(r.Classes),
		equal,
		strconv.Itoa(r.MissingValues),
		strconv.Itoa(r.TrainInstances),
		strconv.Itoa(r.TestInstances),
		strings.ReplaceAll(r.Imbalance, "%", `\%`),
	}))
}

func (t *DetailsTable) compile() []string {
	lines := []string{
		`\begin{longtable}{|l|l|` + strings.Repeat("r|", len(detailsHeader)-2) + `}`,
		`	\hline`,
		"\t" + row(detailsHeader),
		`	\hline`,
		`	\endhead`,
	}
	lines = append(lines, t.body...)
	return append(lines,
		`	\hline`,
		fmt.Sprintf(`	\caption{%s}\label{tab:%s}%s`, t.Caption, t.Label, eol),
		`\end{longtable}`,
	)
}

func (t *DetailsTable) Render() (string, error) { return t.render(t.compile()) }

func (t *DetailsTable) Close() error { return t.flush(t.compile()) }

// CorrelationTable shows the mean ranking of every metric per property value.
type CorrelationTable struct {
	TexFile
	property string
	metrics  []string
}

func NewCorrelationTable(path, property string, metrics, sources []string, caption, label string) *CorrelationTable {
	t := &CorrelationTable{
		TexFile:  newTexFile(path, "CorrelationTable", sources),
		property: property,
		metrics:  metrics,
	}
	t.Caption, t.Label = caption, label
	return t
}

// AddRow appends the means of one property value, in metric order.
func (t *CorrelationTable) AddRow(value string, means []float64, winner string) error {
	if len(means) != len(t.metrics) {
		return fmt.Errorf("row %q has %d values, table has %d metrics", value, len(means), len(t.metrics))
	}
	cells := []string{Escape(value)}
	for i, v := range means {
		cells = append(cells, FormatCell(v, t.metrics[i] == winner))
	}
	t.add("\t" + row(cells))
	return nil
}

func (t *CorrelationTable) compile() []string {
	header := []string{Escape(t.property)}
	for _, m := range t.metrics {
		header = append(header, HeaderTranslation(m))
	}
	lines := []string{
		`\begin{longtable}{|l|` + strings.Repeat("c|", len(t.metrics)) + `}`,
		`	\hline`,
		"\t" + row(header),
		`	\hline`,
		`	\endhead`,
	}
	lines = append(lines, t.body...)
	return append(lines,
		`	\hline`,
		fmt.Sprintf(`	\caption{%s}\label{tab:%s}%s`, t.Caption, t.Label, eol),
		`\end{longtable}`,
	)
}

func (t *CorrelationTable) Render() (string, error) { return t.render(t.compile()) }

func (t *CorrelationTable) Close() error { return t.flush(t.compile()) }
