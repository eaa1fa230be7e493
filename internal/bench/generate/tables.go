package generate

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/DjordjeVuckovic/ts-bench/internal/bench/details"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/rank"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/report"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
)

// TableOptions selects the score tables generated for one result file.
type TableOptions struct {
	ResultPath  string
	DetailsPath string
	// Specific is appended to captions, labels and file names, e.g. "size=0.3".
	Specific string
	// Split moves these metrics into a table of their own.
	Split   []string
	Exclude []string
}

// Table writes one score table per metric scheme: the split metrics and
// the remaining ones, each sorted. Empty schemes are skipped.
func (g *Generator) Table(opts TableOptions) ([]string, error) {
	rs, det, err := loadWithDetails(opts.ResultPath, opts.DetailsPath)
	if err != nil {
		return nil, err
	}
	paths, err := PathsFor(opts.ResultPath, g.OutRoot)
	if err != nil {
		return nil, err
	}

	metrics := rs.Metrics()
	split := slices.Clone(opts.Split)
	slices.Sort(split)
	var rest []string
	for _, m := range metrics {
		if !slices.Contains(split, m) {
			rest = append(rest, m)
		}
	}
	slices.Sort(rest)

	var written []string
	for _, scheme := range [][]string{split, rest} {
		if len(scheme) == 0 {
			continue
		}
		joined := strings.Join(scheme, "-")
		specific := compact(opts.Specific)
		path := filepath.Join(paths.TexDir, fmt.Sprintf("table_%s_%s_%s.tex", paths.Archive, joined, specific))
		caption := fmt.Sprintf(`%s Datasets for Metrics %s \gls{scb} %s`,
			paths.Archive, strings.ToUpper(strings.Join(scheme, ", ")), opts.Specific)
		label := fmt.Sprintf("%s_%s_scb_%s", paths.Archive, joined, specific)

		if err := g.scoreTable(rs, det, scheme, opts.Exclude, path, caption, label, []string{opts.ResultPath, opts.DetailsPath}); err != nil {
			return nil, err
		}
		written = append(written, path)
	}
	return written, nil
}

// ConsolidationTable writes the score table of all (sorted) metrics of a
// distance-consolidation run.
func (g *Generator) ConsolidationTable(resultPath, detailsPath string, exclude []string) (string, error) {
	rs, det, err := loadWithDetails(resultPath, detailsPath)
	if err != nil {
		return "", err
	}
	paths, err := PathsFor(resultPath, g.OutRoot)
	if err != nil {
		return "", err
	}

	path := filepath.Join(paths.TexDir, "table_distance_consolidations.tex")
	err = g.scoreTable(rs, det, rs.SortedMetrics(), exclude, path,
		"Datasets for Distance Consolidation Methods", "distance-consolidations",
		[]string{resultPath, detailsPath})
	if err != nil {
		return "", err
	}
	return path, nil
}

func (g *Generator) scoreTable(rs *result.ResultSet, det *details.Details, metrics, exclude []string, path, caption, label string, sources []string) error {
	scores := rs.ScoresExcept(exclude...)
	high := rank.HighScores(rs)

	tbl := report.NewScoreTable(path, metrics, scores, sources, caption, label)
	for _, ds := range rs.Datasets() {
		short, err := det.ShortName(ds)
		if err != nil {
			return err
		}
		values := make([]float64, 0, len(metrics)*len(scores))
		bold := make([]bool, 0, cap(values))
		for _, m := range metrics {
			for _, s := range scores {
				v, err := rs.Score(ds, m, s)
				if err != nil {
					return err
				}
				values = append(values, v)
				bold = append(bold, high.IsHigh(ds, s, m))
			}
		}
		if err := tbl.AddRow(short, values, bold); err != nil {
			return err
		}
	}
	if err := tbl.Close(); err != nil {
		return fmt.Errorf("close score table: %w", err)
	}
	slog.Info("Wrote score table", "path", path, "datasets", rs.Len(), "metrics", len(metrics))
	return nil
}

// DetailsTable writes the dataset descriptor table of an archive.
func (g *Generator) DetailsTable(detailsPath string) (string, error) {
	det, err := details.LoadFromFile(detailsPath)
	if err != nil {
		return "", err
	}
	paths, err := PathsFor(detailsPath, g.OutRoot)
	if err != nil {
		return "", err
	}

	path := filepath.Join(paths.TexDir, fmt.Sprintf("table_%s_datasets.tex", paths.Archive))
	tbl := report.NewDetailsTable(path, []string{detailsPath},
		paths.Archive+" Datasets Details", paths.Archive+"_details")
	for _, r := range det.Records() {
		tbl.AddRecord(r)
	}
	if err := tbl.Close(); err != nil {
		return "", fmt.Errorf("close details table: %w", err)
	}
	slog.Info("Wrote details table", "path", path, "datasets", det.Len())
	return path, nil
}

func loadWithDetails(resultPath, detailsPath string) (*result.ResultSet, *details.Details, error) {
	rs, err := result.LoadFromFile(resultPath)
	if err != nil {
		return nil, nil, err
	}
	det, err := details.LoadFromFile(detailsPath)
	if err != nil {
		return nil, nil, err
	}
	return rs, det, nil
}
