package suite

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"

	"github.com/DjordjeVuckovic/ts-bench/internal/bench/confusion"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/csvexport"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/details"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/generate"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/rank"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
)

// Execute runs the plan's jobs in order and returns every written file.
// It stops at the first failing job.
func Execute(ctx context.Context, lp *LoadedPlan) ([]string, error) {
	p := lp.Plan
	g := generate.New(lp.resolve(p.Output))
	if p.TrendReference != "" {
		g.TrendReference = p.TrendReference
	}

	slog.Info("Executing report plan", "name", p.Name, "jobs", len(p.Jobs))

	var written []string
	for i := range p.Jobs {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		j := &p.Jobs[i]
		label := j.Label(i)

		files, err := lp.run(g, j)
		if err != nil {
			return written, fmt.Errorf("job %q: %w", label, err)
		}
		slog.Info("Job done", "job", label, "kind", j.Kind, "files", len(files))
		written = append(written, files...)
	}
	return written, nil
}

func (lp *LoadedPlan) run(g *generate.Generator, j *Job) ([]string, error) {
	switch j.Kind {
	case KindTable:
		specific, err := lp.specific(j)
		if err != nil {
			return nil, err
		}
		return g.Table(generate.TableOptions{
			ResultPath:  lp.input(j.Input),
			DetailsPath: lp.details(j.Details),
			Specific:    specific,
			Split:       j.Split,
			Exclude:     j.Exclude,
		})
	case KindScoreDiagram:
		specific, err := lp.specific(j)
		if err != nil {
			return nil, err
		}
		return single(g.ScoreDiagram(lp.input(j.Input), specific, j.Score, j.Exclude))
	case KindTrend:
		name, err := lp.specific(j)
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = filepath.Base(j.Folder)
		}
		return single(g.TrendDiagram(lp.resolve(j.Folder), j.Files, name, j.Exclude))
	case KindCorrelation:
		inputs := make([]string, len(j.Inputs))
		for i, in := range j.Inputs {
			inputs[i] = lp.input(in)
		}
		return g.CorrelationDiagram(generate.CorrelationOptions{
			ResultPaths: inputs,
			DetailsPath: lp.details(j.Details),
			Property:    j.Property,
			SCB:         j.SCB,
			Normalize:   j.Normalize,
			Exclude:     j.Exclude,
		})
	case KindConsolidationTable:
		return single(g.ConsolidationTable(lp.input(j.Input), lp.details(j.Details), j.Exclude))
	case KindConsolidationDiagram:
		return single(g.ConsolidationDiagram(lp.input(j.Input), j.Score, j.Exclude))
	case KindDetailsTable:
		return single(g.DetailsTable(lp.details(j.Details)))
	case KindAverageDiagram:
		return single(g.AverageDiagram(lp.input(j.Input), lp.details(j.Details), j.Score, j.Exclude))
	case KindCSV:
		path := lp.input(j.Input)
		rs, err := result.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		return single(csvexport.WriteWideFile(rs, path))
	case KindConfusion:
		return lp.confusion(j)
	case KindPerfect:
		return lp.perfect(j)
	default:
		return nil, fmt.Errorf("unknown job kind %q", j.Kind)
	}
}

func (lp *LoadedPlan) confusion(j *Job) ([]string, error) {
	path := lp.input(j.Input)
	rs, err := result.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	det, err := details.LoadFromFile(lp.details(j.Details))
	if err != nil {
		return nil, err
	}

	if j.DropUndefined {
		dropped, err := confusion.AddDerivedDropping(rs, det)
		if err != nil {
			return nil, err
		}
		if len(dropped) > 0 {
			slog.Warn("Dropped datasets with undefined confusion values", "datasets", dropped)
		}
	} else {
		skipped, err := confusion.AddDerived(rs, det)
		if err != nil {
			return nil, err
		}
		if len(skipped) > 0 {
			return nil, fmt.Errorf("confusion values undefined for datasets %v", confusion.SkippedDatasets(skipped))
		}
	}

	out := path
	if j.Output != "" {
		out = lp.resolve(j.Output)
	}
	if err := result.WriteFile(rs, out); err != nil {
		return nil, err
	}
	return []string{out}, nil
}

func (lp *LoadedPlan) perfect(j *Job) ([]string, error) {
	ps := rank.NewPerfectScores()
	for i, in := range j.Inputs {
		rs, err := result.LoadFromFile(lp.input(in))
		if err != nil {
			return nil, err
		}
		n := ps.Add(rs, j.SCBs[i])
		slog.Debug("Collected perfect scores", "input", in, "scb", j.SCBs[i], "records", n)
	}

	out := lp.resolve(j.Output)
	if err := ps.WriteFile(out); err != nil {
		return nil, err
	}
	return []string{out}, nil
}

// specific renders the job's specific text, or its template, with the plan
// params overridden by the job params.
func (lp *LoadedPlan) specific(j *Job) (string, error) {
	params := make(TemplateParams, len(lp.Plan.Params)+len(j.Params))
	maps.Copy(params, lp.Plan.Params)
	maps.Copy(params, j.Params)

	if j.Template != "" {
		return lp.Registry.Render(j.Template, params)
	}
	if j.Specific == "" {
		return "", nil
	}
	return render(j.Label(0), j.Specific, params)
}

func (lp *LoadedPlan) input(ref string) string {
	if path, ok := lp.Plan.Inputs[ref]; ok {
		return lp.resolve(path)
	}
	return lp.resolve(ref)
}

func (lp *LoadedPlan) details(ref string) string {
	if path, ok := lp.Plan.Details[ref]; ok {
		return lp.resolve(path)
	}
	return lp.resolve(ref)
}

func (lp *LoadedPlan) resolve(path string) string {
	if path == "" || lp.Dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(lp.Dir, path)
}

func single(path string, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}
