package suite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DjordjeVuckovic/ts-bench/internal/apperr"
	"gopkg.in/yaml.v3"
)

type LoadedPlan struct {
	Plan     *Plan
	Registry *TemplateRegistry
	// Dir resolves relative input paths. Empty keeps them relative to the
	// working directory.
	Dir string
}

func LoadFromFile(path string) (*LoadedPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}
	loaded, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	loaded.Dir = filepath.Dir(path)
	return loaded, nil
}

func Parse(data []byte) (*LoadedPlan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, apperr.NewValidationWrap("parse plan YAML", err)
	}

	registry := NewTemplateRegistry()
	for _, t := range p.Templates {
		if err := registry.Register(t); err != nil {
			return nil, apperr.NewValidationWrap("register template", err)
		}
	}
	if err := validate(&p, registry); err != nil {
		return nil, err
	}
	return &LoadedPlan{Plan: &p, Registry: registry}, nil
}

func validate(p *Plan, registry *TemplateRegistry) error {
	if len(p.Jobs) == 0 {
		return apperr.NewValidation("plan has no jobs")
	}

	for i := range p.Jobs {
		j := &p.Jobs[i]
		label := j.Label(i)
		if j.Template != "" {
			if _, ok := registry.Get(j.Template); !ok {
				return apperr.NewValidation(fmt.Sprintf("job %q references unknown template %q", label, j.Template))
			}
		}
		if err := checkRequired(j, label); err != nil {
			return err
		}
	}
	return nil
}

func checkRequired(j *Job, label string) error {
	var missing string
	switch j.Kind {
	case KindTable, KindConsolidationTable, KindConfusion:
		switch {
		case j.Input == "":
			missing = "input"
		case j.Details == "":
			missing = "details"
		}
	case KindScoreDiagram, KindConsolidationDiagram:
		switch {
		case j.Input == "":
			missing = "input"
		case j.Score == "":
			missing = "score"
		}
	case KindAverageDiagram:
		switch {
		case j.Input == "":
			missing = "input"
		case j.Details == "":
			missing = "details"
		case j.Score == "":
			missing = "score"
		}
	case KindTrend:
		switch {
		case j.Folder == "":
			missing = "folder"
		case len(j.Files) == 0:
			missing = "files"
		}
	case KindCorrelation:
		switch {
		case len(j.Inputs) == 0:
			missing = "inputs"
		case j.Details == "":
			missing = "details"
		case j.Property == "":
			missing = "property"
		}
	case KindDetailsTable:
		if j.Details == "" {
			missing = "details"
		}
	case KindCSV:
		if j.Input == "" {
			missing = "input"
		}
	case KindPerfect:
		switch {
		case len(j.Inputs) == 0:
			missing = "inputs"
		case len(j.SCBs) != len(j.Inputs):
			return apperr.NewValidation(fmt.Sprintf("job %q needs one scb per input", label))
		case j.Output == "":
			missing = "output"
		}
	case "":
		return apperr.NewValidation(fmt.Sprintf("job %q has no kind", label))
	default:
		return apperr.NewValidation(fmt.Sprintf("job %q has unknown kind %q", label, j.Kind))
	}

	if missing != "" {
		return apperr.NewValidation(fmt.Sprintf("job %q (%s) requires %s", label, j.Kind, missing))
	}
	return nil
}
