package spec

import (
	"fmt"
	"os"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTestFraction = 0.25
	DefaultSeed         = 1
	DefaultJobs         = -1
)

func LoadFromFile(path string) (*BenchSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*BenchSpec, error) {
	var s BenchSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse spec YAML: %w", err)
	}
	if err := validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func validate(s *BenchSpec) error {
	if s.Datasets.Dir == "" {
		return fmt.Errorf("spec has no dataset dir")
	}
	if len(s.Datasets.Names) == 0 {
		return fmt.Errorf("spec has no datasets")
	}
	for name := range s.Datasets.Domains {
		if !slices.Contains(s.Datasets.Names, name) {
			return fmt.Errorf("domain given for unlisted dataset %q", name)
		}
	}
	if len(s.Metrics) == 0 {
		return fmt.Errorf("spec has no metrics")
	}
	for name, m := range s.Metrics {
		if m.Distance == "" {
			return fmt.Errorf("metric %q has no distance", name)
		}
	}

	if len(s.Order) == 0 {
		for name := range s.Metrics {
			s.Order = append(s.Order, name)
		}
		sort.Strings(s.Order)
	}
	for i, name := range s.Order {
		if _, ok := s.Metrics[name]; !ok {
			return fmt.Errorf("order references unknown metric %q", name)
		}
		if slices.Contains(s.Order[:i], name) {
			return fmt.Errorf("metric %q listed twice in order", name)
		}
	}

	if s.Split.TestFraction == 0 {
		s.Split.TestFraction = DefaultTestFraction
	}
	if s.Split.TestFraction < 0 || s.Split.TestFraction >= 1 {
		return fmt.Errorf("test fraction must be in (0, 1), got %v", s.Split.TestFraction)
	}
	if s.Split.Seed == 0 {
		s.Split.Seed = DefaultSeed
	}
	if s.Jobs == 0 {
		s.Jobs = DefaultJobs
	}
	if s.Runs.Iterations <= 0 {
		s.Runs.Iterations = 1
	}
	if s.Runs.Warmup < 0 {
		s.Runs.Warmup = 0
	}
	return nil
}

// LoadDomains reads a YAML (or JSON) file mapping dataset names to their
// application domain.
func LoadDomains(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read domains file: %w", err)
	}
	domains := make(map[string]string)
	if err := yaml.Unmarshal(data, &domains); err != nil {
		return nil, fmt.Errorf("parse domains file %s: %w", path, err)
	}
	return domains, nil
}

// Validate applies the defaults to a spec assembled in code and checks it
// like a parsed one.
func Validate(s *BenchSpec) error {
	return validate(s)
}
