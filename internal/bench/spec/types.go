package spec

type BenchSpec struct {
	Datasets DatasetsConfig          `yaml:"datasets" schema:"required"`
	Metrics  map[string]MetricConfig `yaml:"metrics" schema:"required"`
	// Order fixes the metric order of the result file. Defaults to the
	// sorted metric names.
	Order  []string    `yaml:"order"`
	Window *float64    `yaml:"window"`
	Jobs   int         `yaml:"njobs"`
	Runs   RunsConfig  `yaml:"runs"`
	Split  SplitConfig `yaml:"split"`
	Output string      `yaml:"output"`
}

type DatasetsConfig struct {
	Dir   string   `yaml:"dir"`
	Names []string `yaml:"names"`
	// Domains maps dataset names to their application domain.
	Domains map[string]string `yaml:"domains,omitempty"`
}

type MetricConfig struct {
	Distance string         `yaml:"distance" schema:"required"`
	Args     map[string]any `yaml:"args,omitempty"`
}

type RunsConfig struct {
	Warmup     int `yaml:"warmup"`
	Iterations int `yaml:"iterations"`
}

type SplitConfig struct {
	TestFraction float64 `yaml:"test_fraction"`
	Seed         uint64  `yaml:"seed"`
}
