package suite

import "fmt"

type JobKind string

const (
	KindTable                JobKind = "table"
	KindScoreDiagram         JobKind = "score_diagram"
	KindTrend                JobKind = "trend"
	KindCorrelation          JobKind = "correlation"
	KindConsolidationTable   JobKind = "consolidation_table"
	KindConsolidationDiagram JobKind = "consolidation_diagram"
	KindDetailsTable         JobKind = "details_table"
	KindAverageDiagram       JobKind = "average_diagram"
	KindCSV                  JobKind = "csv"
	KindConfusion            JobKind = "confusion"
	KindPerfect              JobKind = "perfect"
)

// Plan describes the report artifacts generated from a set of result files.
type Plan struct {
	Name string `yaml:"name"`
	// Output is the root of the generated tex tree. Empty derives it from
	// every result file's location.
	Output string `yaml:"output"`
	// Inputs names result files; jobs may reference them by name or path.
	Inputs map[string]string `yaml:"inputs"`
	// Details names dataset details files the same way.
	Details        map[string]string `yaml:"details"`
	Params         TemplateParams    `yaml:"params"`
	Templates      []*Template       `yaml:"templates"`
	TrendReference string            `yaml:"trend_reference"`
	Jobs           []Job             `yaml:"jobs" schema:"required,minItems=1"`
}

type Job struct {
	Name    string   `yaml:"name"`
	Kind    JobKind  `yaml:"kind" schema:"required,enum=table|score_diagram|trend|correlation|consolidation_table|consolidation_diagram|details_table|average_diagram|csv|confusion|perfect"`
	Input   string   `yaml:"input"`
	Inputs  []string `yaml:"inputs"`
	Details string   `yaml:"details"`

	// Specific is rendered with the plan and job params. Template, when set,
	// supplies the text instead.
	Specific string         `yaml:"specific"`
	Template string         `yaml:"template"`
	Params   TemplateParams `yaml:"params"`

	Score     string   `yaml:"score"`
	Split     []string `yaml:"split"`
	Exclude   []string `yaml:"exclude"`
	Folder    string   `yaml:"folder"`
	Files     []string `yaml:"files"`
	Property  string   `yaml:"property"`
	SCB       string   `yaml:"scb"`
	SCBs      []string `yaml:"scbs"`
	Normalize bool     `yaml:"normalize"`
	// DropUndefined removes datasets whose confusion values are undefined
	// instead of failing the job.
	DropUndefined bool   `yaml:"drop_undefined"`
	Output        string `yaml:"output"`
}

// Label identifies a job in logs and errors.
func (j *Job) Label(index int) string {
	if j.Name != "" {
		return j.Name
	}
	return fmt.Sprintf("%s#%d", j.Kind, index)
}
