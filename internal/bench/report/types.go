package report

import (
	"runtime"
	"time"
)

// Summary is the console and JSON digest of a result set.
type Summary struct {
	Meta    SummaryMeta     `json:"meta"`
	Metrics []MetricSummary `json:"metrics"`
}

type SummaryMeta struct {
	Source      string          `json:"source,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
	Datasets    int             `json:"datasets"`
	Excluded    []string        `json:"excluded,omitempty"`
	Environment EnvironmentInfo `json:"environment"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}

// MetricSummary aggregates one metric configuration over all datasets.
type MetricSummary struct {
	Metric      string             `json:"metric"`
	MeanRanking float64            `json:"mean_ranking"`
	NegError    float64            `json:"neg_error"`
	PosError    float64            `json:"pos_error"`
	MeanRuntime float64            `json:"mean_runtime"`
	MeanScores  map[string]float64 `json:"mean_scores"`
	Wins        int                `json:"wins"`
}
