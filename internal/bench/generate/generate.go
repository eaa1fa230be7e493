// Package generate turns result files into the LaTeX tables, pgfplots
// diagrams and CSV files of the written report.
package generate

import (
	"strings"
	"unicode"
)

const (
	DefaultTrendReference = "bagdtw"
	DefaultSpreadStep     = 0.1
)

type Generator struct {
	// OutRoot overrides the output root derived from the result file path.
	OutRoot string
	// TrendReference is the metric whose window argument identifies the
	// constraint band of a result file.
	TrendReference string
	// SpreadStep is the x distance between neighbouring correlation series.
	SpreadStep float64
}

func New(outRoot string) *Generator {
	return &Generator{
		OutRoot:        outRoot,
		TrendReference: DefaultTrendReference,
		SpreadStep:     DefaultSpreadStep,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
