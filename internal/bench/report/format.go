package report

import (
	"fmt"
	"strings"
)

const floatPattern = "%.4f"

var headerTranslations = map[string]string{
	"dagdtw":          `DAGDTW (sect. \ref{sct:dagdtw})`,
	"bagdtw":          `BAGDTW (sect. \ref{sct:bagdtw})`,
	"dtw":             `DTW \cite{bellman1959adaptive}`,
	"sdtw":            `SDTW \cite{cuturi2017soft}`,
	"ddtw":            `DDTW \cite{keogh2001derivative}`,
	"wdtw":            `WDTW \cite{jeong2011weighted}`,
	"wddtw":           `WWDTW \cite{jeong2011weighted}`,
	"agdtw_manhattan": `Manhattan (equation \ref{equ:manhattan-gen})`,
	"agdtw_euclidean": `Euclidean (equation \ref{equ:euclidean-gen})`,
	"agdtw_chebyshev": `Chebishev (equation \ref{equ:chebishev-gen})`,
	"agdtw_minkowski": `Minkowski (equation \ref{equ:minkowski-gen})`,
}

// HeaderTranslation returns the table header of a metric. Unknown metrics
// are escaped and returned as they are.
func HeaderTranslation(metric string) string {
	if h, ok := headerTranslations[metric]; ok {
		return h
	}
	return Escape(metric)
}

// Escape makes a plain name safe for LaTeX text mode.
func Escape(s string) string {
	r := strings.NewReplacer(`\`, `\textbackslash{}`, "_", `\_`, "%", `\%`, "&", `\&`, "#", `\#`, "$", `\$`)
	return r.Replace(s)
}

// ShortLabel cuts a score name to its first five characters.
func ShortLabel(label string) string {
	r := []rune(label)
	if len(r) > 5 {
		r = r[:5]
	}
	return string(r)
}

// FormatCell renders a number in math mode, bold when it is a high score.
func FormatCell(v float64, bold bool) string {
	num := fmt.Sprintf(floatPattern, v)
	if bold {
		return fmt.Sprintf(`$\boldsymbol{%s}$`, num)
	}
	return fmt.Sprintf("$%s$", num)
}

// FormatRatios renders fractions as whole percentages.
func FormatRatios(data []float64) []string {
	out := make([]string, len(data))
	for i, x := range data {
		out[i] = fmt.Sprintf(`%.0f\%%`, x*100)
	}
	return out
}

// LegendEntry strips the manhattan suffix used by the generic distance
// family from a metric name.
func LegendEntry(metric string) string {
	return strings.ReplaceAll(metric, "_manhattan", "")
}

func row(cells []string) string {
	return strings.Join(cells, " & ") + " " + eol
}
