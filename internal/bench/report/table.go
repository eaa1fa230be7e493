package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

func WriteTable(s *Summary, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Time Series Classification Benchmark ===\n")
	if s.Meta.Source != "" {
		fmt.Fprintf(tw, "Source: %s\n", s.Meta.Source)
	}
	fmt.Fprintf(tw, "Datasets: %d\n\n", s.Meta.Datasets)

	writeRankingTable(tw, s)
	writeScoreTable(tw, s)

	tw.Flush()
}

func writeRankingTable(tw *tabwriter.Writer, s *Summary) {
	fmt.Fprintf(tw, "Ranking (mean across %d datasets)\n\n", s.Meta.Datasets)

	header := []string{"#", "Metric", "Ranking", "-Err", "+Err", "Runtime", "Wins"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, separator(len(header)))

	for i, m := range s.Metrics {
		row := []string{
			fmt.Sprintf("%d", i+1),
			m.Metric,
			fmt.Sprintf("%.4f", m.MeanRanking),
			fmt.Sprintf("%.4f", m.NegError),
			fmt.Sprintf("%.4f", m.PosError),
			fmtSeconds(m.MeanRuntime),
			fmt.Sprintf("%d/%d", m.Wins, s.Meta.Datasets),
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeScoreTable(tw *tabwriter.Writer, s *Summary) {
	if len(s.Metrics) == 0 {
		return
	}
	scores := make([]string, 0, len(s.Metrics[0].MeanScores))
	for name := range s.Metrics[0].MeanScores {
		scores = append(scores, name)
	}
	sort.Strings(scores)

	fmt.Fprintf(tw, "Mean Scores\n\n")

	header := append([]string{"Metric"}, scores...)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, separator(len(header)))

	for _, m := range s.Metrics {
		row := []string{m.Metric}
		for _, name := range scores {
			row = append(row, fmt.Sprintf("%.4f", m.MeanScores[name]))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func separator(n int) string {
	sep := make([]string, n)
	for i := range sep {
		sep[i] = "---"
	}
	return strings.Join(sep, "\t")
}

func fmtSeconds(sec float64) string {
	if sec == 0 {
		return "-"
	}
	if sec < 0.001 {
		return fmt.Sprintf("%.1fµs", sec*1e6)
	}
	if sec < 1 {
		return fmt.Sprintf("%.2fms", sec*1e3)
	}
	return fmt.Sprintf("%.2fs", sec)
}
