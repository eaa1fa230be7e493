package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/ts-bench/internal/bench/generate"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	out       string
	reference string
	verbose   bool
}

func (o *rootOptions) generator() *generate.Generator {
	g := generate.New(o.out)
	if o.reference != "" {
		g.TrendReference = o.reference
	}
	return g
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "tsreport",
		Short:         "Generate LaTeX tables and pgfplots diagrams from benchmark results",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().StringVar(&opts.out, "out", "", "Root of the generated tex tree (default: next to each result file)")
	root.PersistentFlags().StringVar(&opts.reference, "trend-reference", "", "Metric that trend diagrams are normalized against")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newTableCmd(opts),
		newScoreDiagramCmd(opts),
		newTrendCmd(opts),
		newCorrelationCmd(opts),
		newConsolidationCmd(opts),
		newDetailsCmd(opts),
		newAverageCmd(opts),
		newCSVCmd(),
		newConfusionCmd(),
		newPerfectCmd(),
		newRenameMetricCmd(),
		newDropScoresCmd(),
		newSubsetCmd(),
		newGroupsCmd(),
		newPlanCmd(opts),
		newArchiveCmd(),
		newSchemaCmd(),
	)
	return root
}

func printWritten(cmd *cobra.Command, paths ...string) {
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
}

func envFlag() string {
	return os.Getenv("ENV")
}
