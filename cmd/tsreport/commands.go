package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/ts-bench/internal/archive"
	"github.com/DjordjeVuckovic/ts-bench/internal/archive/factory"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/confusion"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/csvexport"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/details"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/generate"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/rank"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/result"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/spec"
	"github.com/DjordjeVuckovic/ts-bench/internal/bench/suite"
	"github.com/DjordjeVuckovic/ts-bench/pkg/config/env"
	"github.com/DjordjeVuckovic/ts-bench/pkg/schema"
	"github.com/spf13/cobra"
)

func newTableCmd(opts *rootOptions) *cobra.Command {
	var o generate.TableOptions
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Write score tables of a result file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := opts.generator().Table(o)
			if err != nil {
				return err
			}
			printWritten(cmd, written...)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.ResultPath, "input", "", "Result JSON file")
	f.StringVar(&o.DetailsPath, "details", "", "Dataset details JSON file")
	f.StringVar(&o.Specific, "specific", "", "Suffix of captions, labels and file names, e.g. \"size = 0.3\"")
	f.StringSliceVar(&o.Split, "split", nil, "Metrics moved into a table of their own")
	f.StringSliceVar(&o.Exclude, "exclude", nil, "Scores left out")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("details")
	return cmd
}

func newScoreDiagramCmd(opts *rootOptions) *cobra.Command {
	var input, specific, score string
	var exclude []string
	cmd := &cobra.Command{
		Use:   "score-diagram",
		Short: "Plot mean runtime against the mean of a score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.generator().ScoreDiagram(input, specific, score, exclude)
			if err != nil {
				return err
			}
			printWritten(cmd, path)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&input, "input", "", "Result JSON file")
	f.StringVar(&specific, "specific", "", "Suffix of the file name")
	f.StringVar(&score, "score", rank.ScoreRanking, "Score to plot, or \"ranking\"")
	f.StringSliceVar(&exclude, "exclude", nil, "Scores left out of the ranking")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newTrendCmd(opts *rootOptions) *cobra.Command {
	var folder, name string
	var files, exclude []string
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Plot the ranking trend over warping window sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = filepath.Base(folder)
			}
			path, err := opts.generator().TrendDiagram(folder, files, name, exclude)
			if err != nil {
				return err
			}
			printWritten(cmd, path)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&folder, "folder", "", "Folder holding the result files and SCB_trends.json")
	f.StringSliceVar(&files, "files", nil, "Result files, one per window size")
	f.StringVar(&name, "name", "", "Diagram name (default: folder name)")
	f.StringSliceVar(&exclude, "exclude", nil, "Scores left out of the ranking")
	_ = cmd.MarkFlagRequired("folder")
	_ = cmd.MarkFlagRequired("files")
	return cmd
}

func newCorrelationCmd(opts *rootOptions) *cobra.Command {
	var o generate.CorrelationOptions
	cmd := &cobra.Command{
		Use:   "correlation",
		Short: "Plot the mean ranking over a dataset property",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := opts.generator().CorrelationDiagram(o)
			if err != nil {
				return err
			}
			printWritten(cmd, written...)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&o.ResultPaths, "inputs", nil, "Result JSON files merged before grouping")
	f.StringVar(&o.DetailsPath, "details", "", "Dataset details JSON file")
	f.StringVar(&o.Property, "property", details.PropertyClasses, "classes, dimensions or domain")
	f.StringVar(&o.SCB, "scb", "", "Warping window size of the results")
	f.BoolVar(&o.Normalize, "normalize", false, "Divide by the global mean ranking")
	f.StringSliceVar(&o.Exclude, "exclude", nil, "Scores left out of the ranking")
	_ = cmd.MarkFlagRequired("inputs")
	_ = cmd.MarkFlagRequired("details")
	return cmd
}

func newConsolidationCmd(opts *rootOptions) *cobra.Command {
	var input, detailsPath string
	var scores, exclude []string
	cmd := &cobra.Command{
		Use:   "consolidation",
		Short: "Write the table and score diagrams of a distance-consolidation run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := opts.generator()
			table, err := g.ConsolidationTable(input, detailsPath, exclude)
			if err != nil {
				return err
			}
			printWritten(cmd, table)
			for _, s := range scores {
				path, err := g.ConsolidationDiagram(input, s, exclude)
				if err != nil {
					return err
				}
				printWritten(cmd, path)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&input, "input", "", "Result JSON file")
	f.StringVar(&detailsPath, "details", "", "Dataset details JSON file")
	f.StringSliceVar(&scores, "scores", []string{rank.ScoreRanking}, "Scores plotted in one diagram each")
	f.StringSliceVar(&exclude, "exclude", nil, "Scores left out")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("details")
	return cmd
}

func newDetailsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "details <details.json>",
		Short: "Write the dataset details table of an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.generator().DetailsTable(args[0])
			if err != nil {
				return err
			}
			printWritten(cmd, path)
			return nil
		},
	}
	return cmd
}

func newAverageCmd(opts *rootOptions) *cobra.Command {
	var input, detailsPath, score string
	var exclude []string
	cmd := &cobra.Command{
		Use:   "average",
		Short: "Plot one score per dataset with the metric averages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.generator().AverageDiagram(input, detailsPath, score, exclude)
			if err != nil {
				return err
			}
			printWritten(cmd, path)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&input, "input", "", "Result JSON file")
	f.StringVar(&detailsPath, "details", "", "Dataset details JSON file")
	f.StringVar(&score, "score", result.ScoreAccuracy, "Score to plot, or \"ranking\"")
	f.StringSliceVar(&exclude, "exclude", nil, "Scores left out of the ranking")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("details")
	return cmd
}

func newCSVCmd() *cobra.Command {
	var rankingDir string
	cmd := &cobra.Command{
		Use:   "csv <result.json>",
		Short: "Export a result file as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := result.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			path, err := csvexport.WriteWideFile(rs, args[0])
			if err != nil {
				return err
			}
			printWritten(cmd, path)

			if rankingDir == "" {
				return nil
			}
			written, err := csvexport.WriteRankingRuntime(rs, rankingDir)
			if err != nil {
				return err
			}
			printWritten(cmd, written...)
			return nil
		},
	}
	cmd.Flags().StringVar(&rankingDir, "ranking-runtime", "", "Also write per-dataset runtime rankings into this directory")
	return cmd
}

func newConfusionCmd() *cobra.Command {
	var input, detailsPath, output string
	var dropUndefined bool
	cmd := &cobra.Command{
		Use:   "confusion",
		Short: "Add confusion values derived from accuracy, recall and F1",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := result.LoadFromFile(input)
			if err != nil {
				return err
			}
			det, err := details.LoadFromFile(detailsPath)
			if err != nil {
				return err
			}

			if dropUndefined {
				dropped, err := confusion.AddDerivedDropping(rs, det)
				if err != nil {
					return err
				}
				if len(dropped) > 0 {
					slog.Warn("Dropped datasets with undefined confusion values", "datasets", dropped)
				}
			} else {
				skipped, err := confusion.AddDerived(rs, det)
				if err != nil {
					return err
				}
				if len(skipped) > 0 {
					for _, s := range skipped {
						slog.Error("Confusion values undefined", "dataset", s.Dataset, "metric", s.Metric)
					}
					return fmt.Errorf("confusion values undefined for %d records, rerun with --drop-undefined", len(skipped))
				}
			}

			if output == "" {
				output = input
			}
			if err := result.WriteFile(rs, output); err != nil {
				return err
			}
			printWritten(cmd, output)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&input, "input", "", "Result JSON file")
	f.StringVar(&detailsPath, "details", "", "Dataset details JSON file")
	f.StringVarP(&output, "output", "o", "", "Output file (default: overwrite the input)")
	f.BoolVar(&dropUndefined, "drop-undefined", false, "Drop datasets with undefined values instead of failing")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("details")
	return cmd
}

func newPerfectCmd() *cobra.Command {
	var inputs, scbs []string
	var output string
	cmd := &cobra.Command{
		Use:   "perfect",
		Short: "Collect metrics that classified a dataset without errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(scbs) > 0 && len(inputs) != len(scbs) {
				return fmt.Errorf("got %d inputs but %d window sizes", len(inputs), len(scbs))
			}
			ps := rank.NewPerfectScores()
			for i, in := range inputs {
				rs, err := result.LoadFromFile(in)
				if err != nil {
					return err
				}
				scb, err := windowLabel(rs, scbs, i)
				if err != nil {
					return fmt.Errorf("%s: %w", in, err)
				}
				n := ps.Add(rs, scb)
				slog.Info("Collected perfect scores", "input", in, "scb", scb, "records", n)
			}
			if err := ps.WriteFile(output); err != nil {
				return err
			}
			printWritten(cmd, output)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&inputs, "inputs", nil, "Result JSON files")
	f.StringSliceVar(&scbs, "scbs", nil, "Warping window size of every input (default: the window recorded in each file)")
	f.StringVarP(&output, "output", "o", "perfect_scores.json", "Output file")
	_ = cmd.MarkFlagRequired("inputs")
	return cmd
}

// windowLabel returns scbs[i], or the window recorded in rs when no sizes
// were given.
func windowLabel(rs *result.ResultSet, scbs []string, i int) (string, error) {
	if len(scbs) > 0 {
		return scbs[i], nil
	}
	w, ok := rs.Window()
	if !ok {
		return "", fmt.Errorf("no window recorded, pass --scbs")
	}
	return strconv.FormatFloat(w, 'g', -1, 64), nil
}

func newDropScoresCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "drop-scores <result.json> <score>...",
		Short: "Remove scores from every record of a result file",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := result.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			rs.DropScores(args[1:]...)
			if output == "" {
				output = args[0]
			}
			if err := result.WriteFile(rs, output); err != nil {
				return err
			}
			printWritten(cmd, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: overwrite the input)")
	return cmd
}

func newSubsetCmd() *cobra.Command {
	var metrics []string
	var output string
	cmd := &cobra.Command{
		Use:   "subset <result.json>",
		Short: "Write a result file restricted to some metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := result.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			sub, err := rs.Subset(metrics)
			if err != nil {
				return err
			}
			if err := result.WriteFile(sub, output); err != nil {
				return err
			}
			printWritten(cmd, output)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&metrics, "metrics", nil, "Metrics to keep, in output order")
	f.StringVarP(&output, "output", "o", "", "Output file")
	_ = cmd.MarkFlagRequired("metrics")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newGroupsCmd() *cobra.Command {
	var by string
	cmd := &cobra.Command{
		Use:   "groups <details.json>",
		Short: "List the datasets of an archive by class count, dimensionality or domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			det, err := details.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			groups, err := det.Partition(by)
			if err != nil {
				return err
			}
			for _, g := range groups {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", g.Label, strings.Join(g.Datasets, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&by, "by", details.PropertyClasses, "Property: classes, dimensions or domain")
	return cmd
}

func newRenameMetricCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "rename-metric <result.json> <from> <to>",
		Short: "Rename a metric in every dataset of a result file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := result.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if err := rs.RenameMetric(args[1], args[2]); err != nil {
				return err
			}
			if output == "" {
				output = args[0]
			}
			if err := result.WriteFile(rs, output); err != nil {
				return err
			}
			printWritten(cmd, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: overwrite the input)")
	return cmd
}

func newPlanCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <plan.yaml>",
		Short: "Run every job of a report plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lp, err := suite.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if opts.out != "" {
				lp.Plan.Output = opts.out
			}
			if opts.reference != "" {
				lp.Plan.TrendReference = opts.reference
			}
			written, err := suite.Execute(cmd.Context(), lp)
			if err != nil {
				return err
			}
			printWritten(cmd, written...)
			return nil
		},
	}
	return cmd
}

func newArchiveCmd() *cobra.Command {
	var name, envPath string
	cmd := &cobra.Command{
		Use:   "archive <result.json>...",
		Short: "Store result files in the configured archive (ARCHIVE_TYPE)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.LoadDotEnv(envFlag(), envPath); err != nil {
				slog.Info("Skipping .env ...", "error", err)
			}
			cfg, err := factory.LoadEnv()
			if err != nil {
				return err
			}
			a, err := factory.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			for _, path := range args {
				rs, err := result.LoadFromFile(path)
				if err != nil {
					return err
				}
				runName := name
				if runName == "" {
					runName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				}
				run := archive.NewRun(runName, rs)
				if err := a.Save(cmd.Context(), run); err != nil {
					return fmt.Errorf("archive %s: %w", path, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), run.ID.String())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Run name (default: result file name)")
	cmd.Flags().StringVar(&envPath, "env-file", ".env", "Optional .env file")
	return cmd
}

func newSchemaCmd() *cobra.Command {
	var output string
	targets := map[string]any{
		"plan":  suite.Plan{},
		"bench": spec.BenchSpec{},
	}
	cmd := &cobra.Command{
		Use:       "schema {plan|bench}",
		Short:     "Print the JSON schema of report plans or bench specs",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"plan", "bench"},
		RunE: func(cmd *cobra.Command, args []string) error {
			g := schema.NewGenerator("yaml", "https://schemas.ts-bench.dev/v1")
			data, err := g.GenerateJSONSchema(targets[args[0]])
			if err != nil {
				return fmt.Errorf("generate %s schema: %w", args[0], err)
			}
			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write schema: %w", err)
			}
			printWritten(cmd, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}
