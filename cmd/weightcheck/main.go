package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"weightcheck/adapters/tabular"
	dg "weightcheck/domain/diagnostic"
	"weightcheck/domain/survey"
	"weightcheck/internal"
	"weightcheck/internal/config"
	"weightcheck/internal/diagnostic"
)

func main() {
	// Optional .env for local runs; absence is fine.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "weightcheck",
		Short: "Weighting diagnostics for survey data against population targets",
	}

	rootCmd.AddCommand(newDiagnoseCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newDiagnoseCmd() *cobra.Command {
	var dataFile string
	var targetFile string
	var sheet string
	var weightColumns []string
	var withSummary bool

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Compare weighted and unweighted proportions against a target",
		Long: `Compute the diagnostic table for a survey dataset: one row per target
(variable, level) pair with unweighted and weighted observed proportions,
the target proportion, and both absolute errors.

Example: weightcheck diagnose --data responses.csv --target targets.csv --summary`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))

			if dataFile == "" {
				dataFile = cfg.Data.DatasetFile
			}
			if targetFile == "" {
				targetFile = cfg.Data.TargetFile
			}
			if sheet == "" {
				sheet = cfg.Data.SheetName
			}
			if dataFile == "" || targetFile == "" {
				return fmt.Errorf("both --data and --target are required (or DATASET_FILE / TARGET_FILE)")
			}

			var data *survey.Dataset
			var targetRows []survey.TargetRow

			// Inputs are independent files, load them concurrently.
			var g errgroup.Group
			g.Go(func() error {
				var err error
				data, err = tabular.NewReader(dataFile).WithSheet(sheet).ReadDataset()
				return err
			})
			g.Go(func() error {
				var err error
				targetRows, err = tabular.NewReader(targetFile).WithSheet(sheet).ReadTargetTable()
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}
			log.Info("loaded %d respondents from %s, %d target rows from %s", data.Len(), dataFile, len(targetRows), targetFile)

			candidates := cfg.Diagnostics.WeightCandidates
			if len(weightColumns) > 0 {
				candidates = weightColumns
			}
			computer := diagnostic.NewComputerWithCandidates(candidates)
			opts := diagnostic.Options{Target: targetRows}

			if !withSummary {
				table, err := computer.Compute(data, opts)
				if err != nil {
					return err
				}
				printTable(cmd.OutOrStdout(), table)
				return nil
			}

			table, summary, err := computer.ComputeWithSummary(data, opts)
			if err != nil {
				return err
			}
			printTable(cmd.OutOrStdout(), table)
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "survey dataset file (CSV or XLSX)")
	cmd.Flags().StringVar(&targetFile, "target", "", "flat target table file (variable, level, proportion)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Excel sheet name (default Sheet1)")
	cmd.Flags().StringSliceVar(&weightColumns, "weight-columns", nil, "ordered weight column candidates")
	cmd.Flags().BoolVar(&withSummary, "summary", false, "print the weighting-quality summary")
	return cmd
}

func printTable(w io.Writer, table *dg.Table) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "variable\tlevel\tprop_original\tprop_weighted\ttarget\terror_original\terror_weighted")
	for _, r := range table.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			r.Variable, r.Level, r.PropOriginal, r.PropWeighted, r.Target, r.ErrorOriginal, r.ErrorWeighted)
	}
	tw.Flush()
}

func printSummary(w io.Writer, s *dg.Summary) {
	fmt.Fprintf(w, "\nrows: %d  effective sample size: %.1f  design effect: %.3f\n",
		s.SampleSize, s.EffectiveSampleSize, s.DesignEffect)
	fmt.Fprintf(w, "mean |error|: %.4f -> %.4f  max |error|: %.4f -> %.4f  reduction: %.1f%%\n",
		s.MeanErrorOriginal, s.MeanErrorWeighted, s.MaxErrorOriginal, s.MaxErrorWeighted, s.ErrorReduction*100)
	for _, v := range s.Variables {
		fmt.Fprintf(w, "%s: mean |error| %.4f -> %.4f  chi2=%.3f (df=%d, p=%.3f)\n",
			v.Variable, v.MeanErrorOriginal, v.MeanErrorWeighted, v.ChiSquare, v.DegreesFreedom, v.PValue)
	}
}
