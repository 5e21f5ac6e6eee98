// Command linesim runs a production-line simulation scenario described by
// a YAML file and prints its aggregate statistics.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/allardneijmeijer/linesim"
	linesimconfig "github.com/allardneijmeijer/linesim/config"
	"github.com/allardneijmeijer/linesim/replicate"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "linesim",
		Short: "Discrete-event simulator for a linear production line",
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		scenarioPath string
		replications int
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scenario file and report aggregate statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := linesimconfig.Load(scenarioPath)
			if err != nil {
				return err
			}
			if err := sc.Validate(); err != nil {
				return err
			}
			if replications > 0 {
				sc.Replications = replications
			}

			cfg := sc.ToLinesimConfig()

			var opts []linesim.Option
			if verbose {
				opts = append(opts, linesim.WithLogger(linesim.NewStderrLogger(linesim.LevelInfo)))
			}

			results, summary, err := replicate.Run(cmd.Context(), cfg, sc.Replications, opts...)
			if err != nil {
				return err
			}

			printReport(sc.Name, results, summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "path to a scenario YAML file")
	cmd.Flags().IntVar(&replications, "replications", 0, "override the scenario's replication count")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log station-level diagnostics to stderr")
	cmd.MarkFlagRequired("scenario")

	return cmd
}

func printReport(name string, results []replicate.Result, summary replicate.Summary) {
	bold := color.New(color.Bold)
	bold.Printf("scenario: %s\n", name)
	fmt.Printf("replications: %d\n", summary.Replications)

	green := color.New(color.FgGreen)
	green.Printf("mean sojourn: %.4f", summary.Mean)
	if summary.Replications > 1 {
		fmt.Printf(" (95%% CI ± %.4f)", summary.CI95)
	}
	fmt.Println()

	for i, r := range results {
		fmt.Printf("  replication %d (seed=%d): mean sojourn=%.4f, elapsed=%.2f\n",
			i, r.Seed, r.MeanSojourn, r.TotalElapsed)
	}
}
