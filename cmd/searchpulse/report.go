package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"searchpulse/internal/dataset"
	"searchpulse/internal/metrics"
	"searchpulse/internal/opportunity"
	"searchpulse/internal/report"
	"searchpulse/internal/simulate"
	"searchpulse/internal/types"
)

var reportPlain bool

// reportCmd prints a one-shot KPI report without the interactive dashboard
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a KPI report for the dataset",
	Long: `Computes the full KPI report for the configured dataset and prints it:
overall totals, top queries by volume, the opportunity ranking at the
configured thresholds, and a lift projection for the top opportunity.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportPlain, "plain", false, "Print raw markdown without terminal styling")
}

func runReport(cmd *cobra.Command, args []string) error {
	events, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		return err
	}
	logger.Info("Dataset loaded", zap.String("path", cfg.Dataset.Path), zap.Int("events", len(events)))

	rep := metrics.Compute(events)

	d := cfg.Dashboard
	opps, err := opportunity.Find(rep.Queries, d.MinImpressions, d.TargetCTR)
	if err != nil {
		return err
	}

	var sim *types.SimulationResult
	if len(opps) > 0 {
		result, err := simulate.Run(simulate.Params{
			Impressions:    opps[0].Impressions,
			CTR:            opps[0].CTR,
			Lift:           d.Lift,
			ConversionRate: d.ConversionRate,
			AvgOrderValue:  d.AvgOrderValue,
		})
		if err != nil {
			return err
		}
		sim = &result
	}

	md := report.Build(rep, opps, sim, report.Params{
		MinImpressions: d.MinImpressions,
		TargetCTR:      d.TargetCTR,
		Lift:           d.Lift,
		ConversionRate: d.ConversionRate,
		AvgOrderValue:  d.AvgOrderValue,
		TopQueries:     d.TopQueries,
	})

	if reportPlain {
		fmt.Print(md)
		return nil
	}

	styled, err := report.Render(md, 100)
	if err != nil {
		// Styling failure is not worth losing the report over.
		fmt.Print(md)
		return nil
	}
	fmt.Print(styled)
	return nil
}
