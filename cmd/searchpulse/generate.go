package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"searchpulse/internal/dataset"
	"searchpulse/internal/synth"
)

var (
	genRows int
	genDays int
	genSeed int64
	genOut  string
)

// generateCmd synthesizes the fake search-log dataset
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic search-log dataset",
	Long: `Generates a CSV of randomized but plausible search events: a fixed query
vocabulary with per-category click probabilities, a few intentionally weak
queries, typo variants, zero-result searches, and purchases that only follow
clicks. The output is deterministic for a fixed seed.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&genRows, "rows", "n", 0, "Number of events to generate (default from config)")
	generateCmd.Flags().IntVar(&genDays, "days", 0, "Days of history to cover (default from config)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", -1, "Random seed (default from config)")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "Destination path (default from config)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	rows := cfg.Generator.Rows
	if cmd.Flags().Changed("rows") {
		rows = genRows
	}
	days := cfg.Generator.DaysBack
	if cmd.Flags().Changed("days") {
		days = genDays
	}
	seed := cfg.Generator.Seed
	if cmd.Flags().Changed("seed") {
		seed = genSeed
	}
	out := cfg.Dataset.Path
	if genOut != "" {
		out = genOut
	}

	logger.Info("Generating dataset",
		zap.Int("rows", rows),
		zap.Int("days", days),
		zap.Int64("seed", seed),
		zap.String("out", out))

	events, err := synth.Generate(synth.Options{
		Rows:     rows,
		DaysBack: days,
		Seed:     seed,
	})
	if err != nil {
		return err
	}

	if err := dataset.Write(out, events); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	logger.Info("Dataset written", zap.String("path", out), zap.Int("events", len(events)))
	fmt.Printf("Wrote %d events to %s\n", len(events), out)
	return nil
}
