package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"searchpulse/cmd/searchpulse/ui"
	"searchpulse/internal/logging"
	"searchpulse/internal/watch"
)

// dashboardCmd launches the interactive TUI
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Launch the interactive dashboard",
	Long: `Launches the interactive terminal dashboard over the configured dataset.

Pages:
  1 Overview       dataset totals, daily trend, top queries
  2 Opportunities  low-CTR queries ranked by volume-weighted CTR gap
  3 Simulator      lift projection for a selected query

The dataset file is watched; external regeneration reloads it live.`,
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	// stdout belongs to bubbletea from here on; session logging goes to
	// the category file logger.
	workspace, err := os.Getwd()
	if err != nil {
		return err
	}
	if err := logging.Initialize(workspace, cfg.Logging.DebugMode, cfg.Logging.Level); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer logging.Close()

	logging.Dashboard("starting dashboard for %s", cfg.Dataset.Path)

	model := ui.NewModel(cfg.Dataset.Path, cfg.Dashboard, ui.DefaultStyles())
	program := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher, err := watch.New(cfg.Dataset.Path, func() {
		program.Send(ui.DatasetChangedMsg{})
	})
	if err != nil {
		// The dashboard still works without live reload.
		logging.Get(logging.CategoryWatcher).Error("watcher unavailable: %v", err)
	} else if err := watcher.Start(ctx); err != nil {
		logging.Get(logging.CategoryWatcher).Error("watcher failed to start: %v", err)
	} else {
		defer watcher.Stop()
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}

	logging.Dashboard("dashboard exited")
	return nil
}
