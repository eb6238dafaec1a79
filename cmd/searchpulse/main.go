package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"searchpulse/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dataPath   string

	// Loaded configuration, resolved in PersistentPreRunE
	cfg *config.Config

	// Logger
	logger *zap.Logger
)

// version is set at build time via -ldflags.
var version = "dev"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "searchpulse",
	Short: "searchpulse - ecommerce search analytics demo",
	Long: `searchpulse synthesizes a fake ecommerce search-log dataset, computes
search KPIs (click-through rate, query volume, conversion rate), flags
low-performing queries, and projects the impact of CTR improvements with a
toy A/B simulator.

Run without arguments to launch the interactive dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The dashboard owns the terminal; it gets the file logger instead.
		// Running the bare root launches the dashboard too.
		if cmd.Name() != "dashboard" && cmd != cmd.Root() {
			zc := zap.NewProductionConfig()
			if verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dataPath != "" {
			cfg.Dataset.Path = dataPath
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch the interactive dashboard.
		return runDashboard(cmd, args)
	},
}

// versionCmd prints the build version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the searchpulse version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("searchpulse %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFileName, "Config file path")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Dataset path (overrides config)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
