// Package cli implements the homeplan command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"homeplan/internal/config"
	"homeplan/internal/store"
	"homeplan/pkg/constants"
)

var (
	configLocation string
	logLevel       string
	outputFormat   string

	conf   *config.Configuration
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "homeplan",
	Short: "Affordability planner for a home purchase plus renovation",
	Long: "Computes project cost, funding coverage, loan amortization schedules, a\n" +
		"rate/amount sensitivity grid, and risk outlooks from a YAML-configured plan.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		// A missing default config file is fine; explicit paths must exist.
		if _, statErr := os.Stat(configLocation); statErr != nil {
			if configLocation != constants.DefaultConfigFile {
				return fmt.Errorf("config file %s: %w", configLocation, statErr)
			}
			conf = config.Default()
		} else {
			conf, err = config.LoadConfiguration(configLocation)
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
			}
		}

		logger, err = config.InitializeLogger(conf.Logging, logLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		for _, warning := range conf.ClampInputs() {
			logger.Warn("Input clamped: "+warning,
				zap.String("op", "cli.root"),
			)
		}
		for _, warning := range conf.ValidateConfiguration() {
			logger.Warn("Configuration warning: "+warning,
				zap.String("op", "cli.root"),
			)
		}

		if outputFormat == "" {
			outputFormat = conf.Output.Format
		}
		if outputFormat == "" {
			outputFormat = constants.OutputFormatPretty
		}
		if outputFormat != constants.OutputFormatPretty && outputFormat != constants.OutputFormatCSV {
			return fmt.Errorf("invalid output format: %s", outputFormat)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configLocation, "config", constants.DefaultConfigFile, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output-format", "", "type of output override: pretty, csv")
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRepository opens the configured plan store. The caller must invoke the
// returned closer.
func newRepository() (store.Repository, func() error, error) {
	if conf.Store.Path == "" {
		return store.NewMemoryRepository(), func() error { return nil }, nil
	}

	repo, err := store.NewSQLiteRepository(conf.Store.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open plan store at %s: %w", conf.Store.Path, err)
	}
	return repo, repo.Close, nil
}
