package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"relation-checker/core/config"
	"relation-checker/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "relation-checker",
	Short: "Geodata relationship checker",
	Long: `Relation Checker verifies that the GUID references stored on room and station
features agree with the geometry: every detail point must carry the GUID of the
feature that contains it. Mismatches are written to CSV reports.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Any error is logged once and the process exits with status 1.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := RootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		reportFailure(err)
		os.Exit(1)
	}
}

// runLogger is the configured logger of the running command, nil until bootstrap succeeds.
var runLogger *zap.Logger

// reportFailure logs err through the configured logger, or through a console logger
// when the command failed before one was built.
func reportFailure(err error) {
	l := runLogger
	if l == nil {
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		fallback, logErr := logger.New(&logger.Config{
			Level:  "debug",
			Format: "console",
		})
		if logErr != nil {
			fmt.Println(err)
			return
		}
		l = fallback
	}
	l.Error("command failed", zap.Error(err))
	_ = l.Sync()
}

// bootstrap loads and validates the configuration, lets override adjust it first, and builds the logger.
func bootstrap(override func(*config.Config)) (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if override != nil {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	runLogger = logg
	return cfg, logg, nil
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory holding config.yaml and .env")
}
