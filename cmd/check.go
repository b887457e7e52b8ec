package cmd

import (
	"fmt"
	"time"

	"relation-checker/core/config"
	"relation-checker/core/geodata"
	"relation-checker/core/storage"
	"relation-checker/feature/integrity"
	"relation-checker/feature/integrity/checks"
	"relation-checker/feature/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the relationship checks and write CSV reports",
	Long: `Runs the room, station and room-station checks against the workspace, one after
another, and writes one CSV report per check. The first failure stops the run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		startTime := time.Now()

		workspace, _ := cmd.Flags().GetString("workspace")
		only, _ := cmd.Flags().GetStringSlice("only")

		cfg, logg, err := bootstrap(func(c *config.Config) {
			if workspace != "" {
				c.Workspace.Path = workspace
			}
		})
		if err != nil {
			return err
		}
		defer logg.Sync()

		kinds := cfg.Checks.Enabled()
		if len(only) > 0 {
			if kinds, err = integrity.ParseKinds(only); err != nil {
				return err
			}
		}
		if len(kinds) == 0 {
			return fmt.Errorf("no checks enabled")
		}

		store := geodata.NewStore(cfg.Workspace, logg)
		defer store.Close()

		checker, err := checks.NewChecker(ctx, cfg.Workspace.Path, cfg.Layers, store, logg)
		if err != nil {
			return fmt.Errorf("failed to open workspace: %w", err)
		}

		writer, err := newReportWriter(cfg, logg)
		if err != nil {
			return err
		}

		results, err := integrity.NewService(checker, writer, logg).Run(ctx, kinds)
		if err != nil {
			return err
		}

		total := 0
		for _, r := range results {
			total += len(r.Mismatches)
			logg.Info("Report written",
				zap.String("check", string(r.Kind)),
				zap.Int("mismatches", len(r.Mismatches)),
				zap.String("file", r.Report),
			)
		}
		logg.Info("Relationship checks completed",
			zap.Int("checks", len(results)),
			zap.Int("mismatches", total),
			zap.Duration("execution_time", time.Since(startTime)),
		)
		return nil
	},
}

// newReportWriter builds the CSV sink, publishing to object storage when enabled.
func newReportWriter(cfg *config.Config, logg *zap.Logger) (report.Writer, error) {
	generator := report.NewGenerator(cfg.Report.Directory, logg)
	if !cfg.Report.Publish {
		return report.NewSink(generator, nil), nil
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return report.NewSink(generator, report.NewPublisher(client, cfg.Storage.Bucket, cfg.Report.Prefix, logg)), nil
}

func init() {
	checkCmd.Flags().String("workspace", "", "workspace path, overrides workspace.path")
	checkCmd.Flags().StringSlice("only", nil, "checks to run: rooms, stations, room-stations")
	RootCmd.AddCommand(checkCmd)
}
