package cmd

import (
	"fmt"

	"relation-checker/core/config"
	"relation-checker/core/geodata"
	"relation-checker/core/loader"
	"relation-checker/core/logger"
	"relation-checker/core/middleware/auth"
	"relation-checker/core/middleware/rayid"
	"relation-checker/feature/integrity"
	"relation-checker/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "relation-checker/docs/swagger"
)

// @title Relation Checker API
// @version 1.0
// @description API for checking GUID relationships between room and station features.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the relation checker server",
	Long:  `Opens the workspace, starts the HTTP server and serves the relationship checks on demand.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// 1. Load Configuration and Logger
		cfg, logg, err := bootstrap(nil)
		if err != nil {
			return err
		}
		defer logg.Sync()

		if err := cfg.Server.Validate(); err != nil {
			return err
		}

		// 2. Open Workspace
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

		// 3. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})
		registerMiddleware(app, cfg, logg)

		// 4. Load Features
		mgr := loader.NewManager()
		mgr.Register(integrity.NewFeature(integrity.NewService(checker, writer, logg), cfg.Checks))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			return err
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 5. Start Server
		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			errCh <- app.Listen(cfg.Server.Address())
		}()

		// 6. Graceful Shutdown
		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-ctx.Done():
		}
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func registerMiddleware(app *fiber.App, cfg *config.Config, logg *zap.Logger) {
	// RayID first so every later log line carries it
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	// Swagger stays public
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))
}

func init() {
	RootCmd.AddCommand(startCmd)
}
