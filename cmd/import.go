package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"relation-checker/core/config"
	"relation-checker/core/geodata"

	"github.com/spf13/cobra"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <layer> <file.geojson>",
	Short: "Load a GeoJSON feature collection into a workspace layer",
	Long: `Appends the features of a GeoJSON FeatureCollection to a layer, creating the
workspace schema and the layer when they do not exist yet.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		layer, file := args[0], args[1]

		workspace, _ := cmd.Flags().GetString("workspace")
		cfg, logg, err := bootstrap(func(c *config.Config) {
			if workspace != "" {
				c.Workspace.Path = workspace
			}
			c.Workspace.AutoMigrate = true
		})
		if err != nil {
			return err
		}
		defer logg.Sync()

		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		var fc geojson.FeatureCollection
		if err := json.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("failed to parse %s: %w", file, err)
		}

		store := geodata.NewStore(cfg.Workspace, logg)
		defer store.Close()

		if err := store.SetWorkspace(ctx, cfg.Workspace.Path); err != nil {
			return err
		}
		n, err := store.Import(ctx, layer, &fc)
		if err != nil {
			return err
		}

		logg.Info("Import completed", zap.String("layer", layer), zap.String("file", file), zap.Int("features", n))
		return nil
	},
}

func init() {
	importCmd.Flags().String("workspace", "", "workspace path, overrides workspace.path")
	RootCmd.AddCommand(importCmd)
}
