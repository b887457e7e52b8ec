package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Workspace.Driver)
	assert.Empty(t, cfg.Workspace.Path)
	assert.Equal(t, "Room", cfg.Layers.Room)
	assert.Equal(t, "RoomDetail", cfg.Layers.RoomDetail)
	assert.Equal(t, "Station", cfg.Layers.Station)
	assert.Equal(t, "StationDetail", cfg.Layers.StationDetail)
	assert.True(t, cfg.Checks.Rooms)
	assert.True(t, cfg.Checks.Stations)
	assert.True(t, cfg.Checks.RoomStations)
	assert.Equal(t, "reports", cfg.Report.Directory)
	assert.False(t, cfg.Report.Publish)
	assert.Equal(t, "integrity", cfg.Storage.Bucket)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("WORKSPACE_PATH", "facilities.db")
	t.Setenv("LAYERS_ROOM", "Indoor.Room")
	t.Setenv("CHECKS_ROOM_STATIONS", "false")
	t.Setenv("REPORT_PUBLISH", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "facilities.db", cfg.Workspace.Path)
	assert.Equal(t, "Indoor.Room", cfg.Layers.Room)
	assert.False(t, cfg.Checks.RoomStations)
	assert.True(t, cfg.Report.Publish)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := "workspace:\n  path: site.db\nlayers:\n  station: Stn\nchecks:\n  stations: false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "site.db", cfg.Workspace.Path)
	assert.Equal(t, "Stn", cfg.Layers.Station)
	assert.False(t, cfg.Checks.Stations)
	assert.True(t, cfg.Checks.Rooms)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_PORT=9191\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("SERVER_PORT") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "9191", cfg.Server.Port)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("workspace: [\n"), 0o644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		cfg.Workspace.Path = "facilities.db"
		return cfg
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("Missing Workspace", func(t *testing.T) {
		cfg := valid()
		cfg.Workspace.Path = " "
		assert.EqualError(t, cfg.Validate(), "workspace.path is required")
	})

	t.Run("Missing Layer", func(t *testing.T) {
		cfg := valid()
		cfg.Layers.StationDetail = ""
		assert.EqualError(t, cfg.Validate(), "layers.station_detail is required")
	})

	t.Run("Missing Report Directory", func(t *testing.T) {
		cfg := valid()
		cfg.Report.Directory = ""
		assert.EqualError(t, cfg.Validate(), "report.directory is required")
	})
}
