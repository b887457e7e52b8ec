package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"relation-checker/core/database"
	"relation-checker/core/logger"
	"relation-checker/core/server"
	"relation-checker/core/storage"
	"relation-checker/feature/integrity"
	"relation-checker/feature/integrity/checks"
	"relation-checker/feature/report"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Workspace holds the location and driver of the feature database.
	Workspace database.Config `mapstructure:"workspace"`
	// Checks selects which relationship checks run.
	Checks integrity.Config `mapstructure:"checks"`
	// Layers names the four feature classes.
	Layers checks.Layers `mapstructure:"layers"`
	// Report holds configuration for CSV output.
	Report report.Config `mapstructure:"report"`
	// Storage holds configuration for the object storage reports are published to.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
}

// LoadConfig loads configuration from an optional config.{yaml,json} in path,
// the .env file and environment variables, in increasing precedence.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	v.SetConfigName("config")
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Map environment variables to nested keys (e.g. WORKSPACE_PATH -> workspace.path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate reports the first setting that prevents the checks from running.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Workspace.Path) == "" {
		return errors.New("workspace.path is required")
	}
	layers := map[string]string{
		"layers.room":           c.Layers.Room,
		"layers.room_detail":    c.Layers.RoomDetail,
		"layers.station":        c.Layers.Station,
		"layers.station_detail": c.Layers.StationDetail,
	}
	for _, key := range []string{"layers.room", "layers.room_detail", "layers.station", "layers.station_detail"} {
		if strings.TrimSpace(layers[key]) == "" {
			return fmt.Errorf("%s is required", key)
		}
	}
	if c.Report.Directory == "" {
		return errors.New("report.directory is required")
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
