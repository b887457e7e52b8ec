// Package config provides configuration management for the relation checker.
//
// It utilizes Viper for loading configuration from an optional config file
// (config.yaml or config.json), a .env file and environment variables.
// Environment variables take precedence; WORKSPACE_PATH maps to workspace.path.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Workspace: location and driver of the feature database
//   - Layers: names of the room, room detail, station and station detail layers
//   - Checks: which relationship checks run
//   - Report: CSV output directory and publishing
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level, format and file
//   - Server: HTTP server port and API key
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
