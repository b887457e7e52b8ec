package report

// Config holds configuration for report output.
type Config struct {
	// Directory receives the generated CSV files.
	Directory string `mapstructure:"directory" default:"reports"`
	// Publish uploads every generated report to object storage.
	Publish bool `mapstructure:"publish" default:"false"`
	// Prefix is the object key prefix used when publishing.
	Prefix string `mapstructure:"prefix" default:"reports"`
}
