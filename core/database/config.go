package database

// Config holds configuration for the workspace database connection.
type Config struct {
	// Driver is the database driver (sqlite, mysql).
	Driver string `mapstructure:"driver" default:"sqlite"`
	// Path is the store location: the SQLite file, or the MySQL schema name.
	Path string `mapstructure:"path" default:""`
	// Host is the database host (mysql only).
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port (mysql only).
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user (mysql only).
	User string `mapstructure:"user" default:"root"`
	// Password is the database password (mysql only).
	Password string `mapstructure:"password" default:""`
	// TimeoutSeconds bounds connection setup and I/O.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// AutoMigrate creates the feature schema when the workspace is opened.
	AutoMigrate bool `mapstructure:"auto_migrate" default:"false"`
}

// WithPath returns a copy of the configuration pointing at another store location.
func (c Config) WithPath(path string) Config {
	c.Path = path
	return c
}
