package warehouse

// Config holds configuration for the warehouse connection.
type Config struct {
	// Host is the warehouse host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the warehouse port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the read-only warehouse user.
	User string `mapstructure:"user" default:"reader"`
	// Password is the warehouse password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name (or file path for sqlite).
	Name string `mapstructure:"name" default:"fleet"`
	// Driver is the database driver (mysql, sqlite).
	Driver string `mapstructure:"driver" default:"mysql"`
	// TimeoutSeconds bounds connection setup and I/O.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// Table holds one row per received vessel position.
	Table string `mapstructure:"table" default:"vessel_positions"`
	// MMSIColumn is the column holding the vessel MMSI.
	MMSIColumn string `mapstructure:"mmsi_column" default:"mmsi"`
	// TimestampColumn is the column holding the position time.
	TimestampColumn string `mapstructure:"timestamp_column" default:"timestamp"`
}
