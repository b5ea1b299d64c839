package output

// Config selects where generated reports are written.
type Config struct {
	// Sink is "local" (a directory on disk) or "s3" (the storage bucket).
	Sink string `mapstructure:"sink" default:"local"`
	// Dir is the local output directory, relative to the working directory.
	Dir string `mapstructure:"dir" default:"Reports"`
	// Prefix is the object key prefix used by the s3 sink.
	Prefix string `mapstructure:"prefix" default:"reports"`
	// IsolateRuns stores each report under its run ID so uploads of files
	// with the same name never overwrite each other.
	IsolateRuns bool `mapstructure:"isolate_runs" default:"false"`
}

const (
	SinkLocal = "local"
	SinkS3    = "s3"
)
