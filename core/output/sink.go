package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"fleet-report/core/storage"

	"github.com/spf13/afero"
)

// ContentType is the MIME type of generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	// ErrNotFound is returned when a requested report does not exist.
	ErrNotFound = errors.New("report not found")
	// ErrInvalidName is returned for names that would escape the output location.
	ErrInvalidName = errors.New("invalid report name")
)

var runIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// Entry describes a stored report.
type Entry struct {
	Name     string    `json:"name"`
	RunID    string    `json:"run_id,omitempty"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// Sink persists generated reports and reads them back.
type Sink interface {
	// Save stores data under name and returns where it was written.
	// runID is only used when run isolation is enabled.
	Save(ctx context.Context, runID, name string, data []byte) (string, error)
	// Open returns a reader for a stored report.
	Open(ctx context.Context, runID, name string) (io.ReadCloser, error)
	// List returns the stored reports.
	List(ctx context.Context) ([]Entry, error)
}

// New builds the sink selected by cfg. client is required for the s3 sink.
func New(cfg Config, fs afero.Fs, client storage.Client, bucket string) (Sink, error) {
	switch strings.ToLower(cfg.Sink) {
	case SinkLocal, "":
		if fs == nil {
			fs = afero.NewOsFs()
		}
		return NewLocalSink(fs, cfg.Dir, cfg.IsolateRuns), nil
	case SinkS3:
		if client == nil {
			return nil, fmt.Errorf("s3 report sink requires a storage client")
		}
		return NewObjectSink(client, bucket, cfg.Prefix, cfg.IsolateRuns), nil
	default:
		return nil, fmt.Errorf("unknown report sink %q", cfg.Sink)
	}
}

// relPath joins the optional run directory and the report name after
// validating both.
func relPath(isolate bool, runID, name string) (string, error) {
	if name == "" || name != path.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if !isolate {
		return name, nil
	}
	if !runIDPattern.MatchString(runID) {
		return "", fmt.Errorf("%w: run id %q", ErrInvalidName, runID)
	}
	return path.Join(runID, name), nil
}
