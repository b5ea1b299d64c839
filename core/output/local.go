package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// LocalSink writes reports into a directory.
type LocalSink struct {
	fs      afero.Fs
	dir     string
	isolate bool
}

// NewLocalSink creates a sink rooted at dir on fs.
func NewLocalSink(fsys afero.Fs, dir string, isolate bool) *LocalSink {
	if dir == "" {
		dir = "Reports"
	}
	return &LocalSink{fs: fsys, dir: dir, isolate: isolate}
}

// Save writes data to a temporary file next to the target and renames it into
// place, so readers never observe a partially written report.
func (s *LocalSink) Save(_ context.Context, runID, name string, data []byte) (string, error) {
	rel, err := relPath(s.isolate, runID, name)
	if err != nil {
		return "", err
	}

	target := filepath.Join(s.dir, filepath.FromSlash(rel))
	targetDir := filepath.Dir(target)
	if err := s.fs.MkdirAll(targetDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := afero.TempFile(s.fs, targetDir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp report: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = s.fs.Remove(tmpName)
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return "", fmt.Errorf("close report: %w", err)
	}
	if err := s.fs.Rename(tmpName, target); err != nil {
		_ = s.fs.Remove(tmpName)
		return "", fmt.Errorf("publish report: %w", err)
	}

	return target, nil
}

// Open returns the stored report.
func (s *LocalSink) Open(_ context.Context, runID, name string) (io.ReadCloser, error) {
	rel, err := relPath(s.isolate, runID, name)
	if err != nil {
		return nil, err
	}

	f, err := s.fs.Open(filepath.Join(s.dir, filepath.FromSlash(rel)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// List walks the output directory for .xlsx reports.
func (s *LocalSink) List(_ context.Context) ([]Entry, error) {
	if ok, _ := afero.DirExists(s.fs, s.dir); !ok {
		return nil, nil
	}

	var entries []Entry
	err := afero.Walk(s.fs, s.dir, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(p) != ".xlsx" || info.Name()[0] == '.' {
			return nil
		}

		entry := Entry{Name: info.Name(), Size: info.Size(), Modified: info.ModTime()}
		if parent := filepath.Dir(p); filepath.Clean(parent) != filepath.Clean(s.dir) {
			entry.RunID = filepath.Base(parent)
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].RunID != entries[j].RunID {
			return entries[i].RunID < entries[j].RunID
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}
