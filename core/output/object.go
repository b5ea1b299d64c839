package output

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"fleet-report/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectSink writes reports into an object storage bucket.
type ObjectSink struct {
	client  storage.Client
	bucket  string
	prefix  string
	isolate bool
}

// NewObjectSink creates a sink storing objects under prefix in bucket.
func NewObjectSink(client storage.Client, bucket, prefix string, isolate bool) *ObjectSink {
	return &ObjectSink{
		client:  client,
		bucket:  bucket,
		prefix:  strings.Trim(prefix, "/"),
		isolate: isolate,
	}
}

func (s *ObjectSink) key(rel string) string {
	if s.prefix == "" {
		return rel
	}
	return s.prefix + "/" + rel
}

// Save uploads data as a single object.
func (s *ObjectSink) Save(ctx context.Context, runID, name string, data []byte) (string, error) {
	rel, err := relPath(s.isolate, runID, name)
	if err != nil {
		return "", err
	}

	key := s.key(rel)
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload report %s: %w", key, err)
	}
	return s.bucket + "/" + key, nil
}

// Open downloads a stored report.
func (s *ObjectSink) Open(ctx context.Context, runID, name string) (io.ReadCloser, error) {
	rel, err := relPath(s.isolate, runID, name)
	if err != nil {
		return nil, err
	}

	key := s.key(rel)

	// GetObject is lazy, so a missing key is only detected by a stat.
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("stat report %s: %w", key, err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("download report %s: %w", key, err)
	}
	return obj, nil
}

// List returns every .xlsx object under the prefix.
func (s *ObjectSink) List(ctx context.Context) ([]Entry, error) {
	opts := minio.ListObjectsOptions{Recursive: true}
	if s.prefix != "" {
		opts.Prefix = s.prefix + "/"
	}

	var entries []Entry
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list reports: %w", obj.Err)
		}
		if path.Ext(obj.Key) != ".xlsx" {
			continue
		}

		rel := strings.TrimPrefix(obj.Key, opts.Prefix)
		entry := Entry{Name: path.Base(rel), Size: obj.Size, Modified: obj.LastModified}
		if dir := path.Dir(rel); dir != "." {
			entry.RunID = dir
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].RunID != entries[j].RunID {
			return entries[i].RunID < entries[j].RunID
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}
