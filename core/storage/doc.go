// Package storage provides an abstraction layer for S3-compatible object storage.
//
// It wraps the MinIO Go client behind the Client interface so the report sink
// and the storage health check can be tested with the mocks in
// core/storage/mocks. Both AWS S3 and self-hosted MinIO are supported.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
