package checks

import (
	"context"
	"errors"
	"fmt"

	"fleet-report/core/storage"

	"go.uber.org/zap"
)

// ErrNotConfigured is returned when the dependency a check needs was not set up.
var ErrNotConfigured = errors.New("not configured")

// CheckBucket reports whether the report bucket exists.
func CheckBucket(ctx context.Context, client storage.Client, bucket string) (bool, error) {
	if client == nil {
		return false, fmt.Errorf("object storage: %w", ErrNotConfigured)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return false, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	return exists, nil
}

// FixBucket creates the report bucket.
func FixBucket(ctx context.Context, client storage.Client, bucket, region string, logger *zap.Logger) error {
	if client == nil {
		return fmt.Errorf("object storage: %w", ErrNotConfigured)
	}

	created, err := storage.EnsureBucket(ctx, client, bucket, region)
	if err != nil {
		logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
		return err
	}
	if created {
		logger.Info("Created missing bucket", zap.String("bucket", bucket))
	}
	return nil
}
