package health

import (
	"context"

	"fleet-report/core/output"
	"fleet-report/core/storage"
	"fleet-report/core/warehouse"
	"fleet-report/feature/health/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service runs dependency checks.
type Service struct {
	client    storage.Client
	storage   storage.Config
	db        *gorm.DB
	warehouse warehouse.Config
	sink      output.Sink
	logger    *zap.Logger
}

// NewService creates a new health service. client and db may be nil when the
// dependency is not configured.
func NewService(client storage.Client, storageCfg storage.Config, db *gorm.DB, warehouseCfg warehouse.Config, sink output.Sink, logger *zap.Logger) *Service {
	return &Service{
		client:    client,
		storage:   storageCfg,
		db:        db,
		warehouse: warehouseCfg,
		sink:      sink,
		logger:    logger,
	}
}

// CheckStorage reports whether the report bucket exists.
func (s *Service) CheckStorage(ctx context.Context) (bool, error) {
	return checks.CheckBucket(ctx, s.client, s.storage.Bucket)
}

// FixStorage creates the report bucket.
func (s *Service) FixStorage(ctx context.Context) error {
	return checks.FixBucket(ctx, s.client, s.storage.Bucket, s.storage.Region, s.logger)
}

// CheckWarehouse verifies the position table.
func (s *Service) CheckWarehouse() (*checks.WarehouseReport, error) {
	return checks.CheckWarehouse(s.db, s.warehouse)
}

// CheckOutput lists the report sink.
func (s *Service) CheckOutput(ctx context.Context) (int, error) {
	return checks.CheckOutput(ctx, s.sink)
}
