package health

import (
	"fleet-report/core/output"
	"fleet-report/core/storage"
	"fleet-report/core/warehouse"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new health feature.
func NewFeature(client storage.Client, storageCfg storage.Config, db *gorm.DB, warehouseCfg warehouse.Config, sink output.Sink, logger *zap.Logger) *Feature {
	svc := NewService(client, storageCfg, db, warehouseCfg, sink, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "health"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
