package fleet

import (
	"fleet-report/core/output"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new fleet feature.
func NewFeature(api FleetAPI, warehouse Warehouse, sink output.Sink, logger *zap.Logger, opts Options) *Feature {
	svc := NewService(api, warehouse, sink, logger, opts)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Service exposes the pipeline for the CLI.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "fleet"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.service.api != nil && f.service.sink != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
