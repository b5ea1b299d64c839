package health

import (
	"errors"

	"fleet-report/core/logger"
	"fleet-report/feature/health/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for health checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the health routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/health")
	group.Get("/", h.HandleHealth)
	group.Get("/storage", h.HandleStorageCheck)
	group.Get("/warehouse", h.HandleWarehouseCheck)
}

// HandleHealth runs every check.
// @Summary Run All Health Checks
// @Description Checks the report sink, the object storage bucket and the warehouse table. Unconfigured dependencies are reported as skipped.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Failure 503 {object} map[string]interface{} "Combined Report with failures"
// @Router /health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	ctx := c.Context()
	report := make(map[string]interface{})
	healthy := true

	if count, err := h.service.CheckOutput(ctx); err != nil {
		healthy = false
		report["output"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["output"] = map[string]interface{}{"status": "ok", "reports": count}
	}

	switch exists, err := h.service.CheckStorage(ctx); {
	case errors.Is(err, checks.ErrNotConfigured):
		report["storage"] = map[string]interface{}{"status": "skipped"}
	case err != nil:
		healthy = false
		report["storage"] = map[string]interface{}{"status": "error", "error": err.Error()}
	case !exists:
		healthy = false
		report["storage"] = map[string]interface{}{"status": "error", "error": "bucket does not exist"}
	default:
		report["storage"] = map[string]interface{}{"status": "ok"}
	}

	switch wh, err := h.service.CheckWarehouse(); {
	case errors.Is(err, checks.ErrNotConfigured):
		report["warehouse"] = map[string]interface{}{"status": "skipped"}
	case err != nil:
		healthy = false
		report["warehouse"] = map[string]interface{}{"status": "error", "error": err.Error()}
	case !wh.Healthy:
		healthy = false
		report["warehouse"] = map[string]interface{}{"status": "error", "missing": wh.Missing}
	default:
		report["warehouse"] = map[string]interface{}{"status": "ok"}
	}

	if healthy {
		report["status"] = "ok"
		return c.JSON(report)
	}
	report["status"] = "degraded"
	return c.Status(fiber.StatusServiceUnavailable).JSON(report)
}

// HandleStorageCheck checks and optionally creates the report bucket.
// @Summary Check Storage
// @Description Checks if the report bucket exists. Optionally creates it.
// @Tags health
// @Produce json
// @Param fix query boolean false "Create the bucket when missing"
// @Success 200 {object} map[string]interface{} "Storage Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Not Configured"
// @Router /health/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	exists, err := h.service.CheckStorage(c.Context())
	if errors.Is(err, checks.ErrNotConfigured) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !exists {
		l.Warn("Report bucket missing", zap.String("bucket", h.service.storage.Bucket))

		if fix {
			l.Info("Attempting to create report bucket")
			if err := h.service.FixStorage(c.Context()); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to create bucket",
					"details": err.Error(),
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"bucket": h.service.storage.Bucket,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "checked",
		"bucket": h.service.storage.Bucket,
		"exists": exists,
	})
}

// HandleWarehouseCheck checks the warehouse table.
// @Summary Check Warehouse
// @Description Checks that the configured position table has the MMSI and timestamp columns.
// @Tags health
// @Produce json
// @Success 200 {object} checks.WarehouseReport "Warehouse Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Not Configured"
// @Router /health/warehouse [get]
func (h *Handler) HandleWarehouseCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckWarehouse()
	if errors.Is(err, checks.ErrNotConfigured) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Warehouse check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.Healthy {
		l.Warn("Warehouse table incomplete", zap.Strings("missing", report.Missing))
	}
	return c.JSON(report)
}
