package fleet

import (
	"errors"
	"fmt"
	"io"

	"fleet-report/core/fleetapi"
	"fleet-report/core/logger"
	"fleet-report/core/output"
	"fleet-report/core/utils"
	"fleet-report/feature/fleet/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for fleet reports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the fleet routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/fleet")
	group.Post("/upload", h.HandleUpload)
	group.Get("/reports", h.HandleListReports)
	group.Get("/reports/:name", h.HandleDownloadReport)
}

// HandleUpload reconciles an uploaded vessel workbook.
// @Summary Upload Vessel Workbook
// @Description Matches the uploaded IMO numbers against the caller's fleet, fetches the latest reports and writes a report workbook.
// @Tags fleet
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Vessel workbook (.xlsx)"
// @Param username formData string true "Fleet API username"
// @Param password formData string true "Fleet API password"
// @Param enrich formData boolean false "Enrich reports with AIS and warehouse data"
// @Param stream query boolean false "Return the workbook instead of storing it"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "No Match"
// @Failure 500 {object} map[string]string "Upstream Failure"
// @Router /api/fleet/upload [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	req := UploadRequest{
		Credentials: fleetapi.Credentials{
			Username: c.FormValue("username"),
			Password: c.FormValue("password"),
		},
		Stream: utils.ToBool(c.Query("stream")),
	}
	if v := c.FormValue("enrich"); v != "" {
		enrich := utils.ToBool(v)
		req.Enrich = &enrich
	}

	if fh, err := c.FormFile("file"); err == nil {
		req.FileName = fh.Filename
		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot read uploaded file"})
		}
		req.Data, err = io.ReadAll(f)
		f.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot read uploaded file"})
		}
	}

	l.Info("Upload received", zap.String("file", req.FileName), zap.String("username", req.Credentials.Username))

	out, err := h.service.Reconcile(c.Context(), req)
	if err != nil {
		status := statusFor(err)
		if status >= fiber.StatusInternalServerError {
			l.Error("Reconciliation failed", zap.Error(err))
		} else {
			l.Warn("Reconciliation rejected", zap.Int("status", status), zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Stream {
		c.Set(fiber.HeaderContentType, output.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", out.FileName))
		c.Set("X-Run-ID", out.RunID)
		return c.Send(out.Data)
	}

	return c.JSON(models.UploadResponse{
		Message:    "Report generated",
		FileName:   out.FileName,
		RunID:      out.RunID,
		Matched:    out.Matched,
		Enrichment: out.Enrichment,
	})
}

// HandleListReports lists stored reports.
// @Summary List Reports
// @Description Lists the report workbooks in the configured sink.
// @Tags fleet
// @Produce json
// @Success 200 {array} output.Entry
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/fleet/reports [get]
func (h *Handler) HandleListReports(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	entries, err := h.service.ListReports(c.Context())
	if err != nil {
		l.Error("Listing reports failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(entries)
}

// HandleDownloadReport streams a stored report.
// @Summary Download Report
// @Description Returns a previously generated report workbook.
// @Tags fleet
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param name path string true "Report file name"
// @Param run query string false "Run ID when runs are isolated"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/fleet/reports/{name} [get]
func (h *Handler) HandleDownloadReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := c.Params("name")

	rc, err := h.service.OpenReport(c.Context(), c.Query("run"), name)
	if err != nil {
		l.Warn("Report download failed", zap.String("name", name), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, output.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(data)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrInvalidFormat):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
