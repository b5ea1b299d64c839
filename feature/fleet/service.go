package fleet

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"fleet-report/core/fleetapi"
	"fleet-report/core/logger"
	"fleet-report/core/output"
	"fleet-report/core/reconcile"
	"fleet-report/core/utils"
	"fleet-report/feature/fleet/models"
	"fleet-report/feature/fleet/sheet"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FleetAPI is the subset of the fleet API client the pipeline uses.
type FleetAPI interface {
	GetFleet(ctx context.Context, creds fleetapi.Credentials) ([]fleetapi.FleetEntry, error)
	GetLatestReports(ctx context.Context, creds fleetapi.Credentials, serials []string) ([]fleetapi.Report, error)
	GetVesselExtendedInfo(ctx context.Context, creds fleetapi.Credentials, serial string) (*fleetapi.VesselInfo, error)
	GetAisHistory(ctx context.Context, mmsi string, from, to time.Time) ([]fleetapi.AISPosition, error)
}

// Warehouse looks up the newest stored position time of a vessel.
type Warehouse interface {
	LatestTimestamp(ctx context.Context, mmsi string, since time.Time) (string, error)
}

// Options tunes the pipeline.
type Options struct {
	// Enrich is the default when a request does not choose.
	Enrich bool
	// Workers bounds concurrent enrichment. Values below 1 mean sequential.
	Workers int
	// RosterTTL caches rosters per user; 0 disables caching.
	RosterTTL time.Duration
}

// UploadRequest is one reconciliation request.
type UploadRequest struct {
	FileName    string
	Data        []byte
	Credentials fleetapi.Credentials
	// Enrich overrides Options.Enrich when set.
	Enrich *bool
	// Stream returns the workbook in Outcome.Data instead of saving it.
	Stream bool
}

// Outcome describes a finished reconciliation.
type Outcome struct {
	RunID    string
	FileName string
	// Location is where the sink stored the report. Empty when streamed.
	Location string
	// Data holds the workbook when the request asked for streaming.
	Data []byte
	// Matched is the number of roster entries matched by the upload.
	Matched int
	// Reports is the number of reports fetched.
	Reports int
	// Enrichment is set when enrichment ran.
	Enrichment *reconcile.Summary
}

// Service runs the upload to report pipeline.
type Service struct {
	api       FleetAPI
	warehouse Warehouse
	sink      output.Sink
	logger    *zap.Logger
	opts      Options
	rosters   *reconcile.Cache[[]fleetapi.FleetEntry]
	now       func() time.Time
}

// NewService creates a new fleet service. warehouse may be nil, in which case
// enrichment records the warehouse lookup as failed.
func NewService(api FleetAPI, warehouse Warehouse, sink output.Sink, logger *zap.Logger, opts Options) *Service {
	return &Service{
		api:       api,
		warehouse: warehouse,
		sink:      sink,
		logger:    logger,
		opts:      opts,
		rosters:   reconcile.NewCache[[]fleetapi.FleetEntry](opts.RosterTTL),
		now:       time.Now,
	}
}

// Reconcile reads the uploaded workbook, matches it against the caller's
// fleet, fetches the latest reports and renders the result workbook.
func (s *Service) Reconcile(ctx context.Context, req UploadRequest) (*Outcome, error) {
	if len(req.Data) == 0 {
		return nil, fmt.Errorf("%w: no file uploaded", ErrBadRequest)
	}
	if !req.Credentials.Valid() {
		return nil, fmt.Errorf("%w: username and password are required", ErrBadRequest)
	}

	runID := uuid.NewString()
	l := logger.WithRun(s.logger, runID)

	rows, err := sheet.Read(bytes.NewReader(req.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	l.Info("Workbook parsed", zap.String("file", req.FileName), zap.Int("rows", len(rows)))

	roster, err := s.Roster(ctx, req.Credentials)
	if err != nil {
		l.Warn("Roster fetch failed", zap.Error(err))
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.IMO != "" {
			ids = append(ids, row.IMO)
		}
	}

	byIMO := func(e fleetapi.FleetEntry) string { return e.IMO.String() }
	matched := reconcile.Intersect(ids, roster, byIMO)
	if len(matched) == 0 && s.rosters.Enabled() {
		// A cached roster may predate vessels added to the fleet since.
		s.rosters.Invalidate(rosterKey(req.Credentials))
		if roster, err = s.Roster(ctx, req.Credentials); err != nil {
			l.Warn("Roster refresh failed", zap.Error(err))
			return nil, err
		}
		matched = reconcile.Intersect(ids, roster, byIMO)
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: none of the uploaded IMO numbers are in the fleet", ErrNotFound)
	}

	serials := reconcile.Project(matched, func(e fleetapi.FleetEntry) string { return e.Serial.String() })
	if len(serials) == 0 {
		return nil, fmt.Errorf("%w: matched vessels have no serial", ErrNotFound)
	}
	l.Info("Fleet matched", zap.Int("matched", len(matched)), zap.Strings("serials", serials))

	fetched, err := s.api.GetLatestReports(ctx, req.Credentials, serials)
	if err != nil {
		l.Warn("Report fetch failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	reports := make([]models.Report, len(fetched))
	for i, r := range fetched {
		reports[i] = models.FromAPI(r)
	}

	now := s.now().UTC()
	out := &Outcome{
		RunID:    runID,
		FileName: sheet.OutputName(req.FileName),
		Matched:  len(matched),
		Reports:  len(reports),
	}

	enrich := s.opts.Enrich
	if req.Enrich != nil {
		enrich = *req.Enrich
	}
	if enrich {
		summary := s.enrichAll(ctx, l, req.Credentials, now, reports)
		out.Enrichment = &summary
	}

	data, err := sheet.Bytes(rows, reports, sheet.Options{Now: now, Enriched: enrich})
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	if req.Stream {
		out.Data = data
		return out, nil
	}

	out.Location, err = s.sink.Save(ctx, runID, out.FileName, data)
	if err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	l.Info("Report written", zap.String("location", out.Location))
	return out, nil
}

// Roster returns the fleet visible to creds, from cache when enabled.
func (s *Service) Roster(ctx context.Context, creds fleetapi.Credentials) ([]fleetapi.FleetEntry, error) {
	if !creds.Valid() {
		return nil, fmt.Errorf("%w: username and password are required", ErrBadRequest)
	}

	roster, err := s.rosters.GetOrLoad(ctx, rosterKey(creds), func(ctx context.Context) ([]fleetapi.FleetEntry, error) {
		return s.api.GetFleet(ctx, creds)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: fetch fleet: %w", ErrUpstream, err)
	}
	return roster, nil
}

// OpenReport returns a stored report.
func (s *Service) OpenReport(ctx context.Context, runID, name string) (io.ReadCloser, error) {
	rc, err := s.sink.Open(ctx, runID, name)
	switch {
	case errors.Is(err, output.ErrNotFound):
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, output.ErrInvalidName):
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	case err != nil:
		return nil, err
	}
	return rc, nil
}

// ListReports lists stored reports.
func (s *Service) ListReports(ctx context.Context) ([]output.Entry, error) {
	return s.sink.List(ctx)
}

// enrichAll enriches reports in place. A failure is recorded on its report
// and never stops the others.
func (s *Service) enrichAll(ctx context.Context, l *zap.Logger, creds fleetapi.Credentials, now time.Time, reports []models.Report) reconcile.Summary {
	items := make([]*models.Report, len(reports))
	for i := range reports {
		items[i] = &reports[i]
	}

	results := reconcile.ForEach(ctx, items, s.opts.Workers, func(ctx context.Context, r *models.Report) (struct{}, error) {
		return struct{}{}, s.enrich(ctx, creds, now, r)
	})

	for _, res := range results {
		if res.OK() {
			continue
		}
		r := items[res.Index]
		r.EnrichError = res.Err.Error()
		l.Warn("Enrichment failed", zap.String("imo", r.IMO), zap.String("serial", r.Serial), zap.Error(res.Err))
	}

	summary := reconcile.Summarize(results)
	l.Info("Enrichment finished", zap.Int("succeeded", summary.Succeeded), zap.Int("failed", summary.Failed))
	return summary
}

func (s *Service) enrich(ctx context.Context, creds fleetapi.Credentials, now time.Time, r *models.Report) error {
	since, ok := utils.ParseTimestamp(r.Timestamp)
	if !ok {
		return fmt.Errorf("unparseable report timestamp %q", r.Timestamp)
	}

	info, err := s.api.GetVesselExtendedInfo(ctx, creds, r.Serial)
	if err != nil {
		return fmt.Errorf("vessel info: %w", err)
	}
	r.MMSI = info.MMSI.String()
	if r.MMSI == "" {
		return errors.New("vessel info: no mmsi")
	}

	var errs []error

	positions, err := s.api.GetAisHistory(ctx, r.MMSI, since, now)
	if err != nil {
		errs = append(errs, fmt.Errorf("ais history: %w", err))
	} else if _, ts, ok := fleetapi.LatestPosition(positions); ok {
		r.AISLatest = utils.FormatTimestamp(ts)
	} else {
		errs = append(errs, errors.New("ais history: no positions"))
	}

	if s.warehouse == nil {
		errs = append(errs, errors.New("warehouse: not configured"))
		return errors.Join(errs...)
	}
	latest, err := s.warehouse.LatestTimestamp(ctx, r.MMSI, since)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("warehouse: %w", err))
	case latest == "":
		errs = append(errs, errors.New("warehouse: no positions"))
	default:
		r.WarehouseLatest = latest
	}

	return errors.Join(errs...)
}

// rosterKey identifies a credential pair without keeping the password.
// The username is length prefixed so no two pairs share an encoding.
func rosterKey(creds fleetapi.Credentials) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d:%s%s", len(creds.Username), creds.Username, creds.Password)))
	return hex.EncodeToString(sum[:])
}
