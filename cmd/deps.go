package cmd

import (
	"fmt"
	"strings"

	"fleet-report/core/config"
	"fleet-report/core/fleetapi"
	"fleet-report/core/logger"
	"fleet-report/core/output"
	"fleet-report/core/storage"
	"fleet-report/core/warehouse"
	"fleet-report/feature/fleet"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deps holds everything the commands build from configuration.
type deps struct {
	cfg       *config.Config
	log       *zap.Logger
	db        *gorm.DB
	store     storage.Client
	sink      output.Sink
	api       *fleetapi.Client
	warehouse *warehouse.Client
}

// loadDeps reads configuration and builds the shared clients. The warehouse
// is optional: a failed connection is logged and enrichment then records the
// warehouse lookup as failed for every report.
// withWarehouse always connects; the server and health checks need it
// regardless of the configured enrichment default.
func withWarehouse(*config.Config) bool { return true }

// withoutWarehouse never connects.
func withoutWarehouse(*config.Config) bool { return false }

// warehouseForEnrich connects when reports will be enriched: the explicit
// override when set, the configured default otherwise.
func warehouseForEnrich(override *bool) func(*config.Config) bool {
	return func(cfg *config.Config) bool {
		if override != nil {
			return *override
		}
		return cfg.Fleet.Enrich
	}
}

func loadDeps(connectWarehouse func(*config.Config) bool) (*deps, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	d := &deps{cfg: cfg, log: l, api: fleetapi.NewClient(cfg.Fleet, nil)}

	if connectWarehouse(cfg) {
		if conn, err := warehouse.Connect(cfg.Warehouse); err != nil {
			l.Warn("Optional warehouse connection failed", zap.Error(err))
		} else {
			d.db = conn
			l.Info("Connected to warehouse", zap.String("driver", cfg.Warehouse.Driver), zap.String("table", cfg.Warehouse.Table))
		}
	}

	d.warehouse, err = warehouse.NewClient(d.db, cfg.Warehouse)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(cfg.Report.Sink, output.SinkS3) {
		d.store, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
	}

	d.sink, err = output.New(cfg.Report, afero.NewOsFs(), d.store, cfg.Storage.Bucket)
	if err != nil {
		return nil, err
	}

	return d, nil
}

// fleetOptions maps configuration onto the pipeline options.
func (d *deps) fleetOptions() fleet.Options {
	return fleet.Options{
		Enrich:    d.cfg.Fleet.Enrich,
		Workers:   d.cfg.Fleet.EnrichWorkers,
		RosterTTL: d.cfg.Fleet.RosterCacheTTL(),
	}
}

// fleetFeature builds the fleet feature from the shared clients.
func (d *deps) fleetFeature() *fleet.Feature {
	var wh fleet.Warehouse
	if d.warehouse != nil {
		wh = d.warehouse
	}
	return fleet.NewFeature(d.api, wh, d.sink, d.log, d.fleetOptions())
}
