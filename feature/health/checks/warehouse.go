package checks

import (
	"fmt"

	"fleet-report/core/warehouse"

	"gorm.io/gorm"
)

// WarehouseReport describes the position table the enrichment lookup reads.
type WarehouseReport struct {
	Table   string   `json:"table"`
	Missing []string `json:"missing"`
	Healthy bool     `json:"healthy"`
}

// CheckWarehouse verifies that the configured table carries the MMSI and
// timestamp columns.
func CheckWarehouse(db *gorm.DB, cfg warehouse.Config) (*WarehouseReport, error) {
	if db == nil {
		return nil, fmt.Errorf("warehouse: %w", ErrNotConfigured)
	}

	missing, err := warehouse.MissingColumns(db, cfg)
	if err != nil {
		return nil, err
	}
	if missing == nil {
		missing = []string{}
	}

	return &WarehouseReport{
		Table:   cfg.Table,
		Missing: missing,
		Healthy: len(missing) == 0,
	}, nil
}
