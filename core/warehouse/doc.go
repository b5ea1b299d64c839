// Package warehouse handles the read-only connection to the vessel position
// warehouse and the single lookup the fleet report needs from it.
//
// # Connect
//
// Connect wraps GORM to open either a MySQL-compatible warehouse or a sqlite
// file (used for local runs and tests). The connection is pooled for the
// lifetime of the process; callers treat a failed connection as optional and
// record a per-vessel enrichment failure instead of aborting.
//
// # Lookup
//
// Client.LatestTimestamp answers "most recent timestamp at or after X for
// vessel Y" with bound parameters. Table and column names come from
// configuration and are validated as plain SQL identifiers.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns back the warehouse health check.
//
// # Usage
//
//	db, err := warehouse.Connect(cfg.Warehouse)
//	wh, err := warehouse.NewClient(db, cfg.Warehouse)
//	latest, err := wh.LatestTimestamp(ctx, "235000000", since)
package warehouse
