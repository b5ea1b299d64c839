package warehouse

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"fleet-report/core/utils"

	"gorm.io/gorm"
)

// ErrUnavailable is returned when no warehouse connection is configured.
var ErrUnavailable = errors.New("warehouse unavailable")

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Client runs read-only lookups against the position warehouse.
type Client struct {
	db    *gorm.DB
	query string
}

// NewClient builds a Client for the table and columns named in cfg.
// db may be nil, in which case every lookup fails with ErrUnavailable.
func NewClient(db *gorm.DB, cfg Config) (*Client, error) {
	for _, ident := range []string{cfg.Table, cfg.MMSIColumn, cfg.TimestampColumn} {
		if !identPattern.MatchString(ident) {
			return nil, fmt.Errorf("invalid warehouse identifier %q", ident)
		}
	}

	query := fmt.Sprintf("SELECT %[3]s FROM %[1]s WHERE %[2]s = ? AND %[3]s >= ? ORDER BY %[3]s DESC LIMIT 1",
		cfg.Table, cfg.MMSIColumn, cfg.TimestampColumn)

	return &Client{db: db, query: query}, nil
}

// LatestTimestamp returns the most recent position time for mmsi at or after since,
// formatted as "YYYY-MM-DD HH:MM:SS" UTC. It returns "" when no row matches.
func (c *Client) LatestTimestamp(ctx context.Context, mmsi string, since time.Time) (string, error) {
	if c == nil || c.db == nil {
		return "", ErrUnavailable
	}

	rows, err := c.db.WithContext(ctx).Raw(c.query, mmsi, c.bound(since)).Rows()
	if err != nil {
		return "", fmt.Errorf("warehouse query for mmsi %s: %w", mmsi, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return "", rows.Err()
	}

	var raw string
	if err := rows.Scan(&raw); err != nil {
		return "", fmt.Errorf("scan warehouse timestamp: %w", err)
	}

	if ts, ok := utils.ParseTimestamp(raw); ok {
		return utils.FormatTimestamp(ts), nil
	}
	return raw, nil
}

// bound renders since for the driver. sqlite has no time type and compares
// its text columns lexically, so the bound must share their layout.
func (c *Client) bound(since time.Time) any {
	if c.db.Dialector.Name() == "sqlite" {
		return utils.FormatTimestamp(since)
	}
	return since.UTC()
}
