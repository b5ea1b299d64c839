package fleetapi

import (
	"bytes"
	"fmt"
	"time"

	"fleet-report/core/utils"

	"github.com/goccy/go-json"
)

// decodeEnvelope unwraps a `{"data": {...}}` response into out.
func decodeEnvelope(action string, raw []byte, out any) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode %s response: %w", action, err)
	}

	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("%s: %w", action, ErrEmpty)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", action, err)
	}
	return nil
}

// LatestPosition returns the position with the greatest timestamp.
// Positions whose timestamp cannot be parsed are ignored.
func LatestPosition(positions []AISPosition) (AISPosition, time.Time, bool) {
	var (
		best   AISPosition
		bestTS time.Time
		found  bool
	)
	for _, p := range positions {
		ts, ok := utils.ParseTimestamp(p.Timestamp)
		if !ok {
			continue
		}
		if !found || ts.After(bestTS) {
			best, bestTS, found = p, ts, true
		}
	}
	return best, bestTS, found
}
