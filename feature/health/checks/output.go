package checks

import (
	"context"
	"fmt"

	"fleet-report/core/output"
)

// CheckOutput counts the reports the sink can list.
func CheckOutput(ctx context.Context, sink output.Sink) (int, error) {
	if sink == nil {
		return 0, fmt.Errorf("report sink: %w", ErrNotConfigured)
	}

	entries, err := sink.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}
