package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	serial string
	imo    string
}

func imoOf(e entry) string    { return e.imo }
func serialOf(e entry) string { return e.serial }

func TestIntersect(t *testing.T) {
	roster := []entry{{"S1", "123"}, {"S2", "456"}, {"S3", "789"}, {"S4", "123 "}}

	tests := []struct {
		name string
		ids  []string
		want []entry
	}{
		{"Match", []string{"789", "123"}, []entry{{"S1", "123"}, {"S3", "789"}}},
		{"ExactOnly", []string{" 123", "0456"}, []entry{}},
		{"TrailingSpaceIsDistinct", []string{"123 "}, []entry{{"S4", "123 "}}},
		{"Empty", nil, []entry{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Intersect(tt.ids, roster, imoOf))
		})
	}
}

func TestProject(t *testing.T) {
	entries := []entry{{"S2", "1"}, {"", "2"}, {"S1", "3"}, {"S2", "4"}}
	assert.Equal(t, []string{"S2", "S1"}, Project(entries, serialOf))
	assert.Empty(t, Project([]entry{{"", "1"}}, serialOf))
}

func TestForEach_IsolatesFailures(t *testing.T) {
	items := []int{1, 2, 3, 4}
	results := ForEach(context.Background(), items, 1, func(_ context.Context, n int) (string, error) {
		if n%2 == 0 {
			return "", fmt.Errorf("item %d failed", n)
		}
		return fmt.Sprintf("ok-%d", n), nil
	})

	require.Len(t, results, 4)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
	}
	assert.Equal(t, "ok-1", results[0].Value)
	assert.EqualError(t, results[1].Err, "item 2 failed")
	assert.Equal(t, "ok-3", results[2].Value)
	assert.False(t, results[3].OK())

	assert.Equal(t, Summary{Total: 4, Succeeded: 2, Failed: 2}, Summarize(results))
}

func TestForEach_RespectsWorkerLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	items := make([]int, 20)

	ForEach(context.Background(), items, 3, func(_ context.Context, _ int) (struct{}, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return struct{}{}, nil
	})

	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.GreaterOrEqual(t, peak.Load(), int32(1))
}

func TestForEach_SequentialKeepsOrder(t *testing.T) {
	var order []int
	ForEach(context.Background(), []int{1, 2, 3}, 0, func(_ context.Context, n int) (int, error) {
		order = append(order, n)
		return n, nil
	})
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestForEach_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	results := ForEach(ctx, []int{1, 2}, 2, func(_ context.Context, n int) (int, error) {
		calls.Add(1)
		return n, nil
	})

	assert.Zero(t, calls.Load())
	for _, r := range results {
		assert.True(t, errors.Is(r.Err, context.Canceled))
	}
}
