package reconcile

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_Disabled(t *testing.T) {
	c := NewCache[[]string](0)
	assert.False(t, c.Enabled())

	var loads int
	load := func(context.Context) ([]string, error) {
		loads++
		return []string{"a"}, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrLoad(context.Background(), "k", load)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, v)
	}
	assert.Equal(t, 3, loads)
}

func TestCache_TTL(t *testing.T) {
	c := NewCache[int](time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	var loads int
	load := func(context.Context) (int, error) {
		loads++
		return loads, nil
	}

	v, _ := c.GetOrLoad(context.Background(), "k", load)
	assert.Equal(t, 1, v)

	now = now.Add(30 * time.Second)
	v, _ = c.GetOrLoad(context.Background(), "k", load)
	assert.Equal(t, 1, v, "fresh entry is served from cache")

	now = now.Add(31 * time.Second)
	v, _ = c.GetOrLoad(context.Background(), "k", load)
	assert.Equal(t, 2, v, "expired entry is reloaded")

	c.Invalidate("k")
	v, _ = c.GetOrLoad(context.Background(), "k", load)
	assert.Equal(t, 3, v)
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	c := NewCache[int](time.Minute)

	_, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) {
		return 0, assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	v, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) {
		return 9, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 9, v)
}

func TestCache_SingleflightDeduplicates(t *testing.T) {
	c := NewCache[int](time.Minute)
	var loads atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) {
				loads.Add(1)
				<-release
				return 5, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, 5, v)
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())
}
