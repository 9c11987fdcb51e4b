package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCountsWithinWindow(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		count, err := store.Increment(ctx, "1.2.3.4", 10*time.Minute)
		require.NoError(t, err)
		require.Equal(t, i, count)
	}

	// Distinct keys do not share a window.
	count, err := store.Increment(ctx, "5.6.7.8", 10*time.Minute)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestMemoryStoreResetsAfterWindow(t *testing.T) {
	now := time.Now()
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.Increment(ctx, "1.2.3.4", 10*time.Minute)
		require.NoError(t, err)
	}

	now = now.Add(10*time.Minute + time.Second)

	count, err := store.Increment(ctx, "1.2.3.4", 10*time.Minute)
	require.NoError(t, err)
	require.Equal(t, int64(1), count, "elapsed window starts a fresh count")
}

func TestMemoryStoreConcurrentIncrementsLoseNothing(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	const workers = 16
	const perWorker = 100

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_, err := store.Increment(ctx, "shared", 10*time.Minute)
				require.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	count, err := store.Increment(ctx, "shared", 10*time.Minute)
	require.NoError(t, err)
	require.Equal(t, int64(workers*perWorker+1), count)
}

func TestMemoryStorePurgeDropsExpiredWindows(t *testing.T) {
	now := time.Now()
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := store.Increment(ctx, "stale", time.Minute)
	require.NoError(t, err)
	_, err = store.Increment(ctx, "fresh", time.Hour)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	store.Purge()

	require.NotContains(t, store.windows, "stale")
	require.Contains(t, store.windows, "fresh")
}
