package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsLiveEntryWithoutRefetch(t *testing.T) {
	c := New()
	var calls int32
	loader := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return []string{"a", "b"}, nil
	}

	first, err := c.Get(context.Background(), AllKey, 5*time.Minute, loader)
	require.NoError(t, err)
	second, err := c.Get(context.Background(), AllKey, 5*time.Minute, loader)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestGetRefetchesAfterTTL(t *testing.T) {
	c := New()
	now := time.Now()
	c.now = func() time.Time { return now }

	var calls int32
	loader := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return "value", nil
	}

	_, err := c.Get(context.Background(), AllKey, 5*time.Minute, loader)
	require.NoError(t, err)

	now = now.Add(5 * time.Minute)
	_, err = c.Get(context.Background(), AllKey, 5*time.Minute, loader)
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestZeroTTLIsAlwaysStale(t *testing.T) {
	c := New()
	var calls int32
	loader := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return "value", nil
	}

	key := ListKey("interview", "google", 1)
	for i := 0; i < 3; i++ {
		_, err := c.Get(context.Background(), key, 0, loader)
		require.NoError(t, err)
	}

	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestLoaderErrorIsNotCached(t *testing.T) {
	c := New()
	var calls int32
	loader := func(ctx context.Context) (any, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, assert.AnError
		}
		return "recovered", nil
	}

	_, err := c.Get(context.Background(), AllKey, time.Minute, loader)
	require.Error(t, err)

	v, err := c.Get(context.Background(), AllKey, time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, "recovered", v)
}

func TestConcurrentReadsCoalesce(t *testing.T) {
	c := New()
	var calls int32
	release := make(chan struct{})
	loader := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "shared", nil
	}

	const readers = 10
	var wg sync.WaitGroup
	results := make([]any, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Get(context.Background(), AllKey, time.Minute, loader)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	// Let every reader queue up behind the in-flight fetch before it lands.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "identical concurrent reads must share one fetch")
	for _, v := range results {
		assert.Equal(t, "shared", v)
	}
}

func TestInvalidateApplicationsDropsWholeFamily(t *testing.T) {
	c := New()
	loaded := func(v string) func(ctx context.Context) (any, error) {
		return func(ctx context.Context) (any, error) { return v, nil }
	}

	_, err := c.Get(context.Background(), AllKey, time.Minute, loaded("all"))
	require.NoError(t, err)
	_, err = c.Get(context.Background(), ListKey("interview", "", 1), time.Minute, loaded("filtered"))
	require.NoError(t, err)
	_, err = c.Get(context.Background(), RecordKey("abc"), time.Minute, loaded("record"))
	require.NoError(t, err)

	c.InvalidateApplications()

	var calls int32
	counting := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return "fresh", nil
	}
	_, err = c.Get(context.Background(), AllKey, time.Minute, counting)
	require.NoError(t, err)
	_, err = c.Get(context.Background(), ListKey("interview", "", 1), time.Minute, counting)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls), "both collection keys must refetch")

	// The single-record key is a different family and survives until its
	// own invalidation.
	v, err := c.Get(context.Background(), RecordKey("abc"), time.Minute, counting)
	require.NoError(t, err)
	assert.Equal(t, "record", v)

	c.InvalidateRecord("abc")
	v, err = c.Get(context.Background(), RecordKey("abc"), time.Minute, counting)
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
}
