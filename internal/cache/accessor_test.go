package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enabled() bool  { return true }
func disabled() bool { return false }

func TestFetch_CachesUntilInvalidated(t *testing.T) {
	var calls atomic.Int32
	a := New("cart", enabled, func(_ context.Context) (int, error) {
		calls.Add(1)
		return 42, nil
	})

	v, err := a.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	// Fresh value: no further network calls.
	for range 3 {
		_, err := a.Fetch(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), calls.Load())

	// Invalidate then fetch: exactly one more call.
	a.Invalidate()
	_, err = a.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetch_DisabledNeverCallsNetwork(t *testing.T) {
	var calls atomic.Int32
	a := New("cart", disabled, func(_ context.Context) (int, error) {
		calls.Add(1)
		return 0, nil
	})

	_, err := a.Fetch(context.Background())
	require.ErrorIs(t, err, ErrDisabled)
	assert.Equal(t, int32(0), calls.Load())
}

func TestFetch_ErrorLeavesCacheUncommitted(t *testing.T) {
	var calls atomic.Int32
	fail := errors.New("boom")
	a := New("cart", enabled, func(_ context.Context) (int, error) {
		calls.Add(1)
		return 0, fail
	})

	_, err := a.Fetch(context.Background())
	require.ErrorIs(t, err, fail)

	// The next fetch tries again rather than serving a failed result.
	_, err = a.Fetch(context.Background())
	require.ErrorIs(t, err, fail)
	assert.Equal(t, int32(2), calls.Load())

	_, state := a.Peek()
	assert.Equal(t, StateEmpty, state)
}

func TestFetch_ConcurrentCallersShareOneCall(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once

	a := New("cart", enabled, func(_ context.Context) (int, error) {
		calls.Add(1)
		once.Do(func() { close(started) })
		<-release
		return 7, nil
	})

	var wg sync.WaitGroup
	results := make([]int, 3)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = a.Fetch(context.Background())
	}()
	<-started

	for i := 1; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = a.Fetch(context.Background())
		}(i)
	}
	// Let the late callers reach the in-flight fetch before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, 7, v)
	}
}

func TestInvalidateMidFlight_DiscardsSupersededResult(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{})

	a := New("cart", enabled, func(_ context.Context) (int, error) {
		n := calls.Add(1)
		if n == 1 {
			close(started)
			<-release
		}
		return int(n), nil
	})

	done := make(chan int)
	go func() {
		v, _ := a.Fetch(context.Background())
		done <- v
	}()
	<-started

	// A mutation lands while the fetch is in flight.
	a.Invalidate()
	close(release)
	<-done

	// The superseded result was not committed: the next fetch round-trips
	// and its result wins.
	v, err := a.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, int32(2), calls.Load())
}

func TestReset_DropsValue(t *testing.T) {
	a := New("wishlist", enabled, func(_ context.Context) (int, error) {
		return 9, nil
	})
	_, err := a.Fetch(context.Background())
	require.NoError(t, err)

	a.Reset()
	v, state := a.Peek()
	assert.Equal(t, 0, v)
	assert.Equal(t, StateEmpty, state)
	assert.True(t, a.LastFetchedAt().IsZero())
}

func TestApply_OverlaysWithoutChangingState(t *testing.T) {
	a := New("wishlist", enabled, func(_ context.Context) (int, error) {
		return 1, nil
	})
	_, err := a.Fetch(context.Background())
	require.NoError(t, err)

	a.Apply(99)
	v, state := a.Peek()
	assert.Equal(t, 99, v)
	assert.Equal(t, StateFresh, state)

	// Fresh state means readers see the overlay without a network call.
	got, err := a.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 99, got)
}
