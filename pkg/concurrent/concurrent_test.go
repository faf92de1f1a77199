package concurrent

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEachVisitsAll(t *testing.T) {
	var sum atomic.Int64
	items := []int64{1, 2, 3, 4, 5}
	err := ForEach(context.Background(), items, 2, func(_ context.Context, v int64) error {
		sum.Add(v)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), sum.Load())
}

func TestForEachRespectsLimit(t *testing.T) {
	var running, peak atomic.Int32
	items := make([]int, 32)
	err := ForEach(context.Background(), items, 3, func(context.Context, int) error {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		running.Add(-1)
		return nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestForEachReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := ForEach(context.Background(), []int{1, 2, 3}, 1, func(_ context.Context, v int) error {
		if v == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestForEachMuteReportsEveryError(t *testing.T) {
	var mu sync.Mutex
	var failed []int
	ForEachMute(context.Background(), []int{1, 2, 3, 4}, 0, func(_ context.Context, v int) error {
		if v%2 == 0 {
			return errors.New("even")
		}
		return nil
	}, func(v int, _ error) {
		mu.Lock()
		failed = append(failed, v)
		mu.Unlock()
	})
	assert.ElementsMatch(t, []int{2, 4}, failed)
}
