package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedMap_PreservesInputOrder(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	// Earlier inputs finish later.
	out, err := orderedMap(context.Background(), in, 4, func(_ context.Context, v int) (int, error) {
		time.Sleep(time.Duration(len(in)-v) * time.Millisecond)
		return v * 10, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}, out)
}

func TestOrderedMap_RespectsLimit(t *testing.T) {
	var inFlight, peak int32
	in := make([]int, 20)

	_, err := orderedMap(context.Background(), in, 3, func(_ context.Context, _ int) (int, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return 0, nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestOrderedMap_FirstErrorWins(t *testing.T) {
	boom := errors.New("boom")
	out, err := orderedMap(context.Background(), []int{1, 2, 3}, 2, func(_ context.Context, v int) (int, error) {
		if v == 2 {
			return 0, boom
		}
		return v, nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, out)
}

func TestOrderedMap_Empty(t *testing.T) {
	out, err := orderedMap(context.Background(), []int{}, 2, func(_ context.Context, v int) (int, error) {
		return v, nil
	})
	require.NoError(t, err)
	assert.Empty(t, out)
}
