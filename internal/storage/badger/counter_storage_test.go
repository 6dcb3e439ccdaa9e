package badger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/respondeo/internal/common"
)

func TestCounterStorage_StartsAtZero(t *testing.T) {
	db := openTestDB(t)
	counter := NewCounterStorage(db, common.GetLogger())

	value, err := counter.Value(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), value)
}

func TestCounterStorage_IncrementReturnsNewValue(t *testing.T) {
	db := openTestDB(t)
	counter := NewCounterStorage(db, common.GetLogger())

	first, err := counter.Increment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := counter.Increment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), second)

	value, err := counter.Value(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), value)
}

func TestCounterStorage_ValueDoesNotIncrement(t *testing.T) {
	db := openTestDB(t)
	counter := NewCounterStorage(db, common.GetLogger())

	_, err := counter.Increment(context.Background())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		value, err := counter.Value(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), value)
	}
}

func TestCounterStorage_ConcurrentIncrements(t *testing.T) {
	db := openTestDB(t)
	counter := NewCounterStorage(db, common.GetLogger())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := counter.Increment(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	value, err := counter.Value(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(20), value)
}
